package orm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	sortPopular = "popular"
)

func (db *DB) GetRecipeByID(ctx context.Context, recipeID int64) (*Recipe, error) {
	if recipeID <= 0 {
		return nil, &BadInputError{
			Reason: fmt.Sprintf("invalid recipe id %d", recipeID),
		}
	}

	recipe, err := gorm.G[Recipe](db.dbGorm).Where("id = ?", recipeID).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get recipe by id",
			fmt.Sprintf("id=%d", recipeID),
		)
	}

	return &recipe, nil
}

func (db *DB) ListRecipes(
	ctx context.Context,
	q, sort string,
	limit, offset int,
) ([]Recipe, error) {
	order := "pub_date DESC"
	if sort == sortPopular {
		order = "views DESC, pub_date DESC"
	}

	query := db.dbGorm.WithContext(ctx).Model(&Recipe{})
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(text) LIKE ?", pattern, pattern)
	}

	var recipes []Recipe
	err := query.Order(order).Limit(limit).Offset(offset).Find(&recipes).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list recipes",
			fmt.Sprintf("q=%q, sort=%q", q, sort),
		)
	}

	return recipes, nil
}

func (db *DB) ListRecipesByAuthor(
	ctx context.Context,
	authorID int64,
	q string,
	limit, offset int,
) ([]Recipe, error) {
	query := db.dbGorm.WithContext(ctx).Model(&Recipe{}).Where("author_id = ?", authorID)
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(text) LIKE ?", pattern, pattern)
	}

	var recipes []Recipe
	err := query.Order("pub_date DESC").Limit(limit).Offset(offset).Find(&recipes).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list recipes by author",
			fmt.Sprintf("author_id=%d, q=%q", authorID, q),
		)
	}

	return recipes, nil
}

func (db *DB) CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error) {
	count, err := gorm.G[Recipe](db.dbGorm).Where("author_id = ?", authorID).Count(ctx, "*")
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count recipes by author",
			fmt.Sprintf("author_id=%d", authorID),
		)
	}

	return count, nil
}

func (db *DB) CreateRecipe(ctx context.Context, recipe *Recipe) error {
	err := gorm.G[Recipe](db.dbGorm).Create(ctx, recipe)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"create recipe",
			fmt.Sprintf("author_id=%d, name=%q", recipe.AuthorID, recipe.Name),
		)
	}

	return nil
}

func (db *DB) UpdateRecipe(
	ctx context.Context,
	recipeID int64,
	name, image, text string,
	cookingTime int,
) (*Recipe, error) {
	err := db.dbGorm.WithContext(ctx).
		Model(&Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]any{
			"name":         name,
			"image":        image,
			"text":         text,
			"cooking_time": cookingTime,
		}).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"update recipe",
			fmt.Sprintf("id=%d", recipeID),
		)
	}

	return db.GetRecipeByID(ctx, recipeID)
}

// IncrementRecipeViews bumps the view counter by exactly one.
func (db *DB) IncrementRecipeViews(ctx context.Context, recipeID int64) error {
	err := db.dbGorm.WithContext(ctx).
		Model(&Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"increment recipe views",
			fmt.Sprintf("id=%d", recipeID),
		)
	}

	return nil
}

// DeleteRecipe removes the recipe row and returns the number of rows affected
// so callers can distinguish "already gone" races. Dependent rows go with it
// through the cascade constraints.
func (db *DB) DeleteRecipe(ctx context.Context, recipeID int64) (int, error) {
	rows, err := gorm.G[Recipe](db.dbGorm).Where("id = ?", recipeID).Delete(ctx)
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"delete recipe",
			fmt.Sprintf("id=%d", recipeID),
		)
	}

	return rows, nil
}

// ListRecipeTagNames returns the tag names linked to a recipe, most recently
// associated first.
func (db *DB) ListRecipeTagNames(ctx context.Context, recipeID int64) ([]string, error) {
	var names []string
	err := db.dbGorm.WithContext(ctx).
		Model(&RecipeTag{}).
		Joins("JOIN tags ON tags.id = recipe_tag.tag_id").
		Where("recipe_tag.recipe_id = ?", recipeID).
		Order("recipe_tag.created_at DESC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list recipe tag names",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	return names, nil
}

func (db *DB) ListRecipeIngredients(ctx context.Context, recipeID int64) ([]IngredientAmount, error) {
	var links []RecipeIngredient
	err := db.dbGorm.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id").
		Find(&links).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list recipe ingredients",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	amounts := make([]IngredientAmount, 0, len(links))
	for _, link := range links {
		amounts = append(amounts, IngredientAmount{
			IngredientID: link.IngredientID,
			Amount:       link.Amount,
		})
	}

	return amounts, nil
}

func (db *DB) DeleteRecipeTagLinks(ctx context.Context, recipeID int64) error {
	_, err := gorm.G[RecipeTag](db.dbGorm).Where("recipe_id = ?", recipeID).Delete(ctx)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"delete recipe tag links",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	return nil
}

// UpsertRecipeTagLink inserts the link, or refreshes its timestamp when the
// (recipe, tag) pair already exists.
func (db *DB) UpsertRecipeTagLink(ctx context.Context, recipeID, tagID int64) error {
	link := RecipeTag{RecipeID: recipeID, TagID: tagID}
	err := db.dbGorm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "recipe_id"}, {Name: "tag_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"created_at": time.Now(),
			}),
		}).
		Create(&link).Error
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"upsert recipe tag link",
			fmt.Sprintf("recipe_id=%d, tag_id=%d", recipeID, tagID),
		)
	}

	return nil
}

func (db *DB) DeleteRecipeIngredientLinks(ctx context.Context, recipeID int64) error {
	_, err := gorm.G[RecipeIngredient](db.dbGorm).Where("recipe_id = ?", recipeID).Delete(ctx)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"delete recipe ingredient links",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	return nil
}

// UpsertRecipeIngredientLink inserts the link, or overwrites the amount when
// the (recipe, ingredient) pair already exists.
func (db *DB) UpsertRecipeIngredientLink(
	ctx context.Context,
	recipeID, ingredientID int64,
	amount int,
) error {
	link := RecipeIngredient{RecipeID: recipeID, IngredientID: ingredientID, Amount: amount}
	err := db.dbGorm.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "ingredient_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).
		Create(&link).Error
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"upsert recipe ingredient link",
			fmt.Sprintf("recipe_id=%d, ingredient_id=%d, amount=%d", recipeID, ingredientID, amount),
		)
	}

	return nil
}
