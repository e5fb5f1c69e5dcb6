package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (db *DB) GetIngredientByID(ctx context.Context, ingredientID int64) (*Ingredient, error) {
	ingredient, err := gorm.G[Ingredient](db.dbGorm).Where("id = ?", ingredientID).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get ingredient by id",
			fmt.Sprintf("id=%d", ingredientID),
		)
	}

	return &ingredient, nil
}

// ListIngredients returns catalog entries with their usage count across all
// recipe links. sort=popular orders by usage, otherwise by name.
func (db *DB) ListIngredients(
	ctx context.Context,
	q, sort string,
	limit, offset int,
) ([]Ingredient, error) {
	order := "name"
	if sort == sortPopular {
		order = "usage_count DESC, name"
	}

	query := db.dbGorm.WithContext(ctx).
		Model(&Ingredient{}).
		Select("ingredients.id, ingredients.name, ingredients.measurement_unit, COUNT(recipe_ingredients.id) AS usage_count").
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit")
	if q != "" {
		query = query.Where("LOWER(ingredients.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var rows []struct {
		ID              int64
		Name            string
		MeasurementUnit string
		UsageCount      int64
	}
	err := query.Order(order).Limit(limit).Offset(offset).Scan(&rows).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list ingredients",
			fmt.Sprintf("q=%q, sort=%q", q, sort),
		)
	}

	ingredients := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, Ingredient{
			ID:              row.ID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			UsageCount:      row.UsageCount,
		})
	}

	return ingredients, nil
}

// CountRecipesForIngredient counts distinct recipes referencing the ingredient.
func (db *DB) CountRecipesForIngredient(ctx context.Context, ingredientID int64) (int64, error) {
	var count int64
	err := db.dbGorm.WithContext(ctx).
		Model(&RecipeIngredient{}).
		Where("ingredient_id = ?", ingredientID).
		Distinct("recipe_id").
		Count(&count).Error
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count recipes for ingredient",
			fmt.Sprintf("ingredient_id=%d", ingredientID),
		)
	}

	return count, nil
}

// CreateIngredient exists for catalog seeding; the aggregate manager itself
// never creates ingredients.
func (db *DB) CreateIngredient(ctx context.Context, ingredient *Ingredient) error {
	err := gorm.G[Ingredient](db.dbGorm).Create(ctx, ingredient)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"create ingredient",
			fmt.Sprintf("name=%q", ingredient.Name),
		)
	}

	return nil
}
