package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (db *DB) GetFavorite(ctx context.Context, userID, recipeID int64) (*Favorite, error) {
	favorite, err := gorm.G[Favorite](db.dbGorm).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get favorite",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return &favorite, nil
}

func (db *DB) CreateFavorite(ctx context.Context, userID, recipeID int64) (*Favorite, error) {
	favorite := Favorite{UserID: userID, RecipeID: recipeID}
	err := gorm.G[Favorite](db.dbGorm).Create(ctx, &favorite)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"create favorite",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return &favorite, nil
}

func (db *DB) DeleteFavorite(ctx context.Context, userID, recipeID int64) (int, error) {
	rows, err := gorm.G[Favorite](db.dbGorm).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(ctx)
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"delete favorite",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return rows, nil
}

// ListFavorites returns the user's favorites, optionally filtered by recipe
// name substring.
func (db *DB) ListFavorites(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]Favorite, error) {
	query := db.dbGorm.WithContext(ctx).
		Model(&Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where("favorites.user_id = ?", userID)
	if q != "" {
		query = query.Where("LOWER(recipes.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var favorites []Favorite
	err := query.Order("favorites.id").Limit(limit).Offset(offset).Find(&favorites).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list favorites",
			fmt.Sprintf("user_id=%d, q=%q", userID, q),
		)
	}

	return favorites, nil
}

func (db *DB) CountFavoritesForRecipe(ctx context.Context, recipeID int64) (int64, error) {
	count, err := gorm.G[Favorite](db.dbGorm).
		Where("recipe_id = ?", recipeID).
		Count(ctx, "*")
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count favorites for recipe",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	return count, nil
}

// CountFavoritesForAuthor counts favorite marks across all of the author's
// recipes.
func (db *DB) CountFavoritesForAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := db.dbGorm.WithContext(ctx).
		Model(&Favorite{}).
		Joins("JOIN recipes ON recipes.id = favorites.recipe_id").
		Where("recipes.author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count favorites for author",
			fmt.Sprintf("author_id=%d", authorID),
		)
	}

	return count, nil
}

func (db *DB) GetShoppingListItem(ctx context.Context, userID, recipeID int64) (*ShoppingListItem, error) {
	item, err := gorm.G[ShoppingListItem](db.dbGorm).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get shopping list item",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return &item, nil
}

func (db *DB) CreateShoppingListItem(ctx context.Context, userID, recipeID int64) (*ShoppingListItem, error) {
	item := ShoppingListItem{UserID: userID, RecipeID: recipeID}
	err := gorm.G[ShoppingListItem](db.dbGorm).Create(ctx, &item)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"create shopping list item",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return &item, nil
}

func (db *DB) DeleteShoppingListItem(ctx context.Context, userID, recipeID int64) (int, error) {
	rows, err := gorm.G[ShoppingListItem](db.dbGorm).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(ctx)
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"delete shopping list item",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return rows, nil
}

func (db *DB) ListShoppingListItems(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]ShoppingListItem, error) {
	query := db.dbGorm.WithContext(ctx).
		Model(&ShoppingListItem{}).
		Joins("JOIN recipes ON recipes.id = shopping_list.recipe_id").
		Where("shopping_list.user_id = ?", userID)
	if q != "" {
		query = query.Where("LOWER(recipes.name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var items []ShoppingListItem
	err := query.Order("shopping_list.id").Limit(limit).Offset(offset).Find(&items).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list shopping list items",
			fmt.Sprintf("user_id=%d, q=%q", userID, q),
		)
	}

	return items, nil
}
