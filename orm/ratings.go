package orm

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

func (db *DB) GetUserRating(ctx context.Context, userID, recipeID int64) (*Rating, error) {
	rating, err := gorm.G[Rating](db.dbGorm).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get user rating",
			fmt.Sprintf("user_id=%d, recipe_id=%d", userID, recipeID),
		)
	}

	return &rating, nil
}

// CreateRating inserts a rating; there is intentionally no update path.
func (db *DB) CreateRating(ctx context.Context, userID, recipeID int64, rate int) (*Rating, error) {
	rating := Rating{UserID: userID, RecipeID: recipeID, Rate: rate}
	err := gorm.G[Rating](db.dbGorm).Create(ctx, &rating)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"create rating",
			fmt.Sprintf("user_id=%d, recipe_id=%d, rate=%d", userID, recipeID, rate),
		)
	}

	return &rating, nil
}

func (db *DB) ListRatings(
	ctx context.Context,
	recipeID int64,
	limit, offset int,
) ([]Rating, error) {
	var ratings []Rating
	err := db.dbGorm.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list ratings",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	return ratings, nil
}

// AvgRate returns the full-precision mean rating, 0.0 when none exist.
// Rounding happens at the response boundary only.
func (db *DB) AvgRate(ctx context.Context, recipeID int64) (float64, error) {
	var avg sql.NullFloat64
	err := db.dbGorm.WithContext(ctx).
		Model(&Rating{}).
		Where("recipe_id = ?", recipeID).
		Select("AVG(rate)").
		Scan(&avg).Error
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"average rate",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	if !avg.Valid {
		return 0, nil
	}

	return avg.Float64, nil
}
