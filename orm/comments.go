package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (db *DB) GetCommentByID(ctx context.Context, commentID int64) (*Comment, error) {
	comment, err := gorm.G[Comment](db.dbGorm).Where("id = ?", commentID).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get comment by id",
			fmt.Sprintf("id=%d", commentID),
		)
	}

	return &comment, nil
}

func (db *DB) CreateComment(ctx context.Context, comment *Comment) error {
	err := gorm.G[Comment](db.dbGorm).Create(ctx, comment)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"create comment",
			fmt.Sprintf("user_id=%d, recipe_id=%d", comment.UserID, comment.RecipeID),
		)
	}

	return nil
}

func (db *DB) UpdateComment(ctx context.Context, commentID int64, text, image string) (*Comment, error) {
	err := db.dbGorm.WithContext(ctx).
		Model(&Comment{}).
		Where("id = ?", commentID).
		Updates(map[string]any{
			"text":  text,
			"image": image,
		}).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"update comment",
			fmt.Sprintf("id=%d", commentID),
		)
	}

	return db.GetCommentByID(ctx, commentID)
}

func (db *DB) DeleteComment(ctx context.Context, commentID int64) (int, error) {
	rows, err := gorm.G[Comment](db.dbGorm).Where("id = ?", commentID).Delete(ctx)
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"delete comment",
			fmt.Sprintf("id=%d", commentID),
		)
	}

	return rows, nil
}

func (db *DB) ListComments(
	ctx context.Context,
	recipeID int64,
	q string,
	limit, offset int,
) ([]Comment, error) {
	query := db.dbGorm.WithContext(ctx).Model(&Comment{})
	if recipeID > 0 {
		query = query.Where("recipe_id = ?", recipeID)
	}
	if q != "" {
		query = query.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var comments []Comment
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&comments).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list comments",
			fmt.Sprintf("recipe_id=%d, q=%q", recipeID, q),
		)
	}

	return comments, nil
}

func (db *DB) CountCommentsForRecipe(ctx context.Context, recipeID int64) (int64, error) {
	count, err := gorm.G[Comment](db.dbGorm).
		Where("recipe_id = ?", recipeID).
		Count(ctx, "*")
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count comments for recipe",
			fmt.Sprintf("recipe_id=%d", recipeID),
		)
	}

	return count, nil
}

// CountCommentsForAuthorRecipes counts comments left on any recipe the author
// owns.
func (db *DB) CountCommentsForAuthorRecipes(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := db.dbGorm.WithContext(ctx).
		Model(&Comment{}).
		Joins("JOIN recipes ON recipes.id = comments.recipe_id").
		Where("recipes.author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count comments for author recipes",
			fmt.Sprintf("author_id=%d", authorID),
		)
	}

	return count, nil
}
