package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (db *DB) GetTagByID(ctx context.Context, tagID int64) (*Tag, error) {
	tag, err := gorm.G[Tag](db.dbGorm).Where("id = ?", tagID).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get tag by id",
			fmt.Sprintf("id=%d", tagID),
		)
	}

	return &tag, nil
}

// GetTagByName looks a tag up case-insensitively.
func (db *DB) GetTagByName(ctx context.Context, name string) (*Tag, error) {
	tag, err := gorm.G[Tag](db.dbGorm).Where("LOWER(name) = LOWER(?)", name).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get tag by name",
			fmt.Sprintf("name=%q", name),
		)
	}

	return &tag, nil
}

// CreateTag stores the tag under its lower-cased name.
func (db *DB) CreateTag(ctx context.Context, name string) (*Tag, error) {
	tag := Tag{Name: strings.ToLower(name)}
	err := gorm.G[Tag](db.dbGorm).Create(ctx, &tag)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"create tag",
			fmt.Sprintf("name=%q", name),
		)
	}

	return &tag, nil
}

func (db *DB) UpdateTag(ctx context.Context, tagID int64, name string) (*Tag, error) {
	err := db.dbGorm.WithContext(ctx).
		Model(&Tag{}).
		Where("id = ?", tagID).
		Update("name", strings.ToLower(name)).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"update tag",
			fmt.Sprintf("id=%d, name=%q", tagID, name),
		)
	}

	return db.GetTagByID(ctx, tagID)
}

func (db *DB) DeleteTag(ctx context.Context, tagID int64) (int, error) {
	rows, err := gorm.G[Tag](db.dbGorm).Where("id = ?", tagID).Delete(ctx)
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"delete tag",
			fmt.Sprintf("id=%d", tagID),
		)
	}

	return rows, nil
}

func (db *DB) ListTags(ctx context.Context, q string, limit, offset int) ([]Tag, error) {
	query := db.dbGorm.WithContext(ctx).Model(&Tag{})
	if q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var tags []Tag
	err := query.Order("name").Limit(limit).Offset(offset).Find(&tags).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list tags",
			fmt.Sprintf("q=%q", q),
		)
	}

	return tags, nil
}
