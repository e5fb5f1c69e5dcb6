package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (db *DB) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	user, err := gorm.G[User](db.dbGorm).Where("id = ?", userID).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get user by id",
			fmt.Sprintf("id=%d", userID),
		)
	}

	return &user, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := gorm.G[User](db.dbGorm).Where("email = ?", email).First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get user by email",
			fmt.Sprintf("email=%q", email),
		)
	}

	return &user, nil
}

func (db *DB) CreateUser(ctx context.Context, user *User) error {
	err := gorm.G[User](db.dbGorm).Create(ctx, user)
	if err != nil {
		return wrapErrorWithDetails(
			err,
			"create user",
			fmt.Sprintf("email=%q", user.Email),
		)
	}

	return nil
}

// UpdateUser applies the supplied column values; callers resolve partial
// update semantics before reaching the gateway.
func (db *DB) UpdateUser(ctx context.Context, userID int64, fields map[string]any) (*User, error) {
	if len(fields) == 0 {
		return nil, &BadInputError{Reason: "no fields to update"}
	}

	err := db.dbGorm.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Updates(fields).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"update user",
			fmt.Sprintf("id=%d", userID),
		)
	}

	return db.GetUserByID(ctx, userID)
}

func (db *DB) ListUsers(ctx context.Context, q string, limit, offset int) ([]User, error) {
	query := db.dbGorm.WithContext(ctx).Model(&User{})
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var users []User
	err := query.Order("id").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list users",
			fmt.Sprintf("q=%q", q),
		)
	}

	return users, nil
}
