package orm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

func (db *DB) GetSubscription(ctx context.Context, userID, followingID int64) (*Subscription, error) {
	subscription, err := gorm.G[Subscription](db.dbGorm).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		First(ctx)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"get subscription",
			fmt.Sprintf("user_id=%d, following_id=%d", userID, followingID),
		)
	}

	return &subscription, nil
}

// CreateSubscription inserts the pair. A duplicate pair trips the unique
// index and comes back as a ConflictError.
func (db *DB) CreateSubscription(ctx context.Context, userID, followingID int64) (*Subscription, error) {
	subscription := Subscription{UserID: userID, FollowingID: followingID}
	err := gorm.G[Subscription](db.dbGorm).Create(ctx, &subscription)
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"create subscription",
			fmt.Sprintf("user_id=%d, following_id=%d", userID, followingID),
		)
	}

	return &subscription, nil
}

func (db *DB) DeleteSubscription(ctx context.Context, userID, followingID int64) (int, error) {
	rows, err := gorm.G[Subscription](db.dbGorm).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Delete(ctx)
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"delete subscription",
			fmt.Sprintf("user_id=%d, following_id=%d", userID, followingID),
		)
	}

	return rows, nil
}

// ListFollowedUsers returns the profiles the user is subscribed to, most
// recently followed first.
func (db *DB) ListFollowedUsers(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]User, error) {
	query := db.dbGorm.WithContext(ctx).
		Model(&Subscription{}).
		Select("users.*").
		Joins("JOIN users ON users.id = subscriptions.following_id").
		Where("subscriptions.user_id = ?", userID)
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?", pattern, pattern)
	}

	var users []User
	err := query.Order("subscriptions.added_at DESC").Limit(limit).Offset(offset).Scan(&users).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list followed users",
			fmt.Sprintf("user_id=%d, q=%q", userID, q),
		)
	}

	return users, nil
}

// ListFollowers returns the profiles following the user.
func (db *DB) ListFollowers(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]User, error) {
	query := db.dbGorm.WithContext(ctx).
		Model(&Subscription{}).
		Select("users.*").
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("subscriptions.following_id = ?", userID)
	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?", pattern, pattern)
	}

	var users []User
	err := query.Order("subscriptions.added_at DESC").Limit(limit).Offset(offset).Scan(&users).Error
	if err != nil {
		return nil, wrapErrorWithDetails(
			err,
			"list followers",
			fmt.Sprintf("user_id=%d, q=%q", userID, q),
		)
	}

	return users, nil
}

func (db *DB) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	count, err := gorm.G[Subscription](db.dbGorm).
		Where("following_id = ?", userID).
		Count(ctx, "*")
	if err != nil {
		return 0, wrapErrorWithDetails(
			err,
			"count followers",
			fmt.Sprintf("user_id=%d", userID),
		)
	}

	return count, nil
}
