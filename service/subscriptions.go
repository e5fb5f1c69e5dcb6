package service

import (
	"context"
	"errors"

	"foodgram-api/orm"
)

// Subscribe makes userID follow followingID. Subscribing to oneself is a bad
// request; subscribing twice is a conflict.
func (s *Service) Subscribe(
	ctx context.Context,
	userID, followingID int64,
) (*orm.Subscription, error) {
	if userID == followingID {
		return nil, badRequest("cannot subscribe to yourself")
	}

	if _, err := s.db.GetUserByID(ctx, followingID); err != nil {
		return nil, wrapError(err)
	}

	_, err := s.db.GetSubscription(ctx, userID, followingID)
	if err == nil {
		return nil, conflict("already subscribed")
	}
	var nf *orm.NotFoundError
	if !errors.As(err, &nf) {
		return nil, wrapError(err)
	}

	subscription, err := s.db.CreateSubscription(ctx, userID, followingID)
	if err != nil {
		return nil, wrapError(err)
	}

	return subscription, nil
}

// Unsubscribe removes the follow link. Unsubscribing when not subscribed is
// a bad request.
func (s *Service) Unsubscribe(ctx context.Context, userID, followingID int64) error {
	if _, err := s.db.GetUserByID(ctx, followingID); err != nil {
		return wrapError(err)
	}

	rows, err := s.db.DeleteSubscription(ctx, userID, followingID)
	if err != nil {
		return wrapError(err)
	}
	if rows == 0 {
		return badRequest("not subscribed to this user")
	}

	return nil
}

// ListSubscriptions returns a page of the users that userID follows.
func (s *Service) ListSubscriptions(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]orm.User, error) {
	limit, offset = clampPage(limit, offset)

	users, err := s.db.ListFollowedUsers(ctx, userID, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return users, nil
}

// ListFollowers returns a page of the users following userID.
func (s *Service) ListFollowers(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]orm.User, error) {
	if _, err := s.db.GetUserByID(ctx, userID); err != nil {
		return nil, wrapError(err)
	}

	limit, offset = clampPage(limit, offset)

	users, err := s.db.ListFollowers(ctx, userID, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return users, nil
}
