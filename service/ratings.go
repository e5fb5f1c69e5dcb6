package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"foodgram-api/orm"
)

const (
	minRate = 1
	maxRate = 5
)

// RateRecipe records a one-time rating. A second rating from the same user
// for the same recipe is rejected; ratings are never updated or removed.
func (s *Service) RateRecipe(
	ctx context.Context,
	userID, recipeID int64,
	rate int,
) (*orm.Rating, error) {
	if rate < minRate || rate > maxRate {
		return nil, badRequest(fmt.Sprintf("rate must be between %d and %d", minRate, maxRate))
	}

	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	_, err := s.db.GetUserRating(ctx, userID, recipeID)
	if err == nil {
		return nil, conflict("recipe already rated")
	}
	var nf *orm.NotFoundError
	if !errors.As(err, &nf) {
		return nil, wrapError(err)
	}

	rating, err := s.db.CreateRating(ctx, userID, recipeID, rate)
	if err != nil {
		return nil, wrapError(err)
	}

	return rating, nil
}

// ListRatings returns a page of a recipe's ratings, newest first.
func (s *Service) ListRatings(
	ctx context.Context,
	recipeID int64,
	limit, offset int,
) ([]orm.Rating, error) {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	limit, offset = clampPage(limit, offset)

	ratings, err := s.db.ListRatings(ctx, recipeID, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return ratings, nil
}

// AvgRate returns the recipe's average rating rounded to two decimal places,
// or zero when the recipe has no ratings yet.
func (s *Service) AvgRate(ctx context.Context, recipeID int64) (float64, error) {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return 0, wrapError(err)
	}

	avg, err := s.avgRate(ctx, recipeID)
	if err != nil {
		return 0, wrapError(err)
	}

	return avg, nil
}

func (s *Service) avgRate(ctx context.Context, recipeID int64) (float64, error) {
	avg, err := s.db.AvgRate(ctx, recipeID)
	if err != nil {
		return 0, err
	}

	return math.Round(avg*100) / 100, nil
}
