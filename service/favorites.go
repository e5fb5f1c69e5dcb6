package service

import (
	"context"
	"errors"

	"foodgram-api/orm"
)

// AddFavorite marks a recipe as a favorite of the user. Favoriting twice is
// a conflict.
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID int64) (*orm.Favorite, error) {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	_, err := s.db.GetFavorite(ctx, userID, recipeID)
	if err == nil {
		return nil, conflict("recipe already in favorites")
	}
	var nf *orm.NotFoundError
	if !errors.As(err, &nf) {
		return nil, wrapError(err)
	}

	favorite, err := s.db.CreateFavorite(ctx, userID, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	return favorite, nil
}

// RemoveFavorite unmarks the recipe. Removing a recipe that is not a
// favorite is a bad request, not a no-op.
func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return wrapError(err)
	}

	rows, err := s.db.DeleteFavorite(ctx, userID, recipeID)
	if err != nil {
		return wrapError(err)
	}
	if rows == 0 {
		return badRequest("recipe is not in favorites")
	}

	return nil
}

// ListFavorites returns a page of the user's favorited recipes, hydrated.
func (s *Service) ListFavorites(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]orm.Recipe, error) {
	limit, offset = clampPage(limit, offset)

	favorites, err := s.db.ListFavorites(ctx, userID, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	recipes := make([]orm.Recipe, 0, len(favorites))
	for _, favorite := range favorites {
		recipe, err := s.db.GetRecipeByID(ctx, favorite.RecipeID)
		if err != nil {
			return nil, wrapError(err)
		}
		recipes = append(recipes, *recipe)
	}

	if err := s.hydrateRecipes(ctx, recipes); err != nil {
		return nil, wrapError(err)
	}

	return recipes, nil
}
