package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram-api/orm"

	"github.com/rs/zerolog/log"
)

const (
	minCookingTime = 1
	maxCookingTime = 32000
	minAmount      = 1
	maxAmount      = 32000
)

// RecipeInput carries the full recipe payload for creation.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	Tags        []string
	Ingredients []orm.IngredientAmount
}

// RecipeUpdate carries a partial recipe payload. Nil fields are left
// untouched; non-nil tag and ingredient lists replace the existing links
// wholesale.
type RecipeUpdate struct {
	Name        *string
	Image       *string
	Text        *string
	CookingTime *int
	Tags        *[]string
	Ingredients *[]orm.IngredientAmount
}

// RecipeStats aggregates engagement counters for a single recipe.
type RecipeStats struct {
	RecipeID       int64   `json:"recipe_id"`
	Views          int64   `json:"views"`
	FavoritesCount int64   `json:"favorites_count"`
	CommentsCount  int64   `json:"comments_count"`
	AvgRate        float64 `json:"avg_rate"`
}

// CreateRecipe stores the recipe together with its tag and ingredient links
// in one transaction. Any failure rolls everything back.
func (s *Service) CreateRecipe(
	ctx context.Context,
	authorID int64,
	input RecipeInput,
) (*orm.Recipe, error) {
	if err := validateRecipeFields(input.Name, input.Text, input.CookingTime); err != nil {
		return nil, err
	}

	imageURL, err := s.media.Resolve(input.Image, "recipes")
	if err != nil {
		return nil, wrapError(err)
	}

	recipe := &orm.Recipe{
		AuthorID:    authorID,
		Name:        strings.TrimSpace(input.Name),
		Image:       imageURL,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	err = s.db.Transaction(func(tx *orm.DB) error {
		if err := tx.CreateRecipe(ctx, recipe); err != nil {
			return err
		}
		if err := s.syncRecipeTags(ctx, tx, recipe.ID, input.Tags); err != nil {
			return err
		}

		return s.syncRecipeIngredients(ctx, tx, recipe.ID, input.Ingredients)
	})
	if err != nil {
		return nil, wrapError(err)
	}

	log.Info().
		Int64("recipe_id", recipe.ID).
		Int64("author_id", authorID).
		Msg("recipe created")

	if err := s.hydrateRecipe(ctx, recipe); err != nil {
		return nil, wrapError(err)
	}

	return recipe, nil
}

// UpdateRecipe applies a partial update. Only the author may update; a
// provided tag or ingredient list fully replaces the existing links.
func (s *Service) UpdateRecipe(
	ctx context.Context,
	userID, recipeID int64,
	update RecipeUpdate,
) (*orm.Recipe, error) {
	if update.Name == nil && update.Image == nil && update.Text == nil &&
		update.CookingTime == nil && update.Tags == nil && update.Ingredients == nil {
		return nil, badRequest("nothing to update")
	}

	current, err := s.db.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}
	if current.AuthorID != userID {
		return nil, forbidden("only the author can update a recipe")
	}

	name := current.Name
	if update.Name != nil {
		name = strings.TrimSpace(*update.Name)
	}
	text := current.Text
	if update.Text != nil {
		text = *update.Text
	}
	cookingTime := current.CookingTime
	if update.CookingTime != nil {
		cookingTime = *update.CookingTime
	}
	if err := validateRecipeFields(name, text, cookingTime); err != nil {
		return nil, err
	}

	image := current.Image
	if update.Image != nil {
		image, err = s.media.Resolve(*update.Image, "recipes")
		if err != nil {
			return nil, wrapError(err)
		}
	}

	var updated *orm.Recipe
	err = s.db.Transaction(func(tx *orm.DB) error {
		var txErr error
		updated, txErr = tx.UpdateRecipe(ctx, recipeID, name, image, text, cookingTime)
		if txErr != nil {
			return txErr
		}
		if update.Tags != nil {
			if txErr := s.syncRecipeTags(ctx, tx, recipeID, *update.Tags); txErr != nil {
				return txErr
			}
		}
		if update.Ingredients != nil {
			return s.syncRecipeIngredients(ctx, tx, recipeID, *update.Ingredients)
		}

		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}

	if err := s.hydrateRecipe(ctx, updated); err != nil {
		return nil, wrapError(err)
	}

	return updated, nil
}

// DeleteRecipe removes the recipe and, through cascades, every dependent row.
// Only the author may delete.
func (s *Service) DeleteRecipe(ctx context.Context, userID, recipeID int64) error {
	recipe, err := s.db.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return wrapError(err)
	}
	if recipe.AuthorID != userID {
		return forbidden("only the author can delete a recipe")
	}

	err = s.db.Transaction(func(tx *orm.DB) error {
		rows, txErr := tx.DeleteRecipe(ctx, recipeID)
		if txErr != nil {
			return txErr
		}
		if rows == 0 {
			return &orm.NotFoundError{Search: fmt.Sprintf("recipe id=%d", recipeID)}
		}

		return nil
	})
	if err != nil {
		return wrapError(err)
	}

	log.Info().
		Int64("recipe_id", recipeID).
		Int64("author_id", userID).
		Msg("recipe deleted")

	return nil
}

// GetRecipe returns one recipe and counts the fetch as a view. Listing
// endpoints never touch the counter; only this detail path does.
func (s *Service) GetRecipe(ctx context.Context, recipeID int64) (*orm.Recipe, error) {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	if err := s.db.IncrementRecipeViews(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	recipe, err := s.db.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	if err := s.hydrateRecipe(ctx, recipe); err != nil {
		return nil, wrapError(err)
	}

	return recipe, nil
}

// ListRecipes returns a page of recipes ordered by publication date, or by
// views when sort is "popular".
func (s *Service) ListRecipes(
	ctx context.Context,
	q, sort string,
	limit, offset int,
) ([]orm.Recipe, error) {
	limit, offset = clampPage(limit, offset)

	recipes, err := s.db.ListRecipes(ctx, q, sort, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	if err := s.hydrateRecipes(ctx, recipes); err != nil {
		return nil, wrapError(err)
	}

	return recipes, nil
}

// ListRecipesByAuthor returns a page of one author's recipes.
func (s *Service) ListRecipesByAuthor(
	ctx context.Context,
	authorID int64,
	q string,
	limit, offset int,
) ([]orm.Recipe, error) {
	if _, err := s.db.GetUserByID(ctx, authorID); err != nil {
		return nil, wrapError(err)
	}

	limit, offset = clampPage(limit, offset)

	recipes, err := s.db.ListRecipesByAuthor(ctx, authorID, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	if err := s.hydrateRecipes(ctx, recipes); err != nil {
		return nil, wrapError(err)
	}

	return recipes, nil
}

// RecipeStats returns the engagement counters for a recipe without touching
// the view counter.
func (s *Service) RecipeStats(ctx context.Context, recipeID int64) (*RecipeStats, error) {
	recipe, err := s.db.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	favorites, err := s.db.CountFavoritesForRecipe(ctx, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	comments, err := s.db.CountCommentsForRecipe(ctx, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	avg, err := s.avgRate(ctx, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	return &RecipeStats{
		RecipeID:       recipeID,
		Views:          recipe.Views,
		FavoritesCount: favorites,
		CommentsCount:  comments,
		AvgRate:        avg,
	}, nil
}

func validateRecipeFields(name, text string, cookingTime int) error {
	if strings.TrimSpace(name) == "" {
		return badRequest("name is required")
	}
	if strings.TrimSpace(text) == "" {
		return badRequest("text is required")
	}
	if cookingTime < minCookingTime || cookingTime > maxCookingTime {
		return badRequest(fmt.Sprintf(
			"cooking_time must be between %d and %d",
			minCookingTime, maxCookingTime,
		))
	}

	return nil
}

// normalizeTagNames trims and lower-cases the names, drops empties and
// removes duplicates while keeping the first occurrence order.
func normalizeTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}

	return normalized
}

// syncRecipeTags replaces the recipe's tag links with the given set,
// creating missing tags on the fly.
func (s *Service) syncRecipeTags(
	ctx context.Context,
	tx *orm.DB,
	recipeID int64,
	names []string,
) error {
	if err := tx.DeleteRecipeTagLinks(ctx, recipeID); err != nil {
		return err
	}

	for _, name := range normalizeTagNames(names) {
		tag, err := tx.GetTagByName(ctx, name)
		if err != nil {
			var nf *orm.NotFoundError
			if !errors.As(err, &nf) {
				return err
			}
			tag, err = tx.CreateTag(ctx, name)
			if err != nil {
				return err
			}
		}
		if err := tx.UpsertRecipeTagLink(ctx, recipeID, tag.ID); err != nil {
			return err
		}
	}

	return nil
}

// syncRecipeIngredients replaces the recipe's ingredient links with the
// given pairs. Missing ingredients are an error, never created here.
func (s *Service) syncRecipeIngredients(
	ctx context.Context,
	tx *orm.DB,
	recipeID int64,
	items []orm.IngredientAmount,
) error {
	if err := tx.DeleteRecipeIngredientLinks(ctx, recipeID); err != nil {
		return err
	}

	for _, item := range items {
		if item.IngredientID <= 0 {
			return badRequest("ingredient_id is required")
		}
		if item.Amount < minAmount || item.Amount > maxAmount {
			return badRequest(fmt.Sprintf(
				"amount must be between %d and %d",
				minAmount, maxAmount,
			))
		}
		if _, err := tx.GetIngredientByID(ctx, item.IngredientID); err != nil {
			return err
		}
		if err := tx.UpsertRecipeIngredientLink(ctx, recipeID, item.IngredientID, item.Amount); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) hydrateRecipe(ctx context.Context, recipe *orm.Recipe) error {
	tags, err := s.db.ListRecipeTagNames(ctx, recipe.ID)
	if err != nil {
		return err
	}

	ingredients, err := s.db.ListRecipeIngredients(ctx, recipe.ID)
	if err != nil {
		return err
	}

	recipe.Tags = tags
	recipe.Ingredients = ingredients

	return nil
}

func (s *Service) hydrateRecipes(ctx context.Context, recipes []orm.Recipe) error {
	for i := range recipes {
		if err := s.hydrateRecipe(ctx, &recipes[i]); err != nil {
			return err
		}
	}

	return nil
}
