package service

import (
	"context"
	"errors"
	"sort"

	"foodgram-api/orm"
)

// ShoppingListEntry is one aggregated line of the shopping list: the total
// amount of an ingredient across every recipe in the list.
type ShoppingListEntry struct {
	IngredientID    int64  `json:"ingredient_id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

// AddToShoppingList puts a recipe on the user's shopping list. Adding twice
// is a conflict.
func (s *Service) AddToShoppingList(
	ctx context.Context,
	userID, recipeID int64,
) (*orm.ShoppingListItem, error) {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, wrapError(err)
	}

	_, err := s.db.GetShoppingListItem(ctx, userID, recipeID)
	if err == nil {
		return nil, conflict("recipe already in shopping list")
	}
	var nf *orm.NotFoundError
	if !errors.As(err, &nf) {
		return nil, wrapError(err)
	}

	item, err := s.db.CreateShoppingListItem(ctx, userID, recipeID)
	if err != nil {
		return nil, wrapError(err)
	}

	return item, nil
}

// RemoveFromShoppingList takes a recipe off the list. Removing an absent
// recipe is a bad request.
func (s *Service) RemoveFromShoppingList(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.db.GetRecipeByID(ctx, recipeID); err != nil {
		return wrapError(err)
	}

	rows, err := s.db.DeleteShoppingListItem(ctx, userID, recipeID)
	if err != nil {
		return wrapError(err)
	}
	if rows == 0 {
		return badRequest("recipe is not in shopping list")
	}

	return nil
}

// ListShoppingList returns a page of the recipes on the user's list.
func (s *Service) ListShoppingList(
	ctx context.Context,
	userID int64,
	q string,
	limit, offset int,
) ([]orm.Recipe, error) {
	limit, offset = clampPage(limit, offset)

	items, err := s.db.ListShoppingListItems(ctx, userID, q, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	recipes := make([]orm.Recipe, 0, len(items))
	for _, item := range items {
		recipe, err := s.db.GetRecipeByID(ctx, item.RecipeID)
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

// AggregateShoppingList sums ingredient amounts across every recipe on the
// user's list, one entry per ingredient, sorted by name.
func (s *Service) AggregateShoppingList(
	ctx context.Context,
	userID int64,
) ([]ShoppingListEntry, error) {
	items, err := s.db.ListShoppingListItems(ctx, userID, "", maxLimit, 0)
	if err != nil {
		return nil, wrapError(err)
	}

	totals := make(map[int64]*ShoppingListEntry)
	for _, item := range items {
		amounts, err := s.db.ListRecipeIngredients(ctx, item.RecipeID)
		if err != nil {
			return nil, wrapError(err)
		}
		for _, amount := range amounts {
			entry, ok := totals[amount.IngredientID]
			if !ok {
				ingredient, err := s.db.GetIngredientByID(ctx, amount.IngredientID)
				if err != nil {
					return nil, wrapError(err)
				}
				entry = &ShoppingListEntry{
					IngredientID:    ingredient.ID,
					Name:            ingredient.Name,
					MeasurementUnit: ingredient.MeasurementUnit,
				}
				totals[amount.IngredientID] = entry
			}
			entry.TotalAmount += amount.Amount
		}
	}

	entries := make([]ShoppingListEntry, 0, len(totals))
	for _, entry := range totals {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}
