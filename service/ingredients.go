package service

import (
	"context"
	"strings"

	"foodgram-api/orm"
)

// GetIngredient returns one catalog entry with its usage count filled in.
func (s *Service) GetIngredient(ctx context.Context, ingredientID int64) (*orm.Ingredient, error) {
	ingredient, err := s.db.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		return nil, wrapError(err)
	}

	usage, err := s.db.CountRecipesForIngredient(ctx, ingredientID)
	if err != nil {
		return nil, wrapError(err)
	}
	ingredient.UsageCount = usage

	return ingredient, nil
}

// ListIngredients returns a page of the catalog ordered by name, or by how
// many recipes use each ingredient when sort is "popular".
func (s *Service) ListIngredients(
	ctx context.Context,
	q, sort string,
	limit, offset int,
) ([]orm.Ingredient, error) {
	limit, offset = clampPage(limit, offset)

	ingredients, err := s.db.ListIngredients(ctx, q, sort, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}

	return ingredients, nil
}

// CreateIngredient adds a catalog entry. Meant for seeding and admin use.
func (s *Service) CreateIngredient(
	ctx context.Context,
	name, measurementUnit string,
) (*orm.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, badRequest("name is required")
	}
	measurementUnit = strings.TrimSpace(measurementUnit)
	if measurementUnit == "" {
		return nil, badRequest("measurement_unit is required")
	}

	ingredient := &orm.Ingredient{Name: name, MeasurementUnit: measurementUnit}
	if err := s.db.CreateIngredient(ctx, ingredient); err != nil {
		return nil, wrapError(err)
	}

	return ingredient, nil
}
