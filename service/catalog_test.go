//nolint
package service

import (
	"context"
	"net/http"
	"testing"

	"foodgram-api/orm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	t.Parallel()

	t.Run("DuplicateNameConflictsCaseInsensitively", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()

		tag, err := svc.CreateTag(ctx, "Dinner")
		require.NoError(t, err)
		assert.Equal(t, "dinner", tag.Name)

		_, err = svc.CreateTag(ctx, "DINNER")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, StatusOf(err))
	})

	t.Run("RenameKeepsUniqueness", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()

		dinner, err := svc.CreateTag(ctx, "dinner")
		require.NoError(t, err)
		_, err = svc.CreateTag(ctx, "soup")
		require.NoError(t, err)

		_, err = svc.UpdateTag(ctx, dinner.ID, "Soup")
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, StatusOf(err))

		// Renaming to itself with different casing is allowed.
		renamed, err := svc.UpdateTag(ctx, dinner.ID, "Dinner")
		require.NoError(t, err)
		assert.Equal(t, "dinner", renamed.Name)
	})

	t.Run("DeleteDetachesFromRecipes", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{Tags: []string{"dinner"}})

		tags, err := svc.ListTags(ctx, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, tags, 1)

		require.NoError(t, svc.DeleteTag(ctx, tags[0].ID))

		refreshed, err := svc.GetRecipe(ctx, recipe.ID)
		require.NoError(t, err)
		assert.Empty(t, refreshed.Tags)
	})
}

func TestIngredients(t *testing.T) {
	t.Parallel()

	t.Run("UsageCountTracksDistinctRecipes", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		flour := seedIngredient(t, svc, "flour", "g")
		salt := seedIngredient(t, svc, "salt", "g")

		seedRecipe(t, svc, author.ID, RecipeInput{
			Name:        "Bread",
			Ingredients: []orm.IngredientAmount{{IngredientID: flour.ID, Amount: 500}},
		})
		seedRecipe(t, svc, author.ID, RecipeInput{
			Name:        "Pancakes",
			Ingredients: []orm.IngredientAmount{{IngredientID: flour.ID, Amount: 200}},
		})

		got, err := svc.GetIngredient(ctx, flour.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.UsageCount)

		got, err = svc.GetIngredient(ctx, salt.ID)
		require.NoError(t, err)
		assert.Zero(t, got.UsageCount)
	})

	t.Run("PopularSortPutsUsedFirst", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		flour := seedIngredient(t, svc, "flour", "g")
		seedIngredient(t, svc, "anise", "g")

		seedRecipe(t, svc, author.ID, RecipeInput{
			Ingredients: []orm.IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
		})

		ingredients, err := svc.ListIngredients(ctx, "", "popular", 0, 0)
		require.NoError(t, err)
		require.Len(t, ingredients, 2)
		assert.Equal(t, "flour", ingredients[0].Name)
		assert.Equal(t, int64(1), ingredients[0].UsageCount)

		// Default sort is alphabetical.
		ingredients, err = svc.ListIngredients(ctx, "", "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, "anise", ingredients[0].Name)
	})
}
