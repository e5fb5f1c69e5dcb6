//nolint
package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	t.Parallel()

	t.Run("AddListRemove", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{Tags: []string{"soup"}})

		_, err := svc.AddFavorite(ctx, fan.ID, recipe.ID)
		require.NoError(t, err)

		favorites, err := svc.ListFavorites(ctx, fan.ID, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, favorites, 1)
		assert.Equal(t, recipe.ID, favorites[0].ID)
		// Favorites listings come back hydrated.
		assert.Equal(t, []string{"soup"}, favorites[0].Tags)

		require.NoError(t, svc.RemoveFavorite(ctx, fan.ID, recipe.ID))

		favorites, err = svc.ListFavorites(ctx, fan.ID, "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, favorites)
	})

	t.Run("DuplicateIsConflict", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		_, err := svc.AddFavorite(ctx, fan.ID, recipe.ID)
		require.NoError(t, err)

		_, err = svc.AddFavorite(ctx, fan.ID, recipe.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, StatusOf(err))
	})

	t.Run("RemoveWithoutAddIsBadRequest", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		err := svc.RemoveFavorite(ctx, fan.ID, recipe.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	})
}
