//nolint
package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateRecipe(t *testing.T) {
	t.Parallel()

	t.Run("OutOfRangeLeavesNoRow", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		for _, rate := range []int{0, 6, -1} {
			_, err := svc.RateRecipe(ctx, fan.ID, recipe.ID, rate)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, StatusOf(err))
		}

		ratings, err := svc.ListRatings(ctx, recipe.ID, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, ratings)
	})

	t.Run("SecondRatingConflicts", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		rating, err := svc.RateRecipe(ctx, fan.ID, recipe.ID, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, rating.Rate)

		_, err = svc.RateRecipe(ctx, fan.ID, recipe.ID, 5)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, StatusOf(err))

		// The original rating is untouched.
		avg, err := svc.AvgRate(ctx, recipe.ID)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, avg, 0.0001)
	})

	t.Run("UnknownRecipeNotFound", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		fan := registerTestUser(t, svc, "fan@example.com")

		_, err := svc.RateRecipe(context.Background(), fan.ID, 999, 3)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, StatusOf(err))
	})
}

func TestAvgRate(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	author := registerTestUser(t, svc, "author@example.com")
	recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

	avg, err := svc.AvgRate(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	raters := []struct {
		email string
		rate  int
	}{
		{"a@example.com", 5},
		{"b@example.com", 4},
		{"c@example.com", 4},
	}
	for _, r := range raters {
		fan := registerTestUser(t, svc, r.email)
		_, err := svc.RateRecipe(ctx, fan.ID, recipe.ID, r.rate)
		require.NoError(t, err)
	}

	// 13/3 rounded to two decimal places.
	avg, err = svc.AvgRate(ctx, recipe.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.33, avg, 0.0001)
}
