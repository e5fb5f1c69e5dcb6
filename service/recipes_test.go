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

func TestCreateRecipe(t *testing.T) {
	t.Parallel()

	t.Run("StoresAggregateWithLinks", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		flour := seedIngredient(t, svc, "flour", "g")
		milk := seedIngredient(t, svc, "milk", "ml")

		recipe, err := svc.CreateRecipe(ctx, author.ID, RecipeInput{
			Name:        "Pancakes",
			Image:       "/media/recipes/pancakes.png",
			Text:        "Mix and fry.",
			CookingTime: 20,
			Tags:        []string{"Breakfast", "quick"},
			Ingredients: []orm.IngredientAmount{
				{IngredientID: flour.ID, Amount: 200},
				{IngredientID: milk.ID, Amount: 300},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, author.ID, recipe.AuthorID)
		assert.ElementsMatch(t, []string{"breakfast", "quick"}, recipe.Tags)
		assert.ElementsMatch(t, []orm.IngredientAmount{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: milk.ID, Amount: 300},
		}, recipe.Ingredients)
		assert.Equal(t, int64(0), recipe.Views)
	})

	t.Run("TagNamesFoldAndDedupe", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{
			Tags: []string{"Dinner", "dinner ", "  ", "DINNER"},
		})

		assert.Equal(t, []string{"dinner"}, recipe.Tags)

		tags, err := svc.ListTags(ctx, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "dinner", tags[0].Name)
	})

	t.Run("UnknownIngredientRollsBackAggregate", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")

		_, err := svc.CreateRecipe(ctx, author.ID, RecipeInput{
			Name:        "Ghost stew",
			Image:       "/media/recipes/stew.png",
			Text:        "Nothing to cook with.",
			CookingTime: 30,
			Ingredients: []orm.IngredientAmount{{IngredientID: 999, Amount: 10}},
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, StatusOf(err))

		recipes, err := svc.ListRecipes(ctx, "", "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, recipes)
	})

	t.Run("RejectsBadFields", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")

		tests := []struct {
			name  string
			input RecipeInput
		}{
			{"EmptyName", RecipeInput{Name: " ", Image: "x", Text: "t", CookingTime: 5}},
			{"EmptyText", RecipeInput{Name: "n", Image: "x", Text: " ", CookingTime: 5}},
			{"CookingTimeTooLow", RecipeInput{Name: "n", Image: "x", Text: "t", CookingTime: 0}},
			{"CookingTimeTooHigh", RecipeInput{Name: "n", Image: "x", Text: "t", CookingTime: 32001}},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.CreateRecipe(ctx, author.ID, tc.input)
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, StatusOf(err))
			})
		}
	})

	t.Run("ImageIsOptional", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")

		recipe, err := svc.CreateRecipe(ctx, author.ID, RecipeInput{
			Name:        "Toast",
			Text:        "Toast the bread.",
			CookingTime: 5,
		})
		require.NoError(t, err)
		assert.Empty(t, recipe.Image)

		empty := ""
		updated, err := svc.UpdateRecipe(ctx, author.ID, recipe.ID, RecipeUpdate{Image: &empty})
		require.NoError(t, err)
		assert.Empty(t, updated.Image)
	})
}

func TestUpdateRecipe(t *testing.T) {
	t.Parallel()

	t.Run("ReplacesIngredientLinksWholesale", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		flour := seedIngredient(t, svc, "flour", "g")
		milk := seedIngredient(t, svc, "milk", "ml")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{
			Ingredients: []orm.IngredientAmount{
				{IngredientID: flour.ID, Amount: 5},
				{IngredientID: milk.ID, Amount: 10},
			},
		})

		replacement := []orm.IngredientAmount{{IngredientID: flour.ID, Amount: 7}}
		updated, err := svc.UpdateRecipe(ctx, author.ID, recipe.ID, RecipeUpdate{
			Ingredients: &replacement,
		})
		require.NoError(t, err)

		assert.Equal(t, []orm.IngredientAmount{
			{IngredientID: flour.ID, Amount: 7},
		}, updated.Ingredients)
	})

	t.Run("TagUpdateIsIdempotent", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{
			Tags: []string{"dinner", "soup"},
		})

		same := []string{"dinner", "soup"}
		updated, err := svc.UpdateRecipe(ctx, author.ID, recipe.ID, RecipeUpdate{Tags: &same})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"dinner", "soup"}, updated.Tags)

		tags, err := svc.ListTags(ctx, "", 0, 0)
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("NilFieldsAreUntouched", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{
			Name: "Original", Tags: []string{"soup"},
		})

		newName := "Renamed"
		updated, err := svc.UpdateRecipe(ctx, author.ID, recipe.ID, RecipeUpdate{Name: &newName})
		require.NoError(t, err)

		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, recipe.Text, updated.Text)
		assert.Equal(t, []string{"soup"}, updated.Tags)
	})

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		other := registerTestUser(t, svc, "other@example.com")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		newName := "Hijacked"
		_, err := svc.UpdateRecipe(ctx, other.ID, recipe.ID, RecipeUpdate{Name: &newName})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, StatusOf(err))
	})

	t.Run("EmptyUpdateIsBadRequest", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		_, err := svc.UpdateRecipe(ctx, author.ID, recipe.ID, RecipeUpdate{})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	})
}

func TestDeleteRecipe(t *testing.T) {
	t.Parallel()

	t.Run("CascadesToDependents", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		flour := seedIngredient(t, svc, "flour", "g")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{
			Tags:        []string{"dinner"},
			Ingredients: []orm.IngredientAmount{{IngredientID: flour.ID, Amount: 100}},
		})

		_, err := svc.AddFavorite(ctx, fan.ID, recipe.ID)
		require.NoError(t, err)
		_, err = svc.RateRecipe(ctx, fan.ID, recipe.ID, 5)
		require.NoError(t, err)
		praise := "Looks great"
		_, err = svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{Text: &praise})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteRecipe(ctx, author.ID, recipe.ID))

		_, err = svc.GetRecipe(ctx, recipe.ID)
		assert.Equal(t, http.StatusNotFound, StatusOf(err))

		favorites, err := svc.ListFavorites(ctx, fan.ID, "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, favorites)

		// The tag dictionary itself survives the cascade.
		tags, err := svc.ListTags(ctx, "", 0, 0)
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("NonAuthorForbidden", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		other := registerTestUser(t, svc, "other@example.com")

		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		err := svc.DeleteRecipe(ctx, other.ID, recipe.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, StatusOf(err))

		_, err = svc.GetRecipe(ctx, recipe.ID)
		assert.NoError(t, err)
	})
}

func TestRecipeViews(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	author := registerTestUser(t, svc, "author@example.com")
	recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

	first, err := svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)

	// Listing endpoints never count as views.
	listed, err := svc.ListRecipes(ctx, "", "", 0, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(2), listed[0].Views)

	byAuthor, err := svc.ListRecipesByAuthor(ctx, author.ID, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, int64(2), byAuthor[0].Views)
}

func TestListRecipesPopularSort(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	author := registerTestUser(t, svc, "author@example.com")

	quiet := seedRecipe(t, svc, author.ID, RecipeInput{Name: "Quiet"})
	popular := seedRecipe(t, svc, author.ID, RecipeInput{Name: "Popular"})

	for range 3 {
		_, err := svc.GetRecipe(ctx, popular.ID)
		require.NoError(t, err)
	}

	recipes, err := svc.ListRecipes(ctx, "", "popular", 0, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, popular.ID, recipes[0].ID)
	assert.Equal(t, quiet.ID, recipes[1].ID)
}

func TestRecipeStats(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()
	author := registerTestUser(t, svc, "author@example.com")
	fanA := registerTestUser(t, svc, "fana@example.com")
	fanB := registerTestUser(t, svc, "fanb@example.com")

	recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

	_, err := svc.AddFavorite(ctx, fanA.ID, recipe.ID)
	require.NoError(t, err)
	_, err = svc.RateRecipe(ctx, fanA.ID, recipe.ID, 4)
	require.NoError(t, err)
	_, err = svc.RateRecipe(ctx, fanB.ID, recipe.ID, 5)
	require.NoError(t, err)
	nice := "Nice"
	_, err = svc.CreateComment(ctx, fanB.ID, recipe.ID, CommentInput{Text: &nice})
	require.NoError(t, err)

	stats, err := svc.RecipeStats(ctx, recipe.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.FavoritesCount)
	assert.Equal(t, int64(1), stats.CommentsCount)
	assert.InDelta(t, 4.5, stats.AvgRate, 0.0001)
	// Stats never touch the view counter.
	assert.Equal(t, int64(0), stats.Views)
}
