//nolint
package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments(t *testing.T) {
	t.Parallel()

	t.Run("TextOrImageRequired", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		blank := "  "
		_, err := svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{Text: &blank})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))

		photo := "/media/comments/photo.png"
		comment, err := svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{Image: &photo})
		require.NoError(t, err)
		assert.Empty(t, comment.Text)
		assert.NotEmpty(t, comment.Image)
	})

	t.Run("OnlyAuthorUpdates", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		first := "First"
		comment, err := svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{Text: &first})
		require.NoError(t, err)

		edited := "Edited"
		updated, err := svc.UpdateComment(ctx, fan.ID, comment.ID, CommentInput{Text: &edited})
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Text)

		hijacked := "Hijacked"
		_, err = svc.UpdateComment(ctx, author.ID, comment.ID, CommentInput{Text: &hijacked})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, StatusOf(err))
	})

	t.Run("UpdateKeepsUnsetFields", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		text := "With a photo"
		photo := "/media/comments/photo.png"
		comment, err := svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{
			Text:  &text,
			Image: &photo,
		})
		require.NoError(t, err)

		edited := "Edited"
		updated, err := svc.UpdateComment(ctx, fan.ID, comment.ID, CommentInput{Text: &edited})
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Text)
		assert.Equal(t, comment.Image, updated.Image)

		empty := ""
		_, err = svc.UpdateComment(ctx, fan.ID, comment.ID, CommentInput{
			Text:  &empty,
			Image: &empty,
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, StatusOf(err))
	})

	t.Run("OnlyAuthorDeletes", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		spam := "Spam"
		comment, err := svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{Text: &spam})
		require.NoError(t, err)

		err = svc.DeleteComment(ctx, author.ID, comment.ID)
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, StatusOf(err))

		require.NoError(t, svc.DeleteComment(ctx, fan.ID, comment.ID))

		comments, err := svc.ListComments(ctx, recipe.ID, "", 0, 0)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(t)
		ctx := context.Background()
		author := registerTestUser(t, svc, "author@example.com")
		fan := registerTestUser(t, svc, "fan@example.com")
		recipe := seedRecipe(t, svc, author.ID, RecipeInput{})

		for _, text := range []string{"first", "second", "third"} {
			_, err := svc.CreateComment(ctx, fan.ID, recipe.ID, CommentInput{Text: &text})
			require.NoError(t, err)
		}

		comments, err := svc.ListComments(ctx, recipe.ID, "", 0, 0)
		require.NoError(t, err)
		require.Len(t, comments, 3)
	})
}
