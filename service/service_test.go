//nolint
package service

import (
	"context"
	"testing"
	"time"

	"foodgram-api/auth"
	"foodgram-api/media"
	"foodgram-api/media/memoryStore"
	"foodgram-api/orm"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// newTestService opens a private in-memory sqlite database with foreign keys
// enabled so cascade deletes behave like in production.
func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := orm.Open(sqlite.Open("file::memory:?_foreign_keys=on"))
	require.NoError(t, err)

	sqlDB, err := db.Gorm().DB()
	require.NoError(t, err)
	// A second connection would see an empty database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	tokens := auth.NewTokenIssuer("test-secret", time.Hour, 24*time.Hour)

	return New(db, media.NewService(memoryStore.New()), tokens)
}

func registerTestUser(t *testing.T, svc *Service, email string) *orm.User {
	t.Helper()

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	})
	require.NoError(t, err)

	return user
}

func seedIngredient(t *testing.T, svc *Service, name, unit string) *orm.Ingredient {
	t.Helper()

	ingredient, err := svc.CreateIngredient(context.Background(), name, unit)
	require.NoError(t, err)

	return ingredient
}

func seedRecipe(t *testing.T, svc *Service, authorID int64, input RecipeInput) *orm.Recipe {
	t.Helper()

	if input.Name == "" {
		input.Name = "Borscht"
	}
	if input.Image == "" {
		input.Image = "/media/recipes/existing.png"
	}
	if input.Text == "" {
		input.Text = "Cook it slowly."
	}
	if input.CookingTime == 0 {
		input.CookingTime = 45
	}

	recipe, err := svc.CreateRecipe(context.Background(), authorID, input)
	require.NoError(t, err)

	return recipe
}
