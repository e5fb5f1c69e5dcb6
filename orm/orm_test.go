//nolint
package orm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(sqlite.Open("file::memory:?_foreign_keys=on"))
	require.NoError(t, err)

	sqlDB, err := db.Gorm().DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func seedUserAndRecipe(t *testing.T, db *DB) *Recipe {
	t.Helper()
	ctx := context.Background()

	user := &User{
		Email:        "chef@example.com",
		FirstName:    "Test",
		LastName:     "Chef",
		PasswordHash: "x",
	}
	require.NoError(t, db.CreateUser(ctx, user))

	recipe := &Recipe{
		AuthorID:    user.ID,
		Name:        "Bread",
		Image:       "/media/recipes/bread.png",
		Text:        "Bake it.",
		CookingTime: 90,
	}
	require.NoError(t, db.CreateRecipe(ctx, recipe))

	return recipe
}

func TestUpsertRecipeTagLink(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	recipe := seedUserAndRecipe(t, db)

	tag, err := db.CreateTag(ctx, "baking")
	require.NoError(t, err)

	require.NoError(t, db.UpsertRecipeTagLink(ctx, recipe.ID, tag.ID))
	// The second upsert refreshes the timestamp instead of duplicating.
	require.NoError(t, db.UpsertRecipeTagLink(ctx, recipe.ID, tag.ID))

	names, err := db.ListRecipeTagNames(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"baking"}, names)
}

func TestUpsertRecipeIngredientLink(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	recipe := seedUserAndRecipe(t, db)

	flour := &Ingredient{Name: "flour", MeasurementUnit: "g"}
	require.NoError(t, db.CreateIngredient(ctx, flour))

	require.NoError(t, db.UpsertRecipeIngredientLink(ctx, recipe.ID, flour.ID, 100))
	// The second upsert overwrites the amount.
	require.NoError(t, db.UpsertRecipeIngredientLink(ctx, recipe.ID, flour.ID, 250))

	amounts, err := db.ListRecipeIngredients(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, []IngredientAmount{{IngredientID: flour.ID, Amount: 250}}, amounts)
}

func TestGetTagByNameIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateTag(ctx, "dinner")
	require.NoError(t, err)

	found, err := db.GetTagByName(ctx, "DINNER")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = db.GetTagByName(ctx, "missing")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ctx := context.Background()
	recipe := seedUserAndRecipe(t, db)

	err := db.Transaction(func(tx *DB) error {
		tag, err := tx.CreateTag(ctx, "doomed")
		if err != nil {
			return err
		}
		if err := tx.UpsertRecipeTagLink(ctx, recipe.ID, tag.ID); err != nil {
			return err
		}

		return &BadInputError{Reason: "abort"}
	})
	require.Error(t, err)

	_, err = db.GetTagByName(ctx, "doomed")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	names, err := db.ListRecipeTagNames(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, names)
}
