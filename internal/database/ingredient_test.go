package database

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ingredientNames(ingredients []Ingredient) []string {
	return lo.Map(ingredients, func(i Ingredient, _ int) string { return i.Name })
}

func TestListIngredients_OrderedAndScoped(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	testRecipe(t, c, user.ID, "Curry", nil, []string{"Salt", "Turmeric"})
	testRecipe(t, c, other.ID, "Stew", nil, []string{"Pepper"})

	ingredients, err := c.ListIngredients(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Turmeric", "Salt"}, ingredientNames(ingredients))
}

func TestListIngredients_AssignedOnlyDeduplicated(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	testRecipe(t, c, user.ID, "Pancakes", nil, []string{"Eggs"})
	testRecipe(t, c, user.ID, "Omelette", nil, []string{"Eggs"})
	_, err := getOrCreateIngredient(c.db, user.ID, "Flour")
	require.NoError(t, err)

	ingredients, err := c.ListIngredients(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eggs"}, ingredientNames(ingredients))
}

func TestUpdateIngredient_ForeignIsNotFound(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	ingredient, err := getOrCreateIngredient(c.db, other.ID, "Salt")
	require.NoError(t, err)

	_, err = c.UpdateIngredient(ctx, user.ID, ingredient.ID, "Sugar")
	assert.ErrorIs(t, err, ErrNotFound)

	err = c.DeleteIngredient(ctx, user.ID, ingredient.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
