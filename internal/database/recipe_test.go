package database

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipeIDs(recipes []Recipe) []uint {
	return lo.Map(recipes, func(r Recipe, _ int) uint { return r.ID })
}

func TestCreateRecipe(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := &Recipe{
		UserID:      user.ID,
		Title:       "Sample recipe",
		TimeMinutes: 5,
		Price:       decimal.RequireFromString("5.50"),
		Description: "Sample description",
		Link:        "http://example.com/recipe.pdf",
	}
	require.NoError(t, c.CreateRecipe(ctx, recipe, []string{"Indian", "Dinner"}, []string{"Salt"}))

	loaded, err := c.GetRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sample recipe", loaded.String())
	assert.True(t, loaded.Price.Equal(decimal.RequireFromString("5.50")))
	assert.ElementsMatch(t, []string{"Indian", "Dinner"}, tagNames(loaded.Tags))
	assert.ElementsMatch(t, []string{"Salt"}, ingredientNames(loaded.Ingredients))
}

func TestCreateRecipe_CreateOrGetIsIdempotent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	testRecipe(t, c, user.ID, "Curry", []string{"Indian"}, nil)
	testRecipe(t, c, user.ID, "Dal", []string{"Indian"}, nil)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Indian"}, tagNames(tags), "the existing tag must be reused, not duplicated")
}

func TestCreateRecipe_DuplicateInputNamesCollapse(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Indian", "Indian"}, []string{"Salt", "Salt"})

	loaded, err := c.GetRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Tags, 1)
	assert.Len(t, loaded.Ingredients, 1)
}

func TestCreateRecipe_SeparateNamespacesPerUser(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	testRecipe(t, c, other.ID, "Stew", []string{"Indian"}, nil)
	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Indian"}, nil)

	loaded, err := c.GetRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, user.ID, loaded.Tags[0].UserID, "a name collision must never attach another owner's tag")
}

func TestListRecipes_NewestFirst(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	r1 := testRecipe(t, c, user.ID, "First", nil, nil)
	r2 := testRecipe(t, c, user.ID, "Second", nil, nil)

	recipes, err := c.ListRecipes(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{r2.ID, r1.ID}, recipeIDs(recipes))
}

func TestListRecipes_ScopedToOwner(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	mine := testRecipe(t, c, user.ID, "Mine", nil, nil)
	testRecipe(t, c, other.ID, "Theirs", nil, nil)

	recipes, err := c.ListRecipes(ctx, user.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{mine.ID}, recipeIDs(recipes))
}

func TestListRecipes_FilterByTagsIsInclusiveOr(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	r1 := testRecipe(t, c, user.ID, "Curry", []string{"Indian"}, nil)
	r2 := testRecipe(t, c, user.ID, "Cake", []string{"Dessert"}, nil)
	testRecipe(t, c, user.ID, "Toast", nil, nil)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	ids := lo.Map(tags, func(tag Tag, _ int) uint { return tag.ID })

	recipes, err := c.ListRecipes(ctx, user.ID, ids, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{r1.ID, r2.ID}, recipeIDs(recipes))
}

func TestListRecipes_FilterDeduplicatesMultiMatch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	// A recipe matched through two tags must appear exactly once.
	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Indian", "Dinner"}, nil)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	ids := lo.Map(tags, func(tag Tag, _ int) uint { return tag.ID })

	recipes, err := c.ListRecipes(ctx, user.ID, ids, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{recipe.ID}, recipeIDs(recipes))
}

func TestListRecipes_FilterByIngredients(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	r1 := testRecipe(t, c, user.ID, "Curry", nil, []string{"Turmeric"})
	testRecipe(t, c, user.ID, "Toast", nil, []string{"Butter"})

	ingredients, err := c.ListIngredients(ctx, user.ID, false)
	require.NoError(t, err)
	turmeric, ok := lo.Find(ingredients, func(i Ingredient) bool { return i.Name == "Turmeric" })
	require.True(t, ok)

	recipes, err := c.ListRecipes(ctx, user.ID, nil, []uint{turmeric.ID})
	require.NoError(t, err)
	assert.Equal(t, []uint{r1.ID}, recipeIDs(recipes))
}

func TestGetRecipe_ForeignRecipeIsNotFound(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	recipe := testRecipe(t, c, other.ID, "Theirs", nil, nil)

	_, err := c.GetRecipe(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.UpdateRecipe(ctx, user.ID, recipe.ID, RecipeUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.DeleteRecipe(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecipe_PartialScalars(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Old title", []string{"Indian"}, nil)

	title := "New title"
	updated, err := c.UpdateRecipe(ctx, user.ID, recipe.ID, RecipeUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, 5, updated.TimeMinutes)
	assert.Equal(t, []string{"Indian"}, tagNames(updated.Tags), "omitted tags key must leave membership untouched")
}

func TestUpdateRecipe_ReplacesTagSet(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Indian", "Dinner"}, nil)

	names := []string{"Lunch"}
	updated, err := c.UpdateRecipe(ctx, user.ID, recipe.ID, RecipeUpdate{Tags: &names})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lunch"}, tagNames(updated.Tags))
}

func TestUpdateRecipe_EmptyListClears(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Indian"}, []string{"Salt"})

	empty := []string{}
	updated, err := c.UpdateRecipe(ctx, user.ID, recipe.ID, RecipeUpdate{Tags: &empty, Ingredients: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
	assert.Empty(t, updated.Ingredients)
}

func TestDeleteRecipe_ReturnsImagePath(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Indian"}, nil)
	_, err := c.SetRecipeImage(ctx, user.ID, recipe.ID, "uploads/recipe/abc.jpg")
	require.NoError(t, err)

	imagePath, err := c.DeleteRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "uploads/recipe/abc.jpg", imagePath)

	_, err = c.GetRecipe(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The tag itself survives the recipe deletion.
	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, tags, 1)

	assigned, err := c.ListTags(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Empty(t, assigned)
}

func TestSetRecipeImage_ReturnsPreviousPath(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Curry", nil, nil)

	previous, err := c.SetRecipeImage(ctx, user.ID, recipe.ID, "uploads/recipe/first.jpg")
	require.NoError(t, err)
	assert.Empty(t, previous)

	previous, err = c.SetRecipeImage(ctx, user.ID, recipe.ID, "uploads/recipe/second.jpg")
	require.NoError(t, err)
	assert.Equal(t, "uploads/recipe/first.jpg", previous)
}
