package database

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(t *testing.T, c *Client, email string) *User {
	t.Helper()
	user, err := c.CreateUser(context.Background(), email, "testpass123", "")
	require.NoError(t, err)
	return user
}

func testRecipe(t *testing.T, c *Client, userID uint, title string, tagNames, ingredientNames []string) *Recipe {
	t.Helper()
	recipe := &Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 5,
		Price:       decimal.RequireFromString("5.50"),
	}
	require.NoError(t, c.CreateRecipe(context.Background(), recipe, tagNames, ingredientNames))
	return recipe
}

func tagNames(tags []Tag) []string {
	return lo.Map(tags, func(t Tag, _ int) string { return t.Name })
}

func TestListTags_OrderedByNameDescending(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	testRecipe(t, c, user.ID, "Curry", []string{"Vegan", "Dessert", "apple"}, nil)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	// Case-sensitive lexicographic order on the stored form.
	assert.Equal(t, []string{"apple", "Vegan", "Dessert"}, tagNames(tags))
}

func TestListTags_ScopedToOwner(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	testRecipe(t, c, user.ID, "Curry", []string{"Indian"}, nil)
	testRecipe(t, c, other.ID, "Stew", []string{"Comfort"}, nil)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Indian"}, tagNames(tags))
}

func TestListTags_AssignedOnly(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	testRecipe(t, c, user.ID, "Curry", []string{"Dinner"}, nil)
	// Unassigned tag must be excluded when assigned_only is requested.
	_, err := getOrCreateTag(c.db, user.ID, "Lunch")
	require.NoError(t, err)

	tags, err := c.ListTags(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dinner"}, tagNames(tags))

	all, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListTags_AssignedOnlyDeduplicated(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	// Same tag attached to two recipes must appear exactly once.
	testRecipe(t, c, user.ID, "Pancakes", []string{"Breakfast"}, nil)
	testRecipe(t, c, user.ID, "Porridge", []string{"Breakfast"}, nil)

	tags, err := c.ListTags(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Breakfast"}, tagNames(tags))
}

func TestUpdateTag(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	tag, err := getOrCreateTag(c.db, user.ID, "Dessert")
	require.NoError(t, err)

	updated, err := c.UpdateTag(ctx, user.ID, tag.ID, "Sweets")
	require.NoError(t, err)
	assert.Equal(t, "Sweets", updated.Name)
}

func TestUpdateTag_ForeignTagIsNotFound(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")
	other := testUser(t, c, "other@example.com")

	tag, err := getOrCreateTag(c.db, other.ID, "Dessert")
	require.NoError(t, err)

	_, err = c.UpdateTag(ctx, user.ID, tag.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrNotFound)

	err = c.DeleteTag(ctx, user.ID, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTag_RemovesAssociations(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	user := testUser(t, c, "test@example.com")

	recipe := testRecipe(t, c, user.ID, "Curry", []string{"Dinner"}, nil)

	tags, err := c.ListTags(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	require.NoError(t, c.DeleteTag(ctx, user.ID, tags[0].ID))

	reloaded, err := c.GetRecipe(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Tags)
}
