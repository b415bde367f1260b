package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListRecipes returns the user's recipes, newest first. Non-empty id sets
// restrict the result to recipes carrying at least one of the given tags
// or ingredients (inclusive OR within a set, both sets must match when
// both are given). The DISTINCT guards against duplicate rows from the
// many-to-many joins.
func (c *Client) ListRecipes(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]Recipe, error) {
	q := c.db.WithContext(ctx).Model(&Recipe{}).Where("recipes.user_id = ?", userID)
	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []Recipe
	err := q.Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		log.Error("failed to list recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// GetRecipe returns a recipe owned by the user with its tag and
// ingredient relations loaded. Foreign recipes surface as ErrNotFound.
func (c *Client) GetRecipe(ctx context.Context, userID, id uint) (*Recipe, error) {
	var recipe Recipe
	err := c.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get recipe", "error", err)
		return nil, err
	}
	return &recipe, nil
}

// RecipeUpdate carries a partial recipe change set. Nil scalar fields are
// left untouched. Nil name slices leave the relation untouched, while an
// empty non-nil slice clears the relation entirely.
type RecipeUpdate struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

// CreateRecipe persists a new recipe for the user and resolves the given
// tag and ingredient names via create-or-get within the user's namespace.
// The whole write runs in a single transaction, so a failing recipe write
// retains no stray tags or ingredients.
func (c *Client) CreateRecipe(ctx context.Context, recipe *Recipe, tagNames, ingredientNames []string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := syncRecipeTags(tx, recipe, tagNames); err != nil {
			return err
		}
		return syncRecipeIngredients(tx, recipe, ingredientNames)
	})
	if err != nil {
		log.Error("failed to create recipe", "error", err)
		return err
	}
	return nil
}

// UpdateRecipe applies a partial update to a recipe owned by the user and
// returns the reloaded recipe. See RecipeUpdate for the patch semantics.
func (c *Client) UpdateRecipe(ctx context.Context, userID, id uint, update RecipeUpdate) (*Recipe, error) {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe Recipe
		err := tx.Where("user_id = ?", userID).First(&recipe, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if update.Title != nil {
			recipe.Title = *update.Title
		}
		if update.TimeMinutes != nil {
			recipe.TimeMinutes = *update.TimeMinutes
		}
		if update.Price != nil {
			recipe.Price = *update.Price
		}
		if update.Description != nil {
			recipe.Description = *update.Description
		}
		if update.Link != nil {
			recipe.Link = *update.Link
		}
		if err := tx.Save(&recipe).Error; err != nil {
			return err
		}

		if update.Tags != nil {
			if err := syncRecipeTags(tx, &recipe, *update.Tags); err != nil {
				return err
			}
		}
		if update.Ingredients != nil {
			if err := syncRecipeIngredients(tx, &recipe, *update.Ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to update recipe", "error", err)
		}
		return nil, err
	}
	return c.GetRecipe(ctx, userID, id)
}

// DeleteRecipe removes a recipe owned by the user along with its relation
// rows and returns the stored image path so the caller can remove the
// file from disk.
func (c *Client) DeleteRecipe(ctx context.Context, userID, id uint) (string, error) {
	recipe, err := c.GetRecipe(ctx, userID, id)
	if err != nil {
		return "", err
	}
	err = c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
	if err != nil {
		log.Error("failed to delete recipe", "error", err)
		return "", err
	}
	return recipe.Image, nil
}

// SetRecipeImage records the stored image path on a recipe owned by the
// user and returns the path that was previously recorded, if any.
func (c *Client) SetRecipeImage(ctx context.Context, userID, id uint, path string) (string, error) {
	recipe, err := c.GetRecipe(ctx, userID, id)
	if err != nil {
		return "", err
	}
	previous := recipe.Image
	recipe.Image = path
	if err := c.db.WithContext(ctx).Save(recipe).Error; err != nil {
		log.Error("failed to set recipe image", "error", err)
		return "", err
	}
	return previous, nil
}

// syncRecipeTags resolves each name against the owner's tag namespace and
// replaces the recipe's tag set with exactly the resolved tags. Duplicate
// input names collapse to a single row.
func syncRecipeTags(tx *gorm.DB, recipe *Recipe, names []string) error {
	tags := make([]Tag, 0, len(names))
	for _, name := range lo.Uniq(names) {
		tag, err := getOrCreateTag(tx, recipe.UserID, name)
		if err != nil {
			return err
		}
		tags = append(tags, *tag)
	}
	if len(tags) == 0 {
		return tx.Model(recipe).Association("Tags").Clear()
	}
	return tx.Model(recipe).Association("Tags").Replace(tags)
}

func syncRecipeIngredients(tx *gorm.DB, recipe *Recipe, names []string) error {
	ingredients := make([]Ingredient, 0, len(names))
	for _, name := range lo.Uniq(names) {
		ingredient, err := getOrCreateIngredient(tx, recipe.UserID, name)
		if err != nil {
			return err
		}
		ingredients = append(ingredients, *ingredient)
	}
	if len(ingredients) == 0 {
		return tx.Model(recipe).Association("Ingredients").Clear()
	}
	return tx.Model(recipe).Association("Ingredients").Replace(ingredients)
}
