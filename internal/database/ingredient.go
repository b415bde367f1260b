package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ListIngredients returns the user's ingredients ordered by name,
// descending. See ListTags for the assignedOnly semantics.
func (c *Client) ListIngredients(ctx context.Context, userID uint, assignedOnly bool) ([]Ingredient, error) {
	q := c.db.WithContext(ctx).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Where("EXISTS (SELECT 1 FROM recipe_ingredients WHERE recipe_ingredients.ingredient_id = ingredients.id)")
	}

	var ingredients []Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		log.Error("failed to list ingredients", "error", err)
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient creates an ingredient owned by the user.
func (c *Client) CreateIngredient(ctx context.Context, userID uint, name string) (*Ingredient, error) {
	ingredient := Ingredient{Name: name, UserID: userID}
	if err := c.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		log.Error("failed to create ingredient", "error", err)
		return nil, err
	}
	return &ingredient, nil
}

func (c *Client) getIngredient(ctx context.Context, userID, id uint) (*Ingredient, error) {
	var ingredient Ingredient
	err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&ingredient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get ingredient", "error", err)
		return nil, err
	}
	return &ingredient, nil
}

func (c *Client) UpdateIngredient(ctx context.Context, userID, id uint, name string) (*Ingredient, error) {
	ingredient, err := c.getIngredient(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = name
	if err := c.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		log.Error("failed to update ingredient", "error", err)
		return nil, err
	}
	return ingredient, nil
}

func (c *Client) DeleteIngredient(ctx context.Context, userID, id uint) error {
	ingredient, err := c.getIngredient(ctx, userID, id)
	if err != nil {
		return err
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}

func getOrCreateIngredient(tx *gorm.DB, userID uint, name string) (*Ingredient, error) {
	var ingredient Ingredient
	err := tx.Where("user_id = ? AND name = ?", userID, name).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ingredient = Ingredient{Name: name, UserID: userID}
	if err := tx.Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}
