package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// ListTags returns the user's tags ordered by name, descending. With
// assignedOnly set, only tags attached to at least one of the user's
// recipes are returned; the EXISTS probe keeps the result free of
// duplicates even when a tag is attached to several recipes.
func (c *Client) ListTags(ctx context.Context, userID uint, assignedOnly bool) ([]Tag, error) {
	q := c.db.WithContext(ctx).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Where("EXISTS (SELECT 1 FROM recipe_tags WHERE recipe_tags.tag_id = tags.id)")
	}

	var tags []Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		log.Error("failed to list tags", "error", err)
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag owned by the user. Names are not unique per
// owner; deduplication only happens through the create-or-get path on
// recipe writes.
func (c *Client) CreateTag(ctx context.Context, userID uint, name string) (*Tag, error) {
	tag := Tag{Name: name, UserID: userID}
	if err := c.db.WithContext(ctx).Create(&tag).Error; err != nil {
		log.Error("failed to create tag", "error", err)
		return nil, err
	}
	return &tag, nil
}

func (c *Client) getTag(ctx context.Context, userID, id uint) (*Tag, error) {
	var tag Tag
	err := c.db.WithContext(ctx).Where("user_id = ?", userID).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get tag", "error", err)
		return nil, err
	}
	return &tag, nil
}

// UpdateTag renames a tag owned by the user. A tag owned by someone else
// is reported as ErrNotFound.
func (c *Client) UpdateTag(ctx context.Context, userID, id uint, name string) (*Tag, error) {
	tag, err := c.getTag(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := c.db.WithContext(ctx).Save(tag).Error; err != nil {
		log.Error("failed to update tag", "error", err)
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag owned by the user along with its recipe
// associations.
func (c *Client) DeleteTag(ctx context.Context, userID, id uint) error {
	tag, err := c.getTag(ctx, userID, id)
	if err != nil {
		return err
	}
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}

// getOrCreateTag resolves a tag name within the user's namespace,
// creating the tag when it does not exist yet.
func getOrCreateTag(tx *gorm.DB, userID uint, name string) (*Tag, error) {
	var tag Tag
	err := tx.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	tag = Tag{Name: name, UserID: userID}
	if err := tx.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
