package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateToken issues a new opaque token for the given user. Previously
// issued tokens stay valid.
func (c *Client) CreateToken(ctx context.Context, userID uint) (*AuthToken, error) {
	token := AuthToken{
		Key:    uuid.NewString(),
		UserID: userID,
	}
	if err := c.db.WithContext(ctx).Create(&token).Error; err != nil {
		log.Error("failed to create auth token", "error", err)
		return nil, err
	}
	return &token, nil
}

// GetUserByTokenKey resolves a token key to the user it was issued to.
func (c *Client) GetUserByTokenKey(ctx context.Context, key string) (*User, error) {
	var token AuthToken
	err := c.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to look up auth token", "error", err)
		return nil, err
	}
	return &token.User, nil
}
