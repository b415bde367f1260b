package database

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NormalizeEmail lower-cases the domain part of an email address while
// preserving the local part verbatim.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// CreateUser creates a new user with a normalized email and a bcrypt
// password hash. An empty email fails with ErrEmailRequired, a duplicate
// one with ErrEmailExists.
func (c *Client) CreateUser(ctx context.Context, email, password, name string) (*User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if _, err := c.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:    NormalizeEmail(email),
		Password: string(hash),
		Name:     name,
		IsActive: true,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

// CreateSuperuser creates a user with the staff and superuser flags set.
func (c *Client) CreateSuperuser(ctx context.Context, email, password, name string) (*User, error) {
	user, err := c.CreateUser(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	if err := c.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Error("failed to set superuser flags", "error", err)
		return nil, err
	}
	return user, nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := c.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by email", "error", err)
		return nil, err
	}
	return &user, nil
}

func (c *Client) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := c.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by ID", "error", err)
		return nil, err
	}
	return &user, nil
}

// UserUpdate carries the self-service profile changes. Nil fields are
// left untouched; a new password is re-hashed before storage.
type UserUpdate struct {
	Name     *string
	Password *string
}

func (c *Client) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*User, error) {
	user, err := c.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := c.db.WithContext(ctx).Save(user).Error; err != nil {
		log.Error("failed to update user", "error", err)
		return nil, err
	}
	return user, nil
}

// CheckPassword reports whether the plain password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
