package database

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User represents a user account in the database.
// The email is the login identity and is stored in normalized form
// (domain lower-cased, local part preserved). Password holds the bcrypt
// hash, never the plain credential.
type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	Name        string
	IsActive    bool `gorm:"default:true"`
	IsStaff     bool `gorm:"default:false"`
	IsSuperuser bool `gorm:"default:false"`
}

// AuthToken is an opaque bearer credential issued for a user.
// A token identifies exactly the user it was issued to; issuing a new
// token does not invalidate earlier ones.
type AuthToken struct {
	gorm.Model
	Key    string `gorm:"uniqueIndex;not null"`
	UserID uint   `gorm:"index;not null"`
	User   User
}

// Tag is a named label owned by a single user. Each user has an
// independent tag namespace; the owner is immutable after creation.
type Tag struct {
	gorm.Model
	Name   string `gorm:"not null"`
	UserID uint   `gorm:"index;not null"`
}

// Ingredient is shaped like Tag but lives in a separate namespace.
type Ingredient struct {
	gorm.Model
	Name   string `gorm:"not null"`
	UserID uint   `gorm:"index;not null"`
}

// Recipe is the aggregate root: scalar fields plus two many-to-many
// relations to the owner's tags and ingredients.
type Recipe struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null"`
	Title       string `gorm:"not null"`
	TimeMinutes int
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"`
	Description string
	Link        string
	Image       string
	Tags        []Tag        `gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;"`
}

func (r Recipe) String() string {
	return r.Title
}
