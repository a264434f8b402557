package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"   json:"id"`
	FirstName    string     `gorm:"not null"               json:"firstName"`
	LastName     string     `gorm:"not null"               json:"lastName"`
	Phone        string     `gorm:"not null"               json:"phone"`
	Email        string     `gorm:"uniqueIndex;not null"   json:"email"`
	PasswordHash string     `gorm:"not null"               json:"-"`
	Profile      string     `json:"profile"`
	Preferences  []Category `gorm:"many2many:user_preferences" json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Article struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Title       string    `gorm:"not null"              json:"title"`
	Description string    `gorm:"not null"              json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	Tags        []string  `gorm:"serializer:json"       json:"tags"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null" json:"categoryId"`
	Category    Category  `json:"-"`
	AuthorID    uuid.UUID `gorm:"type:uuid;index;not null" json:"authorId"`
	Author      User      `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Interaction holds one row per (user, article) pair. Like and Dislike
// are mutually exclusive; the service layer never persists both true.
type Interaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                        json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_article;not null" json:"userId"`
	ArticleID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_user_article;not null" json:"articleId"`
	Like      bool      `gorm:"column:liked;not null;default:false"    json:"like"`
	Dislike   bool      `gorm:"column:disliked;not null;default:false" json:"dislike"`
	Block     bool      `gorm:"column:blocked;not null;default:false"  json:"block"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
