package transport

import (
	"time"

	"github.com/google/uuid"
)

type SignupRequest struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	Phone           string   `json:"phone"`
	Preferences     []string `json:"preferences"`
}

type LoginRequest struct {
	EmailOrPhone string `json:"emailOrPhone"`
	Password     string `json:"password"`
}

type CategoryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Phone       string        `json:"phone"`
	Email       string        `json:"email"`
	Profile     string        `json:"profile"`
	Preferences []CategoryDTO `json:"preferences"`
}

type CreateArticleRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	Tags        []string `json:"tags"`
	CategoryID  string   `json:"categoryId"`
}

type UpdateArticleRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail"`
	Tags        []string `json:"tags"`
	CategoryID  *string  `json:"categoryId"`
}

type AuthorDTO struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Profile   string    `json:"profile"`
}

type InteractionDTO struct {
	Liked    bool `json:"liked"`
	Disliked bool `json:"disliked"`
	Blocked  bool `json:"blocked"`
}

type ArticleResponse struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Thumbnail       string         `json:"thumbnail"`
	Tags            []string       `json:"tags"`
	Category        CategoryDTO    `json:"category"`
	Author          AuthorDTO      `json:"author"`
	LikesCount      int64          `json:"likesCount"`
	DislikesCount   int64          `json:"dislikesCount"`
	UserInteraction InteractionDTO `json:"userInteraction"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type ReactionRequest struct {
	ArticleID string `json:"articleId"`
}

type LikeResponse struct {
	Liked         bool  `json:"liked"`
	LikesCount    int64 `json:"likesCount"`
	DislikesCount int64 `json:"dislikesCount"`
}

type DislikeResponse struct {
	Disliked      bool  `json:"disliked"`
	LikesCount    int64 `json:"likesCount"`
	DislikesCount int64 `json:"dislikesCount"`
}

type BlockResponse struct {
	Blocked bool `json:"blocked"`
}

type UpdateProfileRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Preferences []string `json:"preferences"`
}

type UpdateProfileImageRequest struct {
	Profile string `json:"profile"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
