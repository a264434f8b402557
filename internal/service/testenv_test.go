package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/models"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/tokens"
	"github.com/thinklet/thinklet/internal/transport"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Interaction{},
	))

	return db
}

func newTestCodec() *tokens.Codec {
	return &tokens.Codec{
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *repo.GormRepo) {
	t.Helper()

	rp := &repo.GormRepo{DB: initTestDB(t)}
	return &AuthService{Repo: rp, Codec: newTestCodec()}, rp
}

func seedCategories(t *testing.T, db *gorm.DB, names ...string) []models.Category {
	t.Helper()

	cats := make([]models.Category, 0, len(names))
	for _, name := range names {
		cat := models.Category{Name: name}
		require.NoError(t, db.Create(&cat).Error)
		cats = append(cats, cat)
	}
	return cats
}

func categoryIDs(cats []models.Category) []string {
	ids := make([]string, 0, len(cats))
	for _, cat := range cats {
		ids = append(ids, cat.ID.String())
	}
	return ids
}

func validSignupRequest(prefs []string) transport.SignupRequest {
	return transport.SignupRequest{
		FirstName:       "Asha",
		LastName:        "Nair",
		Email:           "asha@example.com",
		Password:        "sup3r-secret",
		ConfirmPassword: "sup3r-secret",
		Phone:           "9876543210",
		Preferences:     prefs,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected apperr.Error, got %v", err)
	require.Equal(t, code, ae.Code)
}
