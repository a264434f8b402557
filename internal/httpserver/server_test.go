package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thinklet/thinklet/internal/cookies"
	"github.com/thinklet/thinklet/internal/middleware"
	"github.com/thinklet/thinklet/internal/models"
	"github.com/thinklet/thinklet/internal/repo"
	"github.com/thinklet/thinklet/internal/service"
	"github.com/thinklet/thinklet/internal/tokens"
)

type testServer struct {
	echo *echo.Echo
	db   *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Interaction{},
	))

	codec := &tokens.Codec{
		AccessSecret:  []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
	gormRepo := &repo.GormRepo{DB: db}

	deps := Deps{
		Auth: &AuthHTTP{
			Svc:          &service.AuthService{Repo: gormRepo, Codec: codec},
			CookieMaxAge: 7 * 24 * time.Hour,
		},
		Articles: &ArticleHTTP{Svc: &service.ArticleService{Repo: gormRepo}},
		Category: &CategoryHTTP{Svc: &service.CategoryService{Repo: gormRepo}},
		Profile:  &ProfileHTTP{Svc: &service.ProfileService{Repo: gormRepo}},
		Guard:    middleware.NewAccessGuard(codec),
	}

	e := echo.New()
	Register(e, &deps)

	return &testServer{echo: e, db: db}
}

func (s *testServer) seedCategories(t *testing.T, names ...string) []models.Category {
	t.Helper()

	cats := make([]models.Category, 0, len(names))
	for _, name := range names {
		cat := models.Category{Name: name}
		require.NoError(t, s.db.Create(&cat).Error)
		cats = append(cats, cat)
	}
	return cats
}

func (s *testServer) do(method, path, body string, reqCookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range reqCookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func signupBody(prefs []models.Category) string {
	ids := make([]string, 0, len(prefs))
	for _, cat := range prefs {
		ids = append(ids, `"`+cat.ID.String()+`"`)
	}
	return `{
		"firstName": "Asha",
		"lastName": "Nair",
		"email": "asha@example.com",
		"password": "sup3r-secret",
		"confirmPassword": "sup3r-secret",
		"phone": "9876543210",
		"preferences": [` + strings.Join(ids, ",") + `]
	}`
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set in response", name)
	return nil
}

func TestSignupFlow(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	cats := srv.seedCategories(t, "tech", "health", "travel")

	rec := srv.do(http.MethodPost, "/api/v1/signup", signupBody(cats))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	access := cookieByName(t, rec, cookies.AccessName)
	refresh := cookieByName(t, rec, cookies.RefreshName)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)
	assert.Equal(t, "/", access.Path)
	assert.Positive(t, refresh.MaxAge)

	var user struct {
		Email       string `json:"email"`
		Preferences []struct {
			Name string `json:"name"`
		} `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "asha@example.com", user.Email)
	require.Len(t, user.Preferences, 3)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignup_ValidationErrorBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/signup", `{"firstName": "Asha"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MISSING_FIELDS", body.Code)
	assert.Contains(t, body.Message, "Email is required")
}

func TestLoginAndProtectedRoute(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	cats := srv.seedCategories(t, "tech", "health", "travel")

	rec := srv.do(http.MethodPost, "/api/v1/signup", signupBody(cats))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/login",
		`{"emailOrPhone": "asha@example.com", "password": "sup3r-secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	access := cookieByName(t, rec, cookies.AccessName)

	// The feed is role gated; the fresh access cookie opens it.
	rec = srv.do(http.MethodGet, "/api/v1/articles/feed", "", access)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodGet, "/api/v1/articles/feed", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	cats := srv.seedCategories(t, "tech", "health", "travel")

	rec := srv.do(http.MethodPost, "/api/v1/signup", signupBody(cats))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/login",
		`{"emailOrPhone": "asha@example.com", "password": "wrong"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	cats := srv.seedCategories(t, "tech", "health", "travel")

	rec := srv.do(http.MethodPost, "/api/v1/signup", signupBody(cats))
	require.Equal(t, http.StatusCreated, rec.Code)
	refresh := cookieByName(t, rec, cookies.RefreshName)

	rec = srv.do(http.MethodGet, "/api/v1/accessToken", "", refresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)

	// The reissued access token opens protected routes.
	rec = srv.do(http.MethodGet, "/api/v1/articles/feed", "",
		&http.Cookie{Name: cookies.AccessName, Value: body.AccessToken})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshEndpoint_MissingCookie(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/v1/accessToken", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Refresh token missing")
	assert.Contains(t, rec.Body.String(), `"FORBIDDEN"`)
}

func TestRefreshEndpoint_InvalidToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(http.MethodGet, "/api/v1/accessToken", "",
		&http.Cookie{Name: cookies.RefreshName, Value: "garbage"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"UNAUTHORIZED"`)
}

func TestLogoutClearsCookies(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := srv.do(http.MethodPost, "/api/v1/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(t, rec, cookies.AccessName)
	refresh := cookieByName(t, rec, cookies.RefreshName)
	assert.Negative(t, access.MaxAge)
	assert.Negative(t, refresh.MaxAge)
	assert.Empty(t, access.Value)
	assert.Empty(t, refresh.Value)
}

func TestArticleLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	cats := srv.seedCategories(t, "tech", "health", "travel")

	rec := srv.do(http.MethodPost, "/api/v1/signup", signupBody(cats))
	require.Equal(t, http.StatusCreated, rec.Code)
	access := cookieByName(t, rec, cookies.AccessName)

	rec = srv.do(http.MethodPost, "/api/v1/articles", `{
		"title": "First post",
		"description": "hello",
		"tags": ["go"],
		"categoryId": "`+cats[0].ID.String()+`"
	}`, access)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var article struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	require.NotEmpty(t, article.ID)

	// Reading a single article needs no credentials.
	rec = srv.do(http.MethodGet, "/api/v1/articles/"+article.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/articles/like",
		`{"articleId": "`+article.ID+`"}`, access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var like struct {
		Liked      bool  `json:"liked"`
		LikesCount int64 `json:"likesCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &like))
	assert.True(t, like.Liked)
	assert.EqualValues(t, 1, like.LikesCount)

	rec = srv.do(http.MethodDelete, "/api/v1/articles/"+article.ID, "", access)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/articles/"+article.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoriesEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.seedCategories(t, "tech", "health")

	rec := srv.do(http.MethodGet, "/api/v1/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []struct {
			Name string `json:"name"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Categories, 2)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/health/live", "").Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/health/ready", "").Code)
}
