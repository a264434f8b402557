package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/middleware"
)

type Deps struct {
	Auth     *AuthHTTP
	Articles *ArticleHTTP
	Category *CategoryHTTP
	Profile  *ProfileHTTP
	Guard    *middleware.AccessGuard
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	// Refresh and logout stay outside the guard: refresh is the
	// recovery path for an expired access token.
	v1.POST("/signup", d.Auth.Signup)
	v1.POST("/login", d.Auth.Login)
	v1.GET("/accessToken", d.Auth.Refresh)
	v1.POST("/logout", d.Auth.Logout)

	v1.GET("/categories", d.Category.List)
	v1.GET("/articles/search", d.Articles.Search)
	v1.GET("/articles/:id", d.Articles.Get)

	private := v1.Group("", d.Guard.RequireRole("user"))

	private.POST("/articles", d.Articles.Create)
	private.PUT("/articles/:id", d.Articles.Update)
	private.DELETE("/articles/:id", d.Articles.Delete)
	private.GET("/articles/my", d.Articles.My)
	private.GET("/articles/feed", d.Articles.Feed)
	private.POST("/articles/like", d.Articles.Like)
	private.POST("/articles/dislike", d.Articles.Dislike)
	private.POST("/articles/block", d.Articles.Block)

	private.PUT("/profile", d.Profile.Update)
	private.PUT("/profile/image", d.Profile.UpdateImage)
	private.PUT("/profile/password", d.Profile.ChangePassword)
}
