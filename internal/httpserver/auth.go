package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/cookies"
	"github.com/thinklet/thinklet/internal/logging"
	"github.com/thinklet/thinklet/internal/service"
	"github.com/thinklet/thinklet/internal/transport"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	CookieMaxAge time.Duration
}

func (h *AuthHTTP) setSessionCookies(c echo.Context, res *service.SessionResult) {
	c.SetCookie(cookies.Create(cookies.AccessName, res.AccessToken, h.CookieMaxAge))
	c.SetCookie(cookies.Create(cookies.RefreshName, res.RefreshToken, h.CookieMaxAge))
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	res, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookies(c, res)
	l.Info("signup_successful")
	return c.JSON(http.StatusCreated, res.User)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	res, err := h.Svc.Login(ctx, req.EmailOrPhone, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookies(c, res)
	l.Info("login_successful")
	return c.JSON(http.StatusOK, res.User)
}

// Refresh reads the refresh token from its cookie, never from the body.
// Missing cookie is forbidden; a token that fails verification is
// unauthorized. The refresh cookie itself is left untouched.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	refreshCookie, err := c.Cookie(cookies.RefreshName)
	if err != nil || refreshCookie.Value == "" {
		l.Warn("refresh_failed", "status", 403, "reason", "refresh token missing")
		return c.JSON(http.StatusForbidden, echo.Map{
			"message": "Refresh token missing",
			"code":    "FORBIDDEN",
		})
	}

	accessToken, err := h.Svc.Refresh(ctx, refreshCookie.Value)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(cookies.Create(cookies.AccessName, accessToken, h.CookieMaxAge))
	l.Info("refresh_successful")
	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": accessToken,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(cookies.Delete(cookies.AccessName))
	c.SetCookie(cookies.Delete(cookies.RefreshName))

	logging.FromContext(c.Request().Context()).Info("logout_successful")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Logged out",
	})
}
