package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/logging"
	"github.com/thinklet/thinklet/internal/service"
	"github.com/thinklet/thinklet/internal/transport"
)

type ProfileHTTP struct {
	Svc *service.ProfileService
}

func (h *ProfileHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile_update")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("profile_update_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return respondError(c, err)
	}

	l.Info("profile_update_success")
	return c.JSON(http.StatusOK, echo.Map{
		"userData": user,
	})
}

func (h *ProfileHTTP) UpdateImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "profile_image_update")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	var req transport.UpdateProfileImageRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("profile_image_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	user, err := h.Svc.UpdateProfileImage(ctx, userID, req.Profile)
	if err != nil {
		return respondError(c, err)
	}

	l.Info("profile_image_update_success")
	return c.JSON(http.StatusOK, echo.Map{
		"userData": user,
	})
}

func (h *ProfileHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "password_change")

	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, apperr.Forbidden("Access token missing"))
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("password_change_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "invalid body",
			"code":    "VALIDATION_ERROR",
		})
	}

	if err := h.Svc.ChangePassword(ctx, userID, req); err != nil {
		return respondError(c, err)
	}

	l.Info("password_change_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Password updated",
	})
}
