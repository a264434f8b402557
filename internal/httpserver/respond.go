package httpserver

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/apperr"
	"github.com/thinklet/thinklet/internal/logging"
)

// respondError maps the tagged error taxonomy to a {message, code}
// body. Anything outside the taxonomy is logged and normalized to
// SERVER_ERROR so internal detail never reaches the client.
func respondError(c echo.Context, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return c.JSON(ae.Status, echo.Map{
			"message": ae.Message,
			"code":    ae.Code,
		})
	}

	logging.FromContext(c.Request().Context()).Error("request_failed", "error", err)
	srv := apperr.Server()
	return c.JSON(srv.Status, echo.Map{
		"message": srv.Message,
		"code":    srv.Code,
	})
}

// currentUserID reads the identity the access middleware stored on the
// context.
func currentUserID(c echo.Context) (uuid.UUID, error) {
	s, _ := c.Get("user_id").(string)
	return uuid.Parse(s)
}
