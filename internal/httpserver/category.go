package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/service"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) List(c echo.Context) error {
	categories, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"categories": categories,
	})
}
