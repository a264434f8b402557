package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thinklet/thinklet/internal/cookies"
	"github.com/thinklet/thinklet/internal/tokens"
)

// AccessGuard gates protected routes behind a valid access token.
// Missing token or role mismatch is forbidden; a token that fails
// verification (expired or forged) is unauthorized.
type AccessGuard struct {
	Codec *tokens.Codec
}

func NewAccessGuard(codec *tokens.Codec) *AccessGuard {
	return &AccessGuard{Codec: codec}
}

func (m *AccessGuard) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessCookie, err := c.Cookie(cookies.AccessName)
			if err != nil || accessCookie.Value == "" {
				return c.JSON(http.StatusForbidden, echo.Map{
					"message": "Access token missing",
					"code":    "FORBIDDEN",
				})
			}

			claims, err := m.Codec.ParseAccessToken(accessCookie.Value)
			if err != nil || claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"message": "Access token expired or invalid",
					"code":    "UNAUTHORIZED",
				})
			}

			if claims.Role != role {
				return c.JSON(http.StatusForbidden, echo.Map{
					"message": "Forbidden: role mismatch",
					"code":    "FORBIDDEN",
				})
			}

			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}
