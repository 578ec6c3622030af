package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Auth verifies the bearer token issued by the identity provider and makes
// the caller's id and role available to handlers. This service never issues
// tokens itself.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			c.Set(ContextUserID, sub)
			if role, ok := claims["role"].(string); ok {
				c.Set(ContextRole, role)
			}

			return next(c)
		}
	}
}

// RequireRole gates operator routes; it must run after Auth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if got, _ := c.Get(ContextRole).(string); got != role {
				return echo.NewHTTPError(http.StatusForbidden, "staff only")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's id set by Auth.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
