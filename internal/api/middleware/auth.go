package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	ContextUsername = "username"
	ContextRole     = "role"
	ContextToken    = "token"
)

const (
	msgMissingToken = "Token no proporcionado"
	msgExpiredToken = "El token ha expirado"
	msgInvalidToken = "Token inválido"
)

// Auth validates the HS256 bearer token and injects the subject, role and raw
// token into the context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgMissingToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}
			raw := strings.TrimSpace(parts[1])

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, msgExpiredToken)
				}
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}
			if !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			username, _ := claims["sub"].(string)
			role, _ := claims["rol"].(string)
			if username == "" || role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			c.Set(ContextUsername, username)
			c.Set(ContextRole, role)
			c.Set(ContextToken, raw)

			return next(c)
		}
	}
}
