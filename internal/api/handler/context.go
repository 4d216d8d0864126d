package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/api/middleware"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// callerFrom extracts the identity injected by the Auth middleware. An empty
// role means the middleware did not run.
func callerFrom(c echo.Context) (ports.Caller, error) {
	role, _ := c.Get(middleware.ContextRole).(string)
	if role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Token no proporcionado")
	}
	username, _ := c.Get(middleware.ContextUsername).(string)
	token, _ := c.Get(middleware.ContextToken).(string)
	return ports.Caller{Username: username, Role: role, Token: token}, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "debe ser un entero positivo")
	}
	return id, nil
}

// bindAndValidate binds the request into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	return c.Validate(req)
}
