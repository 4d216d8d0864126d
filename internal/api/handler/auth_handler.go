package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Usuario: %s no encontrado.", req.Username))
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Token:     res.Token,
		Role:      res.Role,
		ExpiresAt: res.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Welcome is the public landing route of the gestión service.
//
// @Summary      Welcome
// @Tags         auth
// @Produce      json
// @Success      200   {object}  map[string]string
// @Router       / [get]
func (h *AuthHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Bienvenido a OdontoCare"})
}
