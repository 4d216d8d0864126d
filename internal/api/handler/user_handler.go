package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// UserHandler serves the /admin/user routes.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userEnvelope struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"Usuario"`
}

type userListResponse struct {
	Users      []*domain.User     `json:"usuarios"`
	Pagination paginationResponse `json:"pagination"`
}

// Create registers a standalone user.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	u, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userEnvelope{Message: "Usuario creado", User: u})
}

// Get returns one user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  userEnvelope
// @Failure      404  {object}  map[string]string
// @Router       /admin/user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.service.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{User: u})
}

// List returns one page of users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (default 1)"
// @Param        per_page  query     int  false  "Page size (default 5, max 100)"
// @Success      200       {object}  userListResponse
// @Failure      404       {object}  map[string]string
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	p, err := h.service.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: nonNil(p.Items), Pagination: toPagination(p)})
}

// pageFrom reads page and per_page from the query string.
func pageFrom(c echo.Context) (ports.PageRequest, error) {
	var q pageQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return ports.PageRequest{}, domain.NewValidationError("page", "debe ser un entero positivo")
	}
	if err := c.Validate(&q); err != nil {
		return ports.PageRequest{}, err
	}
	return ports.PageRequest{Page: q.Page, PerPage: q.PerPage}.Normalize(), nil
}
