package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// CenterHandler serves the /admin/center routes.
type CenterHandler struct {
	service ports.CenterService
}

func NewCenterHandler(service ports.CenterService) *CenterHandler {
	return &CenterHandler{service: service}
}

type centerEnvelope struct {
	Message string                `json:"message,omitempty"`
	Center  *domain.MedicalCenter `json:"CentroMedico"`
}

type centerListResponse struct {
	Centers    []*domain.MedicalCenter `json:"centros_medicos"`
	Pagination paginationResponse      `json:"pagination"`
}

// Create registers a medical center.
//
// @Summary      Create medical center
// @Tags         centers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCenterRequest  true  "Center"
// @Success      201   {object}  centerEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/center [post]
func (h *CenterHandler) Create(c echo.Context) error {
	var req createCenterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	m, err := h.service.CreateCenter(c.Request().Context(), ports.CreateCenterInput{Name: req.Name, Address: req.Address})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, centerEnvelope{Message: "Centro médico creado", Center: m})
}

// Get returns one medical center.
//
// @Summary      Get medical center
// @Tags         centers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Center ID"
// @Success      200  {object}  centerEnvelope
// @Failure      404  {object}  map[string]string
// @Router       /admin/center/{id} [get]
func (h *CenterHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	m, err := h.service.GetCenter(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, centerEnvelope{Center: m})
}

// List returns one page of medical centers.
//
// @Summary      List medical centers
// @Tags         centers
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (default 1)"
// @Param        per_page  query     int  false  "Page size (default 5, max 100)"
// @Success      200       {object}  centerListResponse
// @Router       /admin/centers [get]
func (h *CenterHandler) List(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	p, err := h.service.ListCenters(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, centerListResponse{Centers: nonNil(p.Items), Pagination: toPagination(p)})
}
