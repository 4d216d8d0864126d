package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// DoctorHandler serves the /admin/doctor routes.
type DoctorHandler struct {
	service ports.DoctorService
}

func NewDoctorHandler(service ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

type doctorCreatedResponse struct {
	Message  string `json:"message"`
	UserID   int64  `json:"id_usuario"`
	DoctorID int64  `json:"id_doctor"`
}

type doctorEnvelope struct {
	Doctor *domain.Doctor `json:"Doctor"`
}

type doctorListResponse struct {
	Doctors    []*domain.Doctor   `json:"doctores"`
	Pagination paginationResponse `json:"pagination"`
}

// Create registers a medico user together with its doctor profile.
//
// @Summary      Create doctor
// @Tags         doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDoctorRequest  true  "Doctor"
// @Success      201   {object}  doctorCreatedResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/doctor [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req createDoctorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	d, err := h.service.CreateDoctor(c.Request().Context(), ports.CreateDoctorInput{
		Username:  req.Username,
		Password:  req.Password,
		Name:      req.Name,
		Specialty: req.Specialty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doctorCreatedResponse{Message: "Doctor creado", UserID: d.UserID, DoctorID: d.ID})
}

// Get returns one doctor.
//
// @Summary      Get doctor
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Doctor ID"
// @Success      200  {object}  doctorEnvelope
// @Failure      404  {object}  map[string]string
// @Router       /admin/doctor/{id} [get]
func (h *DoctorHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.service.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctorEnvelope{Doctor: d})
}

// GetByUsername resolves the doctor profile linked to a username.
//
// @Summary      Get doctor by username
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  doctorEnvelope
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /admin/doctor/username [get]
func (h *DoctorHandler) GetByUsername(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))
	if username == "" {
		return domain.NewValidationError("username", "es obligatorio")
	}
	d, err := h.service.GetDoctorByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctorEnvelope{Doctor: d})
}

// List returns one page of doctors.
//
// @Summary      List doctors
// @Tags         doctors
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (default 1)"
// @Param        per_page  query     int  false  "Page size (default 5, max 100)"
// @Success      200       {object}  doctorListResponse
// @Router       /admin/doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	p, err := h.service.ListDoctors(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctorListResponse{Doctors: nonNil(p.Items), Pagination: toPagination(p)})
}
