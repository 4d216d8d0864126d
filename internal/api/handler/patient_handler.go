package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// PatientHandler serves the /admin/patient routes.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

type patientCreatedResponse struct {
	Message   string `json:"message"`
	UserID    int64  `json:"id_usuario"`
	PatientID int64  `json:"id_paciente"`
}

type patientEnvelope struct {
	Patient *domain.Patient `json:"Paciente"`
}

type patientListResponse struct {
	Patients   []*domain.Patient  `json:"pacientes"`
	Pagination paginationResponse `json:"pagination"`
}

// Create registers a paciente user together with its patient profile.
//
// @Summary      Create patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPatientRequest  true  "Patient"
// @Success      201   {object}  patientCreatedResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/patient [post]
func (h *PatientHandler) Create(c echo.Context) error {
	var req createPatientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.CreatePatient(c.Request().Context(), ports.CreatePatientInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Status:   domain.PatientStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patientCreatedResponse{Message: "Paciente creado", UserID: p.UserID, PatientID: p.ID})
}

// Get returns one patient.
//
// @Summary      Get patient
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Patient ID"
// @Success      200  {object}  patientEnvelope
// @Failure      404  {object}  map[string]string
// @Router       /admin/patient/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.service.GetPatient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patientEnvelope{Patient: p})
}

// List returns one page of patients.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (default 1)"
// @Param        per_page  query     int  false  "Page size (default 5, max 100)"
// @Success      200       {object}  patientListResponse
// @Router       /admin/patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	page, err := pageFrom(c)
	if err != nil {
		return err
	}
	p, err := h.service.ListPatients(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patientListResponse{Patients: nonNil(p.Items), Pagination: toPagination(p)})
}
