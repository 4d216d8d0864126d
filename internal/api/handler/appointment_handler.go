package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/odontocare/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// AppointmentHandler handles HTTP requests for the citas service.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create books an appointment.
//
// @Summary      Book appointment
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                    false  "Replays the first booking made with this key"
// @Param        body             body      createAppointmentRequest  true   "Appointment"
// @Success      201              {object}  appointmentEnvelope
// @Success      200              {object}  appointmentEnvelope  "Idempotent replay"
// @Failure      400              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Failure      422              {object}  map[string]string
// @Failure      502              {object}  map[string]string
// @Router       /citas/agendar [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in, err := toBookInput(req, caller, strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)))
	if err != nil {
		return err
	}

	res, err := h.service.Book(c.Request().Context(), in)
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		return c.JSON(http.StatusOK, appointmentEnvelope{Message: "Cita ya registrada", Appointment: toAppointmentResponse(res.Appointment)})
	}
	return c.JSON(http.StatusCreated, appointmentEnvelope{Message: "Cita registrada", Appointment: toAppointmentResponse(res.Appointment)})
}

// Update changes the given fields of an appointment.
//
// @Summary      Update appointment
// @Tags         citas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                       true  "Appointment ID"
// @Param        body  body      updateAppointmentRequest  true  "Fields to change"
// @Success      200   {object}  appointmentEnvelope
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /citas/modificar/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := toUpdateInput(req, caller, id)
	if err != nil {
		return err
	}

	a, err := h.service.Update(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointmentEnvelope{Message: "Cita actualizada", Appointment: toAppointmentResponse(a)})
}

// Cancel flips an appointment to cancelada.
//
// @Summary      Cancel appointment
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Appointment ID"
// @Success      200  {object}  appointmentEnvelope
// @Failure      404  {object}  map[string]string
// @Router       /citas/cancelar/{id} [put]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res, err := h.service.Cancel(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}

	msg := "Cita cancelada"
	if res.AlreadyCancelled {
		msg = "La cita ya estaba cancelada."
	}
	return c.JSON(http.StatusOK, appointmentEnvelope{Message: msg, Appointment: toAppointmentResponse(res.Appointment)})
}

// List returns the appointments matching every given filter.
//
// @Summary      List appointments
// @Tags         citas
// @Produce      json
// @Security     BearerAuth
// @Param        id_doctor    query     int     false  "Doctor (admin, or the medico's own record)"
// @Param        fecha        query     string  false  "DD-MM-YYYY HH:MM:SS (admin, secretaria)"
// @Param        id_paciente  query     int     false  "Patient (admin)"
// @Param        id_centro    query     int     false  "Center (admin)"
// @Param        estado       query     string  false  "activa | cancelada (admin)"
// @Success      200          {object}  appointmentListResponse
// @Failure      400          {object}  map[string]string
// @Failure      403          {object}  map[string]string
// @Router       /citas/listar_citas [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var q listAppointmentsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Parámetros de consulta inválidos")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}
	in, err := toListInput(q, caller)
	if err != nil {
		return err
	}

	items, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	resp := appointmentListResponse{Appointments: make([]appointmentResponse, 0, len(items))}
	for _, a := range items {
		resp.Appointments = append(resp.Appointments, toAppointmentResponse(a))
	}
	if len(items) == 0 {
		resp.Message = "La consulta no contiene ningún resultado."
	}
	return c.JSON(http.StatusOK, resp)
}
