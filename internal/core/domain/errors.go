package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUserExists         = errors.New("el usuario ya existe")
	ErrInvalidCredentials = errors.New("password incorrecta")

	ErrDoctorNotFound  = errors.New("doctor no encontrado")
	ErrDoctorExists    = errors.New("el doctor ya existe")
	ErrPatientNotFound = errors.New("paciente no encontrado")
	ErrPatientExists   = errors.New("el paciente ya existe")
	ErrPatientInactive = errors.New("el paciente no está activo")
	ErrCenterNotFound  = errors.New("centro médico no encontrado")
	ErrCenterExists    = errors.New("el centro médico ya existe")

	ErrAppointmentNotFound = errors.New("cita no encontrada")
	ErrDoubleBooking       = errors.New("el doctor ya tiene una cita a esa hora en esa fecha")
	ErrNoFilters           = errors.New("debe indicar al menos un filtro")
	ErrNothingToUpdate     = errors.New("no hay campos para actualizar")

	ErrPageOutOfRange = errors.New("la página solicitada no existe")
	ErrForbidden      = errors.New("permiso denegado")
)

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// UpstreamError reports a failed call to the gestión service.
// StatusCode is zero when the service could not be reached at all.
type UpstreamError struct {
	Resource   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("gestión %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("gestión %s: status %d: %s", e.Resource, e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
