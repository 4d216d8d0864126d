package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"campos,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to status codes, logs unexpected errors without leaking them, and renders
// {"error": "<message>"} (plus "campos" for validation failures).
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

// statusBySentinel lists the domain errors with a fixed status, checked in order.
var statusBySentinel = []struct {
	err  error
	code int
}{
	{domain.ErrNoFilters, http.StatusBadRequest},
	{domain.ErrNothingToUpdate, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrDoctorNotFound, http.StatusNotFound},
	{domain.ErrPatientNotFound, http.StatusNotFound},
	{domain.ErrCenterNotFound, http.StatusNotFound},
	{domain.ErrAppointmentNotFound, http.StatusNotFound},
	{domain.ErrPageOutOfRange, http.StatusNotFound},
	{domain.ErrUserExists, http.StatusConflict},
	{domain.ErrDoctorExists, http.StatusConflict},
	{domain.ErrPatientExists, http.StatusConflict},
	{domain.ErrCenterExists, http.StatusConflict},
	{domain.ErrDoubleBooking, http.StatusConflict},
	{domain.ErrPatientInactive, http.StatusUnprocessableEntity},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, errorResponse{Error: "Datos inválidos", Fields: ve.Fields}
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.StatusCode == 0 {
			log.Warn().Err(err).Str("path", c.Path()).Msg("gestión unavailable")
			return http.StatusBadGateway, errorResponse{Error: "El servicio de gestión no está disponible"}
		}
		msg := upstream.Message
		if msg == "" {
			msg = http.StatusText(upstream.StatusCode)
		}
		return upstream.StatusCode, errorResponse{Error: msg}
	}

	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return s.code, errorResponse{Error: publicMessage(err, s.err)}
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "error interno del servidor"}
}

// publicMessage keeps the detail a domain error was wrapped with
// ("permiso denegado: ...") but drops internal operation prefixes
// ("book appointment: ...").
func publicMessage(err, sentinel error) string {
	msg := sentinel.Error()
	if full := err.Error(); strings.HasPrefix(full, msg) {
		msg = full
	}
	return capitalize(msg)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
