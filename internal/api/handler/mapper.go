package handler

import (
	"time"

	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// --- Request → Service input ---

func toBookInput(req createAppointmentRequest, caller ports.Caller, idempotencyKey string) (ports.BookAppointmentInput, error) {
	date, err := parseDate(req.Date, domain.DateLayout)
	if err != nil {
		return ports.BookAppointmentInput{}, err
	}
	return ports.BookAppointmentInput{
		Caller:         caller,
		Date:           date,
		Reason:         req.Reason,
		UserID:         req.UserID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		CenterID:       req.CenterID,
		IdempotencyKey: idempotencyKey,
	}, nil
}

func toUpdateInput(req updateAppointmentRequest, caller ports.Caller, id int64) (ports.UpdateAppointmentInput, error) {
	in := ports.UpdateAppointmentInput{
		Caller:    caller,
		ID:        id,
		Reason:    req.Reason,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		CenterID:  req.CenterID,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date, domain.DateLayout, domain.DateSecondsLayout)
		if err != nil {
			return in, err
		}
		in.Date = &date
	}
	return in, nil
}

func toListInput(q listAppointmentsQuery, caller ports.Caller) (ports.ListAppointmentsInput, error) {
	in := ports.ListAppointmentsInput{
		Caller:    caller,
		DoctorID:  q.DoctorID,
		PatientID: q.PatientID,
		CenterID:  q.CenterID,
		Status:    domain.AppointmentStatus(q.Status),
	}
	if q.Date != "" {
		date, err := parseDate(q.Date, domain.DateSecondsLayout, domain.DateLayout)
		if err != nil {
			return in, err
		}
		in.Date = date
	}
	return in, nil
}

func parseDate(s string, layouts ...string) (time.Time, error) {
	t, err := domain.ParseDate(s, layouts...)
	if err != nil {
		return time.Time{}, domain.NewValidationError("fecha", "debe tener el formato "+humanLayout(layouts[0]))
	}
	return t, nil
}

func humanLayout(layout string) string {
	if layout == domain.DateSecondsLayout {
		return "DD-MM-YYYY HH:MM:SS"
	}
	return "DD-MM-YYYY HH:MM"
}

// --- Service result → HTTP response ---

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		Date:      domain.FormatDate(a.Date),
		Reason:    a.Reason,
		Status:    string(a.Status),
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		CenterID:  a.CenterID,
		UserID:    a.UserID,
	}
}

func toPagination[T any](p *ports.Page[T]) paginationResponse {
	return paginationResponse{
		CurrentPage: p.Page,
		TotalPages:  p.TotalPages,
		Total:       p.Total,
		PerPage:     p.PerPage,
	}
}

// nonNil keeps empty listings rendering as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
