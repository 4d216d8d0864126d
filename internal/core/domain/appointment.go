package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus is the lifecycle flag of an appointment.
type AppointmentStatus string

const (
	AppointmentActive    AppointmentStatus = "activa"
	AppointmentCancelled AppointmentStatus = "cancelada"
)

// Wire layouts for appointment dates (DD-MM-YYYY HH:MM and DD-MM-YYYY HH:MM:SS).
const (
	DateLayout        = "02-01-2006 15:04"
	DateSecondsLayout = "02-01-2006 15:04:05"
)

// Appointment is a booking of a patient with a doctor at a medical center.
// At most one appointment may exist per (DoctorID, Date).
type Appointment struct {
	ID        int64
	Date      time.Time
	Reason    string
	Status    AppointmentStatus
	PatientID int64
	DoctorID  int64
	CenterID  int64
	UserID    int64
}

// Cancelled reports whether the appointment has already been cancelled.
func (a *Appointment) Cancelled() bool {
	return a.Status == AppointmentCancelled
}

// ParseDate parses s with the first layout that matches. Dates are wall-clock
// times of the clinic and are stored as UTC without conversion.
func ParseDate(s string, layouts ...string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q no coincide con el formato %s", s, layouts[0])
}

// FormatDate renders t in the DD-MM-YYYY HH:MM wire layout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
