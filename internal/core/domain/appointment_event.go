package domain

import "time"

// AppointmentEventType names a change in an appointment's lifecycle.
type AppointmentEventType string

const (
	EventAppointmentCreated   AppointmentEventType = "cita.creada"
	EventAppointmentUpdated   AppointmentEventType = "cita.actualizada"
	EventAppointmentCancelled AppointmentEventType = "cita.cancelada"
)

// AppointmentEvent is the audit record emitted after a successful write.
type AppointmentEvent struct {
	ID          string
	Type        AppointmentEventType
	Appointment Appointment
	Actor       string
	ActorRole   string
	OccurredAt  time.Time
}
