package ports

import (
	"context"

	"github.com/odontocare/odontocare/internal/core/domain"
)

// Directory resolves gestión-owned entities for the citas service. The
// caller's bearer token is forwarded so gestión applies its own role checks.
//
// Lookups return domain.ErrPatientNotFound, domain.ErrDoctorNotFound or
// domain.ErrCenterNotFound for a 404, and *domain.UpstreamError otherwise.
type Directory interface {
	LookupPatient(ctx context.Context, token string, id int64) (*domain.Patient, error)
	LookupDoctor(ctx context.Context, token string, id int64) (*domain.Doctor, error)
	LookupDoctorByUsername(ctx context.Context, token, username string) (*domain.Doctor, error)
	LookupCenter(ctx context.Context, token string, id int64) (*domain.MedicalCenter, error)
}

// IdempotencyStore remembers which appointment an Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (appointmentID int64, found bool, err error)
	Remember(ctx context.Context, key string, appointmentID int64) error
}

// AppointmentEventSink receives appointment lifecycle events (audit trail,
// message broker).
type AppointmentEventSink interface {
	Name() string
	Record(ctx context.Context, event domain.AppointmentEvent) error
}

// AppointmentEventQueue accepts events for asynchronous delivery to sinks.
type AppointmentEventQueue interface {
	Enqueue(event domain.AppointmentEvent)
}
