package ports

import (
	"context"
	"time"

	"github.com/odontocare/odontocare/internal/core/domain"
)

// CreateUserInput carries the data for a new standalone user.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

type UserService interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, page PageRequest) (*Page[*domain.User], error)
}

// CreateDoctorInput creates a medico user and its doctor profile.
type CreateDoctorInput struct {
	Username  string
	Password  string
	Name      string
	Specialty string
}

type DoctorService interface {
	CreateDoctor(ctx context.Context, in CreateDoctorInput) (*domain.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error)
	GetDoctorByUsername(ctx context.Context, username string) (*domain.Doctor, error)
	ListDoctors(ctx context.Context, page PageRequest) (*Page[*domain.Doctor], error)
}

// CreatePatientInput creates a paciente user and its patient profile.
type CreatePatientInput struct {
	Username string
	Password string
	Name     string
	Phone    string
	Status   domain.PatientStatus
}

type PatientService interface {
	CreatePatient(ctx context.Context, in CreatePatientInput) (*domain.Patient, error)
	GetPatient(ctx context.Context, id int64) (*domain.Patient, error)
	ListPatients(ctx context.Context, page PageRequest) (*Page[*domain.Patient], error)
}

type CreateCenterInput struct {
	Name    string
	Address string
}

type CenterService interface {
	CreateCenter(ctx context.Context, in CreateCenterInput) (*domain.MedicalCenter, error)
	GetCenter(ctx context.Context, id int64) (*domain.MedicalCenter, error)
	ListCenters(ctx context.Context, page PageRequest) (*Page[*domain.MedicalCenter], error)
}

// Caller identifies the authenticated user behind a citas request.
type Caller struct {
	Username string
	Role     string
	Token    string
}

// BookAppointmentInput carries a validated create request.
type BookAppointmentInput struct {
	Caller         Caller
	Date           time.Time
	Reason         string
	UserID         int64
	PatientID      int64
	DoctorID       int64
	CenterID       int64
	IdempotencyKey string
}

// BookAppointmentResult is returned by Book.
type BookAppointmentResult struct {
	Appointment *domain.Appointment
	// AlreadyExisted is true when the Idempotency-Key matched an earlier booking.
	AlreadyExisted bool
}

// UpdateAppointmentInput changes only the non-nil fields.
type UpdateAppointmentInput struct {
	Caller    Caller
	ID        int64
	Date      *time.Time
	Reason    *string
	PatientID *int64
	DoctorID  *int64
	CenterID  *int64
}

// Empty reports whether the update carries no field to change.
func (in UpdateAppointmentInput) Empty() bool {
	return in.Date == nil && in.Reason == nil && in.PatientID == nil && in.DoctorID == nil && in.CenterID == nil
}

type CancelAppointmentResult struct {
	Appointment      *domain.Appointment
	AlreadyCancelled bool
}

// ListAppointmentsInput carries the list filters; each one is role-gated.
type ListAppointmentsInput struct {
	Caller    Caller
	DoctorID  int64
	PatientID int64
	CenterID  int64
	Date      time.Time
	Status    domain.AppointmentStatus
}

type AppointmentService interface {
	Book(ctx context.Context, in BookAppointmentInput) (*BookAppointmentResult, error)
	Update(ctx context.Context, in UpdateAppointmentInput) (*domain.Appointment, error)
	Cancel(ctx context.Context, caller Caller, id int64) (*CancelAppointmentResult, error)
	List(ctx context.Context, in ListAppointmentsInput) ([]*domain.Appointment, error)
}
