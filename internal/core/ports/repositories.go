package ports

import (
	"context"
	"time"

	"github.com/odontocare/odontocare/internal/core/domain"
)

// UserRepository persists users. Create fails with domain.ErrUserExists on a
// duplicate username.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Delete is only used to compensate a failed doctor/patient creation.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]*domain.User, int64, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	FindByID(ctx context.Context, id int64) (*domain.Doctor, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Doctor, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Doctor, int64, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	FindByID(ctx context.Context, id int64) (*domain.Patient, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, page PageRequest) ([]*domain.Patient, int64, error)
}

// CenterRepository fails Create with domain.ErrCenterExists when the name or
// the address is already taken.
type CenterRepository interface {
	Create(ctx context.Context, center *domain.MedicalCenter) error
	FindByID(ctx context.Context, id int64) (*domain.MedicalCenter, error)
	List(ctx context.Context, page PageRequest) ([]*domain.MedicalCenter, int64, error)
}

// AppointmentFilter selects appointments. Zero values mean "no filter"; set
// fields are combined with AND.
type AppointmentFilter struct {
	DoctorID  int64
	PatientID int64
	CenterID  int64
	Date      time.Time
	Status    domain.AppointmentStatus
}

// Empty reports whether no filter is set.
func (f AppointmentFilter) Empty() bool {
	return f.DoctorID == 0 && f.PatientID == 0 && f.CenterID == 0 && f.Date.IsZero() && f.Status == ""
}

// AppointmentRepository persists appointments. Create and Update reject a
// second appointment for the same (doctor, date) with domain.ErrDoubleBooking
// in a single statement.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	List(ctx context.Context, filter AppointmentFilter) ([]*domain.Appointment, error)
}
