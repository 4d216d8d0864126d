package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

type DoctorService struct {
	users   ports.UserRepository
	doctors ports.DoctorRepository
	log     zerolog.Logger
}

func NewDoctorService(users ports.UserRepository, doctors ports.DoctorRepository, log zerolog.Logger) *DoctorService {
	return &DoctorService{users: users, doctors: doctors, log: log}
}

// CreateDoctor creates the medico user first and then the doctor profile. If
// the profile insert fails the user row is deleted again.
func (s *DoctorService) CreateDoctor(ctx context.Context, in ports.CreateDoctorInput) (*domain.Doctor, error) {
	exists, err := s.doctors.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	if exists {
		return nil, domain.ErrDoctorExists
	}

	user, err := createUser(ctx, s.users, in.Username, in.Password, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}

	doctor := &domain.Doctor{UserID: user.ID, Name: in.Name, Specialty: in.Specialty}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		compensateUser(ctx, s.users, s.log, "doctor", user.ID)
		return nil, fmt.Errorf("create doctor: %w", err)
	}

	metrics.RegistryCreatedTotal.WithLabelValues("doctor").Inc()
	s.log.Info().Int64("id_doctor", doctor.ID).Int64("id_usuario", user.ID).Msg("doctor created")
	return doctor, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id int64) (*domain.Doctor, error) {
	return s.doctors.FindByID(ctx, id)
}

// GetDoctorByUsername resolves the doctor profile linked to a login name.
func (s *DoctorService) GetDoctorByUsername(ctx context.Context, username string) (*domain.Doctor, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.doctors.FindByUserID(ctx, user.ID)
}

func (s *DoctorService) ListDoctors(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.Doctor], error) {
	page = page.Normalize()
	items, total, err := s.doctors.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return paginate(items, total, page)
}
