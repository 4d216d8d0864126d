package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

type PatientService struct {
	users    ports.UserRepository
	patients ports.PatientRepository
	log      zerolog.Logger
}

func NewPatientService(users ports.UserRepository, patients ports.PatientRepository, log zerolog.Logger) *PatientService {
	return &PatientService{users: users, patients: patients, log: log}
}

// CreatePatient mirrors CreateDoctor: paciente user first, profile second,
// user deleted again if the profile cannot be stored.
func (s *PatientService) CreatePatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	exists, err := s.patients.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	if exists {
		return nil, domain.ErrPatientExists
	}

	status := in.Status
	if status == "" {
		status = domain.PatientActive
	}

	user, err := createUser(ctx, s.users, in.Username, in.Password, domain.RolePatient)
	if err != nil {
		return nil, err
	}

	patient := &domain.Patient{UserID: user.ID, Name: in.Name, Phone: in.Phone, Status: status}
	if err := s.patients.Create(ctx, patient); err != nil {
		compensateUser(ctx, s.users, s.log, "patient", user.ID)
		return nil, fmt.Errorf("create patient: %w", err)
	}

	metrics.RegistryCreatedTotal.WithLabelValues("patient").Inc()
	s.log.Info().Int64("id_paciente", patient.ID).Int64("id_usuario", user.ID).Msg("patient created")
	return patient, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.patients.FindByID(ctx, id)
}

func (s *PatientService) ListPatients(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.Patient], error) {
	page = page.Normalize()
	items, total, err := s.patients.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return paginate(items, total, page)
}
