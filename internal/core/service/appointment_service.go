package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

// AppointmentService implements booking, rescheduling, cancellation and the
// role-scoped listing of appointments.
type AppointmentService struct {
	repo   ports.AppointmentRepository
	dir    ports.Directory
	idem   ports.IdempotencyStore      // optional
	events ports.AppointmentEventQueue // optional
	now    func() time.Time
	log    zerolog.Logger
}

func NewAppointmentService(
	repo ports.AppointmentRepository,
	dir ports.Directory,
	idem ports.IdempotencyStore,
	events ports.AppointmentEventQueue,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:   repo,
		dir:    dir,
		idem:   idem,
		events: events,
		now:    time.Now,
		log:    log,
	}
}

// Book validates the patient, doctor and center against gestión and inserts
// the appointment. The repository rejects a taken (doctor, date) slot
// atomically with domain.ErrDoubleBooking.
func (s *AppointmentService) Book(ctx context.Context, in ports.BookAppointmentInput) (*ports.BookAppointmentResult, error) {
	idemKey := ""
	if in.IdempotencyKey != "" && s.idem != nil {
		idemKey = in.Caller.Username + ":" + in.IdempotencyKey
		if existing := s.replay(ctx, idemKey); existing != nil {
			metrics.AppointmentsBookedTotal.WithLabelValues("replayed").Inc()
			s.log.Info().Str("idempotency_key", in.IdempotencyKey).Int64("id_cita", existing.ID).Msg("idempotent replay")
			return &ports.BookAppointmentResult{Appointment: existing, AlreadyExisted: true}, nil
		}
	}

	token := in.Caller.Token
	if err := s.checkPatient(ctx, token, in.PatientID); err != nil {
		return nil, err
	}
	if err := s.checkDoctor(ctx, token, in.DoctorID); err != nil {
		return nil, err
	}
	if err := s.checkCenter(ctx, token, in.CenterID); err != nil {
		return nil, err
	}

	a := &domain.Appointment{
		Date:      in.Date.UTC(),
		Reason:    in.Reason,
		Status:    domain.AppointmentActive,
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		CenterID:  in.CenterID,
		UserID:    in.UserID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDoubleBooking) {
			s.reject(err)
			s.log.Info().Int64("id_doctor", a.DoctorID).Str("fecha", domain.FormatDate(a.Date)).Msg("double booking rejected")
		}
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	if idemKey != "" {
		if err := s.idem.Remember(ctx, idemKey, a.ID); err != nil {
			s.log.Warn().Err(err).Int64("id_cita", a.ID).Msg("idempotency key not stored")
		}
	}

	metrics.AppointmentsBookedTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Int64("id_cita", a.ID).
		Int64("id_doctor", a.DoctorID).
		Int64("id_paciente", a.PatientID).
		Str("fecha", domain.FormatDate(a.Date)).
		Str("by", in.Caller.Username).
		Msg("appointment booked")
	s.emit(domain.EventAppointmentCreated, a, in.Caller)

	return &ports.BookAppointmentResult{Appointment: a}, nil
}

// Update changes the fields present in the input. A new patient, doctor or
// center is validated against gestión first; the resulting (doctor, date)
// pair is checked for collisions by the repository.
func (s *AppointmentService) Update(ctx context.Context, in ports.UpdateAppointmentInput) (*domain.Appointment, error) {
	if in.Empty() {
		return nil, domain.ErrNothingToUpdate
	}

	a, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	token := in.Caller.Token
	if in.PatientID != nil {
		if err := s.checkPatient(ctx, token, *in.PatientID); err != nil {
			return nil, err
		}
		a.PatientID = *in.PatientID
	}
	if in.DoctorID != nil {
		if err := s.checkDoctor(ctx, token, *in.DoctorID); err != nil {
			return nil, err
		}
		a.DoctorID = *in.DoctorID
	}
	if in.CenterID != nil {
		if err := s.checkCenter(ctx, token, *in.CenterID); err != nil {
			return nil, err
		}
		a.CenterID = *in.CenterID
	}
	if in.Date != nil {
		a.Date = in.Date.UTC()
	}
	if in.Reason != nil {
		a.Reason = *in.Reason
	}

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, domain.ErrDoubleBooking) {
			s.reject(err)
		}
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	s.log.Info().Int64("id_cita", a.ID).Str("by", in.Caller.Username).Msg("appointment updated")
	s.emit(domain.EventAppointmentUpdated, a, in.Caller)
	return a, nil
}

// Cancel flips the appointment to cancelada. Cancelling an already cancelled
// appointment is not an error; the result reports it instead.
func (s *AppointmentService) Cancel(ctx context.Context, caller ports.Caller, id int64) (*ports.CancelAppointmentResult, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Cancelled() {
		return &ports.CancelAppointmentResult{Appointment: a, AlreadyCancelled: true}, nil
	}

	a.Status = domain.AppointmentCancelled
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	metrics.AppointmentsCancelledTotal.Inc()
	s.log.Info().Int64("id_cita", a.ID).Str("by", caller.Username).Msg("appointment cancelled")
	s.emit(domain.EventAppointmentCancelled, a, caller)
	return &ports.CancelAppointmentResult{Appointment: a}, nil
}

// List returns the appointments matching every given filter. Each filter is
// only available to some roles:
//
//	id_doctor                      admin, medico (own doctor record only)
//	fecha                          admin, secretaria
//	id_paciente, id_centro, estado admin
//
// A filtered doctor listing defaults to active appointments.
func (s *AppointmentService) List(ctx context.Context, in ports.ListAppointmentsInput) ([]*domain.Appointment, error) {
	filter := ports.AppointmentFilter{
		DoctorID:  in.DoctorID,
		PatientID: in.PatientID,
		CenterID:  in.CenterID,
		Date:      in.Date,
		Status:    in.Status,
	}
	if filter.Empty() {
		return nil, domain.ErrNoFilters
	}

	role := in.Caller.Role
	if !in.Date.IsZero() && role != domain.RoleAdmin && role != domain.RoleSecretary {
		return nil, filterForbidden("fecha", role)
	}
	if role != domain.RoleAdmin {
		switch {
		case in.PatientID != 0:
			return nil, filterForbidden("id_paciente", role)
		case in.CenterID != 0:
			return nil, filterForbidden("id_centro", role)
		case in.Status != "":
			return nil, filterForbidden("estado", role)
		}
	}

	if in.DoctorID != 0 {
		if err := s.authorizeDoctorFilter(ctx, in.Caller, in.DoctorID); err != nil {
			return nil, err
		}
		if filter.Status == "" {
			filter.Status = domain.AppointmentActive
		}
	}

	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return items, nil
}

// authorizeDoctorFilter lets admin list any doctor and a medico only the
// doctor record linked to their own username.
func (s *AppointmentService) authorizeDoctorFilter(ctx context.Context, caller ports.Caller, doctorID int64) error {
	switch caller.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleDoctor:
		own, err := s.dir.LookupDoctorByUsername(ctx, caller.Token, caller.Username)
		if err != nil {
			if errors.Is(err, domain.ErrDoctorNotFound) || errors.Is(err, domain.ErrUserNotFound) {
				return fmt.Errorf("%w: el usuario %s no tiene un doctor asociado", domain.ErrForbidden, caller.Username)
			}
			return err
		}
		if own.ID != doctorID {
			s.log.Warn().Str("username", caller.Username).Int64("id_doctor", doctorID).Msg("doctor tried to list another doctor's appointments")
			return fmt.Errorf("%w: no está autorizado a ver las citas de otro doctor", domain.ErrForbidden)
		}
		return nil
	default:
		return filterForbidden("id_doctor", caller.Role)
	}
}

func (s *AppointmentService) checkPatient(ctx context.Context, token string, id int64) error {
	p, err := s.dir.LookupPatient(ctx, token, id)
	if err != nil {
		s.reject(err)
		return err
	}
	if !p.Active() {
		s.reject(domain.ErrPatientInactive)
		s.log.Info().Int64("id_paciente", id).Msg("booking rejected: patient inactive")
		return domain.ErrPatientInactive
	}
	return nil
}

func (s *AppointmentService) checkDoctor(ctx context.Context, token string, id int64) error {
	if _, err := s.dir.LookupDoctor(ctx, token, id); err != nil {
		s.reject(err)
		return err
	}
	return nil
}

func (s *AppointmentService) checkCenter(ctx context.Context, token string, id int64) error {
	if _, err := s.dir.LookupCenter(ctx, token, id); err != nil {
		s.reject(err)
		return err
	}
	return nil
}

// replay returns the appointment stored under an idempotency key, or nil.
// Store failures degrade to a normal booking.
func (s *AppointmentService) replay(ctx context.Context, key string) *domain.Appointment {
	id, found, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("idempotency lookup failed, booking anyway")
		return nil
	}
	if !found {
		return nil
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Int64("id_cita", id).Msg("idempotency key points to a missing appointment")
		return nil
	}
	return a
}

func (s *AppointmentService) emit(t domain.AppointmentEventType, a *domain.Appointment, caller ports.Caller) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.AppointmentEvent{
		ID:          uuid.NewString(),
		Type:        t,
		Appointment: *a,
		Actor:       caller.Username,
		ActorRole:   caller.Role,
		OccurredAt:  s.now().UTC(),
	})
}

func (s *AppointmentService) reject(err error) {
	metrics.AppointmentsRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrDoubleBooking):
		return "double_booking"
	case errors.Is(err, domain.ErrPatientInactive):
		return "patient_inactive"
	case errors.Is(err, domain.ErrPatientNotFound):
		return "patient_not_found"
	case errors.Is(err, domain.ErrDoctorNotFound):
		return "doctor_not_found"
	case errors.Is(err, domain.ErrCenterNotFound):
		return "center_not_found"
	case errors.As(err, &upstream):
		return "upstream"
	}
	return "other"
}

func filterForbidden(filter, role string) error {
	return fmt.Errorf("%w: el rol %q no puede filtrar por %s", domain.ErrForbidden, role, filter)
}
