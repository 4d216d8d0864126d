package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) CreateUser(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	user, err := createUser(ctx, s.users, in.Username, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	metrics.RegistryCreatedTotal.WithLabelValues("user").Inc()
	s.log.Info().Int64("id_usuario", user.ID).Str("username", user.Username).Str("rol", user.Role).Msg("user created")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.User], error) {
	page = page.Normalize()
	items, total, err := s.users.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return paginate(items, total, page)
}

// createUser hashes the password and inserts the user. The repository reports
// a taken username as domain.ErrUserExists.
func createUser(ctx context.Context, users ports.UserRepository, username, password, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("rol", "debe ser uno de: admin medico secretaria paciente")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// compensateUser deletes a user whose dependent profile could not be stored.
// It runs detached from request cancellation so an aborted request still
// cleans up.
func compensateUser(ctx context.Context, users ports.UserRepository, log zerolog.Logger, entity string, userID int64) {
	metrics.CompensationsTotal.WithLabelValues(entity).Inc()
	if err := users.Delete(context.WithoutCancel(ctx), userID); err != nil {
		log.Error().Err(err).Int64("id_usuario", userID).Str("entity", entity).Msg("compensating user delete failed")
		return
	}
	log.Warn().Int64("id_usuario", userID).Str("entity", entity).Msg("user deleted after failed profile insert")
}

// paginate rejects a page past the end of a non-empty listing.
func paginate[T any](items []T, total int64, page ports.PageRequest) (*ports.Page[T], error) {
	p := ports.NewPage(items, total, page)
	if total > 0 && p.Page > p.TotalPages {
		return nil, domain.ErrPageOutOfRange
	}
	return p, nil
}
