package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/odontocare/odontocare/internal/api/metrics"
	"github.com/odontocare/odontocare/internal/core/domain"
	"github.com/odontocare/odontocare/internal/core/ports"
)

type CenterService struct {
	centers ports.CenterRepository
	log     zerolog.Logger
}

func NewCenterService(centers ports.CenterRepository, log zerolog.Logger) *CenterService {
	return &CenterService{centers: centers, log: log}
}

func (s *CenterService) CreateCenter(ctx context.Context, in ports.CreateCenterInput) (*domain.MedicalCenter, error) {
	center := &domain.MedicalCenter{Name: in.Name, Address: in.Address}
	if err := s.centers.Create(ctx, center); err != nil {
		return nil, fmt.Errorf("create center: %w", err)
	}
	metrics.RegistryCreatedTotal.WithLabelValues("center").Inc()
	s.log.Info().Int64("id_centro", center.ID).Str("nombre", center.Name).Msg("medical center created")
	return center, nil
}

func (s *CenterService) GetCenter(ctx context.Context, id int64) (*domain.MedicalCenter, error) {
	return s.centers.FindByID(ctx, id)
}

func (s *CenterService) ListCenters(ctx context.Context, page ports.PageRequest) (*ports.Page[*domain.MedicalCenter], error) {
	page = page.Normalize()
	items, total, err := s.centers.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	return paginate(items, total, page)
}
