package service

import (
	"context"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/database"
)

// LocationService fronts the device sample history. Persistence is a
// pass-through collaborator; containment evaluation never reads from it.
type LocationService struct {
	repo database.SampleRepository
}

func NewLocationService(repo database.SampleRepository) *LocationService {
	return &LocationService{repo: repo}
}

func (s *LocationService) SaveSample(ctx context.Context, sample *domain.PositionSample) error {
	return s.repo.Insert(ctx, sample)
}

func (s *LocationService) GetLatest(ctx context.Context) (*domain.PositionSample, error) {
	return s.repo.GetLatest(ctx)
}

func (s *LocationService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.PositionSample, error) {
	return s.repo.GetHistory(ctx, query)
}
