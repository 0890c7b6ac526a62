package service

import (
	"context"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/database"
)

// RecordService saves live geofences to the external document store on
// demand. The core does no caching or conflict resolution here; records are
// serialized snapshots keyed by geofence id.
type RecordService struct {
	store *GeofenceStore
	repo  database.GeofenceRecordRepository
}

func NewRecordService(store *GeofenceStore, repo database.GeofenceRecordRepository) *RecordService {
	return &RecordService{store: store, repo: repo}
}

// SaveGeofence persists the current state of one live geofence.
func (s *RecordService) SaveGeofence(ctx context.Context, id string) error {
	gf, err := s.store.Get(id)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, &gf)
}

func (s *RecordService) ListSaved(ctx context.Context) ([]domain.Geofence, error) {
	return s.repo.List(ctx)
}

func (s *RecordService) DeleteSaved(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
