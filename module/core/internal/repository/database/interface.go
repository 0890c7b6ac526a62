package database

import (
	"context"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

type SampleRepository interface {
	Insert(ctx context.Context, sample *domain.PositionSample) error
	GetLatest(ctx context.Context) (*domain.PositionSample, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.PositionSample, error)
}

type GeofenceRecordRepository interface {
	Save(ctx context.Context, gf *domain.Geofence) error
	List(ctx context.Context) ([]domain.Geofence, error)
	Delete(ctx context.Context, id string) error
}
