package postgres

import (
	"context"
	"database/sql"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/database"
)

var _ database.SampleRepository = (*SampleRepo)(nil)

type SampleRepo struct {
	db *sql.DB
}

func NewSampleRepo(db *sql.DB) *SampleRepo {
	return &SampleRepo{db: db}
}

func (r *SampleRepo) Insert(ctx context.Context, sample *domain.PositionSample) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO device_samples (latitude, longitude, speed, satellites, altitude, timestamp) VALUES ($1, $2, $3, $4, $5, $6)`,
		sample.Lat, sample.Lon, sample.Speed, sample.Satellites, sample.Altitude, sample.Timestamp,
	)
	return err
}

func (r *SampleRepo) GetLatest(ctx context.Context) (*domain.PositionSample, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT latitude, longitude, speed, satellites, altitude, timestamp FROM device_samples ORDER BY timestamp DESC LIMIT 1`,
	)

	var s domain.PositionSample
	if err := row.Scan(&s.Lat, &s.Lon, &s.Speed, &s.Satellites, &s.Altitude, &s.Timestamp); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SampleRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.PositionSample, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT latitude, longitude, speed, satellites, altitude, timestamp FROM device_samples WHERE timestamp >= $1 AND timestamp <= $2 ORDER BY timestamp ASC`,
		query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.PositionSample
	for rows.Next() {
		var s domain.PositionSample
		if err := rows.Scan(&s.Lat, &s.Lon, &s.Speed, &s.Satellites, &s.Altitude, &s.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
