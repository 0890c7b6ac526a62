package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/database"
)

var _ database.GeofenceRecordRepository = (*GeofenceRecordRepo)(nil)

// GeofenceRecordRepo stores serialized geofence records keyed by id. Polygon
// vertices go in as a JSON document, matching the shape the client draws.
type GeofenceRecordRepo struct {
	db *sql.DB
}

func NewGeofenceRecordRepo(db *sql.DB) *GeofenceRecordRepo {
	return &GeofenceRecordRepo{db: db}
}

func (r *GeofenceRecordRepo) Save(ctx context.Context, gf *domain.Geofence) error {
	vertices, err := json.Marshal(gf.Vertices)
	if err != nil {
		return fmt.Errorf("marshal vertices: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO geofence_records (id, kind, center_lat, center_lng, radius, vertices)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET kind = $2, center_lat = $3, center_lng = $4, radius = $5, vertices = $6`,
		gf.ID, string(gf.Kind), gf.Center.Lat, gf.Center.Lng, gf.Radius, vertices,
	)
	return err
}

func (r *GeofenceRecordRepo) List(ctx context.Context) ([]domain.Geofence, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, kind, center_lat, center_lng, radius, vertices FROM geofence_records ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Geofence
	for rows.Next() {
		var gf domain.Geofence
		var kind string
		var vertices []byte
		if err := rows.Scan(&gf.ID, &kind, &gf.Center.Lat, &gf.Center.Lng, &gf.Radius, &vertices); err != nil {
			return nil, err
		}
		gf.Kind = domain.GeofenceKind(kind)
		if err := json.Unmarshal(vertices, &gf.Vertices); err != nil {
			return nil, fmt.Errorf("unmarshal vertices for %s: %w", gf.ID, err)
		}
		results = append(results, gf)
	}
	return results, rows.Err()
}

func (r *GeofenceRecordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geofence_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("record %q: %w", id, domain.ErrNotFound)
	}
	return nil
}
