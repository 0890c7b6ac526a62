package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

func TestSave_Circle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO geofence_records`).
		WithArgs("gf-1", "circle", 20.5937, 78.9629, 1000.0, []byte("null")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewGeofenceRecordRepo(db)
	err = repo.Save(context.Background(), &domain.Geofence{
		ID:     "gf-1",
		Kind:   domain.KindCircle,
		Center: domain.LatLng{Lat: 20.5937, Lng: 78.9629},
		Radius: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_Polygon(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	vertices := []byte(`[{"lat":0,"lng":0},{"lat":1,"lng":0},{"lat":0,"lng":1}]`)
	mock.ExpectExec(`INSERT INTO geofence_records`).
		WithArgs("gf-2", "polygon", 0.0, 0.0, 0.0, vertices).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewGeofenceRecordRepo(db)
	err = repo.Save(context.Background(), &domain.Geofence{
		ID:   "gf-2",
		Kind: domain.KindPolygon,
		Vertices: []domain.LatLng{
			{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 0, Lng: 1},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSave_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO geofence_records`).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewGeofenceRecordRepo(db)
	err = repo.Save(context.Background(), &domain.Geofence{ID: "gf-1", Kind: domain.KindCircle})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestList_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "kind", "center_lat", "center_lng", "radius", "vertices"}).
		AddRow("gf-1", "circle", 20.5937, 78.9629, 1000.0, []byte("null")).
		AddRow("gf-2", "polygon", 0.0, 0.0, 0.0, []byte(`[{"lat":0,"lng":0},{"lat":1,"lng":0},{"lat":0,"lng":1}]`))

	mock.ExpectQuery(`SELECT id, kind, center_lat, center_lng, radius, vertices FROM geofence_records ORDER BY id`).
		WillReturnRows(rows)

	repo := NewGeofenceRecordRepo(db)
	results, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 records, got %d", len(results))
	}
	if results[0].Kind != domain.KindCircle || results[0].Radius != 1000 {
		t.Errorf("circle record wrong: %+v", results[0])
	}
	if results[1].Kind != domain.KindPolygon || len(results[1].Vertices) != 3 {
		t.Errorf("polygon record wrong: %+v", results[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestList_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "kind", "center_lat", "center_lng", "radius", "vertices"})
	mock.ExpectQuery(`SELECT id, kind, center_lat, center_lng, radius, vertices FROM geofence_records`).
		WillReturnRows(rows)

	repo := NewGeofenceRecordRepo(db)
	results, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 records, got %d", len(results))
	}
}

func TestList_BadVertices(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "kind", "center_lat", "center_lng", "radius", "vertices"}).
		AddRow("gf-1", "polygon", 0.0, 0.0, 0.0, []byte("not json"))

	mock.ExpectQuery(`SELECT id, kind, center_lat, center_lng, radius, vertices FROM geofence_records`).
		WillReturnRows(rows)

	repo := NewGeofenceRecordRepo(db)
	_, err = repo.List(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestDeleteRecord_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`DELETE FROM geofence_records WHERE id = (.+)`).
		WithArgs("gf-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewGeofenceRecordRepo(db)
	if err := repo.Delete(context.Background(), "gf-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteRecord_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`DELETE FROM geofence_records WHERE id = (.+)`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewGeofenceRecordRepo(db)
	err = repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
