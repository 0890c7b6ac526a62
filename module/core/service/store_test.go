package service

import (
	"errors"
	"testing"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

func circlePayload(lat, lng, radius float64) domain.ShapePayload {
	return domain.ShapePayload{Center: domain.LatLng{Lat: lat, Lng: lng}, Radius: radius}
}

func trianglePayload() domain.ShapePayload {
	return domain.ShapePayload{Vertices: []domain.LatLng{
		{Lat: 0, Lng: 0}, {Lat: 1, Lng: 0}, {Lat: 0, Lng: 1},
	}}
}

func TestCreate_Circle(t *testing.T) {
	store := NewGeofenceStore()

	id, err := store.Create(domain.KindCircle, circlePayload(20.5937, 78.9629, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id")
	}

	fences := store.List()
	if len(fences) != 1 {
		t.Fatalf("expected 1 geofence, got %d", len(fences))
	}
	if fences[0].ID != id {
		t.Errorf("expected id %s, got %s", id, fences[0].ID)
	}
	if fences[0].Radius != 1000 {
		t.Errorf("expected radius 1000, got %f", fences[0].Radius)
	}
}

func TestCreate_RoundsRadius(t *testing.T) {
	store := NewGeofenceStore()

	_, err := store.Create(domain.KindCircle, circlePayload(0, 0, 999.6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := store.List()[0].Radius; r != 1000 {
		t.Errorf("expected rounded radius 1000, got %f", r)
	}
}

func TestCreate_InvalidGeometry(t *testing.T) {
	store := NewGeofenceStore()

	_, err := store.Create(domain.KindCircle, circlePayload(0, 0, -5))
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}

	_, err = store.Create(domain.KindPolygon, domain.ShapePayload{
		Vertices: []domain.LatLng{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}},
	})
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}

	_, err = store.Create("hexagon", domain.ShapePayload{})
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry for unknown kind, got %v", err)
	}

	if len(store.List()) != 0 {
		t.Error("failed creates must not alter the set")
	}
}

func TestCreate_UniqueIDs(t *testing.T) {
	store := NewGeofenceStore()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestUpdate_ReplacesPayload(t *testing.T) {
	store := NewGeofenceStore()
	id, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	if err := store.Highlight(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Update(id, circlePayload(1, 1, 200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gf := store.List()[0]
	if gf.ID != id {
		t.Error("update must preserve identity")
	}
	if !gf.Highlighted {
		t.Error("update must preserve highlight state")
	}
	if gf.Radius != 200 || gf.Center.Lat != 1 {
		t.Errorf("payload not replaced: %+v", gf)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	store := NewGeofenceStore()
	err := store.Update("missing", circlePayload(0, 0, 100))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_InvalidGeometryKeepsOld(t *testing.T) {
	store := NewGeofenceStore()
	id, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))

	err := store.Update(id, circlePayload(0, 0, -1))
	if !errors.Is(err, domain.ErrInvalidGeometry) {
		t.Fatalf("expected ErrInvalidGeometry, got %v", err)
	}
	if r := store.List()[0].Radius; r != 100 {
		t.Errorf("failed update must keep the old payload, got radius %f", r)
	}
}

func TestDelete(t *testing.T) {
	store := NewGeofenceStore()
	id1, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	id2, _ := store.Create(domain.KindPolygon, trianglePayload())

	if err := store.Delete(id1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fences := store.List()
	if len(fences) != 1 || fences[0].ID != id2 {
		t.Fatalf("expected only %s to remain, got %+v", id2, fences)
	}
}

func TestDelete_NotFound(t *testing.T) {
	store := NewGeofenceStore()
	store.Create(domain.KindCircle, circlePayload(0, 0, 100))

	err := store.Delete("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(store.List()) != 1 {
		t.Error("deleting a missing id must not alter the set")
	}
}

func TestDelete_ClearsHighlight(t *testing.T) {
	store := NewGeofenceStore()
	id, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	if err := store.Highlight(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// re-creating and highlighting must work as if nothing was highlighted
	id2, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	if err := store.Highlight(id2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearAll(t *testing.T) {
	store := NewGeofenceStore()

	// clearing an empty store succeeds
	store.ClearAll()
	if len(store.List()) != 0 {
		t.Fatal("expected empty list")
	}

	store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	store.Create(domain.KindPolygon, trianglePayload())
	store.ClearAll()
	if len(store.List()) != 0 {
		t.Fatal("expected empty list after clear")
	}
}

func TestHighlight_SingleAndDemote(t *testing.T) {
	store := NewGeofenceStore()
	id1, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	id2, _ := store.Create(domain.KindCircle, circlePayload(1, 1, 100))

	if err := store.Highlight(id1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Highlight(id2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	highlighted := 0
	for _, gf := range store.List() {
		if gf.Highlighted {
			highlighted++
			if gf.ID != id2 {
				t.Errorf("expected %s highlighted, got %s", id2, gf.ID)
			}
		}
	}
	if highlighted != 1 {
		t.Errorf("expected exactly 1 highlighted, got %d", highlighted)
	}
}

func TestHighlight_Idempotent(t *testing.T) {
	store := NewGeofenceStore()
	id, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))

	store.Highlight(id)
	before := store.List()
	store.Highlight(id)
	after := store.List()

	if len(before) != len(after) {
		t.Fatal("highlight must not change set size")
	}
	for i := range before {
		if before[i].Highlighted != after[i].Highlighted {
			t.Error("second highlight with the same id must leave state unchanged")
		}
	}
}

func TestHighlight_Clear(t *testing.T) {
	store := NewGeofenceStore()
	id, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	store.Highlight(id)

	if err := store.Highlight(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.List()[0].Highlighted {
		t.Error("empty id must clear the highlight")
	}
}

func TestHighlight_NotFound(t *testing.T) {
	store := NewGeofenceStore()
	err := store.Highlight("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubscribe_NotifiesFullSnapshot(t *testing.T) {
	store := NewGeofenceStore()

	var snapshots [][]domain.Geofence
	store.Subscribe(func(snap []domain.Geofence) {
		snapshots = append(snapshots, snap)
	})

	id, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 100))
	store.Update(id, circlePayload(0, 0, 200))
	store.Highlight(id)
	store.Delete(id)
	store.ClearAll()

	if len(snapshots) != 5 {
		t.Fatalf("expected 5 notifications, got %d", len(snapshots))
	}
	if len(snapshots[0]) != 1 || snapshots[0][0].Radius != 100 {
		t.Errorf("first snapshot wrong: %+v", snapshots[0])
	}
	if snapshots[1][0].Radius != 200 {
		t.Errorf("update snapshot wrong: %+v", snapshots[1])
	}
	if !snapshots[2][0].Highlighted {
		t.Errorf("highlight snapshot wrong: %+v", snapshots[2])
	}
	if len(snapshots[3]) != 0 {
		t.Errorf("delete snapshot wrong: %+v", snapshots[3])
	}
}

func TestSnapshot_Immutable(t *testing.T) {
	store := NewGeofenceStore()
	id, _ := store.Create(domain.KindPolygon, trianglePayload())

	snap := store.List()
	snap[0].Vertices[0] = domain.LatLng{Lat: 99, Lng: 99}

	gf, err := store.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gf.Vertices[0].Lat == 99 {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestInvariants_AfterMutationSequence(t *testing.T) {
	store := NewGeofenceStore()
	id1, _ := store.Create(domain.KindCircle, circlePayload(0, 0, 50))
	id2, _ := store.Create(domain.KindPolygon, trianglePayload())
	store.Update(id1, circlePayload(2, 2, 0))
	store.Update(id2, domain.ShapePayload{Vertices: []domain.LatLng{
		{Lat: 0, Lng: 0}, {Lat: 2, Lng: 0}, {Lat: 2, Lng: 2}, {Lat: 0, Lng: 2},
	}})
	store.Delete(id1)
	id3, _ := store.Create(domain.KindCircle, circlePayload(5, 5, 300))
	_ = id3

	for _, gf := range store.List() {
		switch gf.Kind {
		case domain.KindCircle:
			if gf.Radius < 0 {
				t.Errorf("circle %s has negative radius", gf.ID)
			}
		case domain.KindPolygon:
			if len(gf.Vertices) < 3 {
				t.Errorf("polygon %s has %d vertices", gf.ID, len(gf.Vertices))
			}
		}
	}
}
