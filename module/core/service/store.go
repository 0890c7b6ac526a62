package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/geo"
)

// SnapshotFunc receives the full geofence set after every store mutation.
// The slice is a deep copy; subscribers may keep it without copying again.
type SnapshotFunc func(snapshot []domain.Geofence)

// GeofenceStore is the authoritative in-memory geofence collection. It hands
// out immutable snapshots so a tracker mid-evaluation never observes a
// half-applied mutation, and notifies subscribers on every mutation with the
// new full snapshot rather than partial diffs.
type GeofenceStore struct {
	mu          sync.Mutex
	fences      []*domain.Geofence
	highlighted string
	subs        []SnapshotFunc
}

func NewGeofenceStore() *GeofenceStore {
	return &GeofenceStore{}
}

// Subscribe registers fn for snapshot notifications. Not safe to call
// concurrently with mutations; wire subscribers up during module build.
func (s *GeofenceStore) Subscribe(fn SnapshotFunc) {
	s.subs = append(s.subs, fn)
}

// Create validates the payload, assigns a fresh id and appends the geofence
// in creation order. The caller should not have produced an invalid payload,
// but the store re-validates anyway.
func (s *GeofenceStore) Create(kind domain.GeofenceKind, payload domain.ShapePayload) (string, error) {
	gf, err := buildGeofence(kind, payload)
	if err != nil {
		return "", err
	}
	gf.ID = uuid.NewString()

	s.mu.Lock()
	s.fences = append(s.fences, gf)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return gf.ID, nil
}

// Update replaces the geometric payload wholesale. Identity and highlight
// state are preserved.
func (s *GeofenceStore) Update(id string, payload domain.ShapePayload) error {
	s.mu.Lock()
	existing := s.findLocked(id)
	if existing == nil {
		s.mu.Unlock()
		return fmt.Errorf("update %q: %w", id, domain.ErrNotFound)
	}

	gf, err := buildGeofence(existing.Kind, payload)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	existing.Center = gf.Center
	existing.Radius = gf.Radius
	existing.Vertices = gf.Vertices
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Delete removes the geofence and clears any highlight referencing it.
// Deleting an absent id is a NotFound error, not a crash, and leaves the set
// untouched.
func (s *GeofenceStore) Delete(id string) error {
	s.mu.Lock()
	idx := -1
	for i, gf := range s.fences {
		if gf.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete %q: %w", id, domain.ErrNotFound)
	}

	s.fences = append(s.fences[:idx], s.fences[idx+1:]...)
	if s.highlighted == id {
		s.highlighted = ""
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// ClearAll atomically empties the set. Always succeeds.
func (s *GeofenceStore) ClearAll() {
	s.mu.Lock()
	s.fences = nil
	s.highlighted = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Highlight sets the single highlighted geofence, demoting any previous one.
// The empty id clears the highlight.
func (s *GeofenceStore) Highlight(id string) error {
	s.mu.Lock()
	if id != "" && s.findLocked(id) == nil {
		s.mu.Unlock()
		return fmt.Errorf("highlight %q: %w", id, domain.ErrNotFound)
	}

	s.highlighted = id
	for _, gf := range s.fences {
		gf.Highlighted = gf.ID == id
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// List returns a snapshot in creation order.
func (s *GeofenceStore) List() []domain.Geofence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns a copy of a single geofence.
func (s *GeofenceStore) Get(id string) (domain.Geofence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gf := s.findLocked(id)
	if gf == nil {
		return domain.Geofence{}, fmt.Errorf("get %q: %w", id, domain.ErrNotFound)
	}
	return gf.Clone(), nil
}

func (s *GeofenceStore) findLocked(id string) *domain.Geofence {
	for _, gf := range s.fences {
		if gf.ID == id {
			return gf
		}
	}
	return nil
}

func (s *GeofenceStore) snapshotLocked() []domain.Geofence {
	snap := make([]domain.Geofence, len(s.fences))
	for i, gf := range s.fences {
		snap[i] = gf.Clone()
	}
	return snap
}

// notify runs outside the lock so subscribers can call back into the store.
func (s *GeofenceStore) notify(snapshot []domain.Geofence) {
	for _, fn := range s.subs {
		fn(snapshot)
	}
}

func buildGeofence(kind domain.GeofenceKind, payload domain.ShapePayload) (*domain.Geofence, error) {
	switch kind {
	case domain.KindCircle:
		radius := geo.RoundRadius(payload.Radius)
		if err := geo.ValidateCircle(radius); err != nil {
			return nil, err
		}
		return &domain.Geofence{
			Kind:   domain.KindCircle,
			Center: payload.Center,
			Radius: radius,
		}, nil
	case domain.KindPolygon:
		if err := geo.ValidatePolygon(payload.Vertices); err != nil {
			return nil, err
		}
		return &domain.Geofence{
			Kind:     domain.KindPolygon,
			Vertices: append([]domain.LatLng(nil), payload.Vertices...),
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidGeometry, kind)
	}
}
