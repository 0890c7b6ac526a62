package service

import (
	"context"
	"log"
	"sync"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/geo"
	"github.com/nandanugg/geofence-tracker/module/core/internal/repository/publisher"
)

// ContainmentTracker consumes the position sample stream and the current
// geofence snapshot, keeps per-geofence inside/outside status, and publishes
// a transition exactly once per crossing. The mutex serializes OnSample so
// evaluations never interleave and status comparisons are race-free.
type ContainmentTracker struct {
	mu     sync.Mutex
	pub    publisher.TransitionPublisher
	fences []domain.Geofence
	inside map[string]bool
}

func NewContainmentTracker(pub publisher.TransitionPublisher) *ContainmentTracker {
	return &ContainmentTracker{
		pub:    pub,
		inside: make(map[string]bool),
	}
}

// OnGeofenceSetChanged reconciles the status map against a new snapshot: new
// ids start outside, deleted ids are dropped. No transition fires purely from
// geometry changing; the position is only re-evaluated on the next sample.
func (t *ContainmentTracker) OnGeofenceSetChanged(snapshot []domain.Geofence) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fences = snapshot

	seen := make(map[string]bool, len(snapshot))
	for _, gf := range snapshot {
		seen[gf.ID] = true
		if _, ok := t.inside[gf.ID]; !ok {
			t.inside[gf.ID] = false
		}
	}
	for id := range t.inside {
		if !seen[id] {
			delete(t.inside, id)
		}
	}
}

// OnSample evaluates the sample against every geofence in the current
// snapshot exactly once. A malformed payload skips that single geofence with
// a warning; a publish failure is logged but never re-arms the edge, so a
// crossing cannot fire twice.
func (t *ContainmentTracker) OnSample(ctx context.Context, sample domain.PositionSample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	point := domain.LatLng{Lat: sample.Lat, Lng: sample.Lon}
	for _, gf := range t.fences {
		in, err := contains(point, gf)
		if err != nil {
			log.Printf("geofence %s: skipping evaluation: %v", gf.ID, err)
			continue
		}

		if in == t.inside[gf.ID] {
			continue
		}
		t.inside[gf.ID] = in

		event := domain.GeofenceExit
		if in {
			event = domain.GeofenceEntry
		}
		tr := &domain.Transition{
			GeofenceID: gf.ID,
			Event:      event,
			Sample:     sample,
			Timestamp:  sample.Timestamp.Unix(),
		}
		if err := t.pub.PublishTransition(ctx, tr); err != nil {
			log.Printf("geofence %s: publish %s: %v", gf.ID, event, err)
		}
	}
}

// Inside reports the current containment status for a geofence id.
func (t *ContainmentTracker) Inside(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inside[id]
}

func contains(p domain.LatLng, gf domain.Geofence) (bool, error) {
	switch gf.Kind {
	case domain.KindCircle:
		return geo.PointInCircle(p, gf.Center, gf.Radius), nil
	case domain.KindPolygon:
		return geo.PointInPolygon(p, gf.Vertices)
	default:
		return false, domain.ErrInvalidGeometry
	}
}
