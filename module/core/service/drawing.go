package service

import (
	"fmt"
	"sync"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
	"github.com/nandanugg/geofence-tracker/module/core/geo"
)

// ModeNone cancels the active draw mode.
const ModeNone = domain.GeofenceKind("")

type sessionState int

const (
	stateIdle sessionState = iota
	stateDrawing
	stateEditing
)

// DrawingSession mediates interactive shape creation and editing, translating
// raw gesture events into store mutations. Only one of drawing/editing may be
// active at a time; the in-progress shape is never persisted until the
// gesture completes.
//
// While a gesture is active the presentation layer must suppress background
// pan/zoom, see InteractionLocked.
type DrawingSession struct {
	mu    sync.Mutex
	store *GeofenceStore

	state sessionState
	kind  domain.GeofenceKind

	// circle gesture
	center    domain.LatLng
	hasCenter bool
	radius    float64

	// polygon gesture
	vertices []domain.LatLng

	editID string
}

func NewDrawingSession(store *GeofenceStore) *DrawingSession {
	return &DrawingSession{store: store}
}

// SelectMode switches the active draw mode. Selecting the already-active mode
// toggles back to idle. Switching modes mid-draw discards the in-progress
// shape. Mode selection while an edit is active is rejected.
func (d *DrawingSession) SelectMode(kind domain.GeofenceKind) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == stateEditing {
		return fmt.Errorf("select mode while editing: %w", domain.ErrInvalidTransition)
	}

	if kind == ModeNone {
		d.resetLocked()
		return nil
	}
	if kind != domain.KindCircle && kind != domain.KindPolygon {
		return fmt.Errorf("select mode %q: %w", kind, domain.ErrInvalidTransition)
	}

	if d.state == stateDrawing && d.kind == kind {
		d.resetLocked()
		return nil
	}

	d.resetLocked()
	d.state = stateDrawing
	d.kind = kind
	return nil
}

// AddPoint feeds one click/tap point to the active gesture. For circles the
// first point fixes the center; for polygons each point appends a vertex with
// no upper bound and no simplification.
func (d *DrawingSession) AddPoint(p domain.LatLng) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != stateDrawing {
		return fmt.Errorf("add point outside draw mode: %w", domain.ErrInvalidTransition)
	}

	switch d.kind {
	case domain.KindCircle:
		if !d.hasCenter {
			d.center = p
			d.hasCenter = true
		}
	case domain.KindPolygon:
		d.vertices = append(d.vertices, p)
	}
	return nil
}

// DragTo updates the circle radius from the drag handle position.
func (d *DrawingSession) DragTo(p domain.LatLng) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != stateDrawing || d.kind != domain.KindCircle {
		return fmt.Errorf("drag outside circle draw: %w", domain.ErrInvalidTransition)
	}
	if !d.hasCenter {
		return fmt.Errorf("drag before center is set: %w", domain.ErrInvalidTransition)
	}

	d.radius = geo.RoundRadius(geo.DistanceMeters(d.center, p))
	return nil
}

// FinishGesture completes the active gesture and creates the geofence. On an
// incomplete gesture the session stays in draw mode so the user can keep
// going or cancel.
func (d *DrawingSession) FinishGesture() (string, error) {
	d.mu.Lock()

	if d.state != stateDrawing {
		d.mu.Unlock()
		return "", fmt.Errorf("finish outside draw mode: %w", domain.ErrInvalidTransition)
	}

	var payload domain.ShapePayload
	switch d.kind {
	case domain.KindCircle:
		if !d.hasCenter {
			d.mu.Unlock()
			return "", fmt.Errorf("%w: circle has no center yet", domain.ErrInvalidGeometry)
		}
		payload = domain.ShapePayload{Center: d.center, Radius: d.radius}
	case domain.KindPolygon:
		if len(d.vertices) < 3 {
			d.mu.Unlock()
			return "", fmt.Errorf("%w: polygon has %d of 3 required vertices", domain.ErrInvalidGeometry, len(d.vertices))
		}
		payload = domain.ShapePayload{Vertices: append([]domain.LatLng(nil), d.vertices...)}
	}

	kind := d.kind
	d.mu.Unlock()

	// Create outside the session lock; the store notifies subscribers.
	id, err := d.store.Create(kind, payload)
	if err != nil {
		return "", err
	}

	d.mu.Lock()
	d.resetLocked()
	d.mu.Unlock()
	return id, nil
}

// CancelGesture discards any in-progress shape or edit with no store
// mutation. Safe to call from idle.
func (d *DrawingSession) CancelGesture() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

// BeginEdit enters editing for an existing geofence, entered externally on a
// handle drag. Rejected while drawing or editing is already active.
func (d *DrawingSession) BeginEdit(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != stateIdle {
		return fmt.Errorf("begin edit while a gesture is active: %w", domain.ErrInvalidTransition)
	}
	if _, err := d.store.Get(id); err != nil {
		return err
	}

	d.state = stateEditing
	d.editID = id
	return nil
}

// CompleteEdit exits editing on handle release, replacing the payload
// wholesale with the fully recomputed shape. On a validation failure the
// session stays in editing so the caller can retry or cancel.
func (d *DrawingSession) CompleteEdit(payload domain.ShapePayload) error {
	d.mu.Lock()
	if d.state != stateEditing {
		d.mu.Unlock()
		return fmt.Errorf("complete edit outside editing: %w", domain.ErrInvalidTransition)
	}
	id := d.editID
	d.mu.Unlock()

	if err := d.store.Update(id, payload); err != nil {
		return err
	}

	d.mu.Lock()
	d.resetLocked()
	d.mu.Unlock()
	return nil
}

// InteractionLocked reports whether the presentation layer must suppress
// background pan/zoom/drag. True while drawing or editing.
func (d *DrawingSession) InteractionLocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state != stateIdle
}

func (d *DrawingSession) resetLocked() {
	d.state = stateIdle
	d.kind = ModeNone
	d.center = domain.LatLng{}
	d.hasCenter = false
	d.radius = 0
	d.vertices = nil
	d.editID = ""
}
