package domain

type TransitionEvent string

const (
	GeofenceEntry TransitionEvent = "geofence_entry"
	GeofenceExit  TransitionEvent = "geofence_exit"
)

// Transition records a containment status change for one geofence between
// two consecutive samples.
type Transition struct {
	GeofenceID string          `json:"geofence_id"`
	Event      TransitionEvent `json:"event"`
	Sample     PositionSample  `json:"sample"`
	Timestamp  int64           `json:"timestamp"`
}
