package domain

import "time"

// PositionSample is one reading from the tracked device. Immutable once
// received; timestamps are monotonically but not strictly increasing.
type PositionSample struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Speed      float64   `json:"speed"`
	Satellites int       `json:"satellites"`
	Altitude   float64   `json:"altitude"`
	Timestamp  time.Time `json:"timestamp"`
}

type HistoryQuery struct {
	Start time.Time
	End   time.Time
}
