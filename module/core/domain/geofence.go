package domain

type GeofenceKind string

const (
	KindCircle  GeofenceKind = "circle"
	KindPolygon GeofenceKind = "polygon"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ShapePayload carries the geometric parameters of a drawn shape.
// Circle fences use Center and Radius, polygon fences use Vertices.
type ShapePayload struct {
	Center   LatLng   `json:"center,omitempty"`
	Radius   float64  `json:"radius,omitempty"`
	Vertices []LatLng `json:"vertices,omitempty"`
}

// Geofence is a stored boundary against which position samples are tested.
// Radius is in meters, rounded to whole meters at create/update time.
// Highlight state is owned by the store, not the shape.
type Geofence struct {
	ID          string
	Kind        GeofenceKind
	Center      LatLng
	Radius      float64
	Vertices    []LatLng
	Highlighted bool
}

func (g *Geofence) Payload() ShapePayload {
	p := ShapePayload{Center: g.Center, Radius: g.Radius}
	if len(g.Vertices) > 0 {
		p.Vertices = append([]LatLng(nil), g.Vertices...)
	}
	return p
}

func (g *Geofence) Clone() Geofence {
	c := *g
	if len(g.Vertices) > 0 {
		c.Vertices = append([]LatLng(nil), g.Vertices...)
	}
	return c
}
