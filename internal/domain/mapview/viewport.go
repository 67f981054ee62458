package mapview

import (
	"github.com/kailas-cloud/mapvista/internal/domain/geo"
)

// Zoom levels used by the dashboard map.
const (
	WorldZoom  = 2
	SingleZoom = 10
	FocusZoom  = 12
	MaxZoom    = 18
)

// Frame is the pixel size assumed when fitting bounds.
type Frame struct {
	Width  int
	Height int
}

// DefaultFrame matches the dashboard map panel.
var DefaultFrame = Frame{Width: 800, Height: 500}

// Viewport is the map camera.
type Viewport struct {
	Center geo.LatLng  `json:"center"`
	Zoom   int         `json:"zoom"`
	Bounds *geo.Bounds `json:"bounds,omitempty"`
}

// World is the viewport shown before any point is known.
func World() Viewport {
	return Viewport{Center: geo.LatLng{}, Zoom: WorldZoom}
}

// Fit frames all points: none shows the world, one is centred at city zoom,
// several are fitted to their bounding box.
func Fit(points []Point, frame Frame) Viewport {
	switch len(points) {
	case 0:
		return World()
	case 1:
		return Viewport{Center: points[0].LatLng(), Zoom: SingleZoom}
	}

	var b geo.Bounds
	for _, p := range points {
		b.Extend(p.LatLng())
	}
	zoom := geo.FitZoom(b, frame.Width, frame.Height, MaxZoom)
	if zoom < 1 {
		zoom = 1
	}
	return Viewport{Center: b.Center(), Zoom: zoom, Bounds: &b}
}

// Focus centres the map on a selected point.
func Focus(p Point) Viewport {
	return Viewport{Center: p.LatLng(), Zoom: FocusZoom}
}
