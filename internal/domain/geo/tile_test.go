package geo

import "testing"

func TestTileXY(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		zoom     int
		wantX    int
		wantY    int
	}{
		{"world at z0", 40.7128, -74.006, 0, 0, 0},
		{"origin at z1", 0, 0, 1, 1, 1},
		{"new york at z10", 40.7128, -74.006, 10, 301, 385},
		{"clamped north", 89.9, 179.999, 2, 3, 0},
		{"clamped south", -89.9, -180, 2, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := TileXY(tt.lat, tt.lon, tt.zoom)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("TileXY = (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRangeForBounds(t *testing.T) {
	var b Bounds
	b.Extend(LatLng{Lat: 6, Lng: 68})
	b.Extend(LatLng{Lat: 37, Lng: 98})

	r0 := RangeForBounds(b, 0)
	if r0.Count() != 1 {
		t.Errorf("z0 count = %d, want 1", r0.Count())
	}

	r5 := RangeForBounds(b, 5)
	if r5.MinX > r5.MaxX || r5.MinY > r5.MaxY {
		t.Fatalf("inverted range %+v", r5)
	}
	if r5.Count() < 4 {
		t.Errorf("z5 count = %d, expected several tiles", r5.Count())
	}
}

func TestFitZoom(t *testing.T) {
	var empty Bounds
	if z := FitZoom(empty, 800, 600, 18); z != 0 {
		t.Errorf("empty bounds zoom = %d, want 0", z)
	}

	var point Bounds
	point.Extend(LatLng{Lat: 10, Lng: 10})
	if z := FitZoom(point, 800, 600, 12); z != 12 {
		t.Errorf("single point zoom = %d, want max 12", z)
	}

	var world Bounds
	world.Extend(LatLng{Lat: -80, Lng: -179})
	world.Extend(LatLng{Lat: 80, Lng: 179})
	if z := FitZoom(world, 800, 600, 18); z > 1 {
		t.Errorf("world zoom = %d, want <= 1", z)
	}

	var city Bounds
	city.Extend(LatLng{Lat: 40.7505, Lng: -73.9934})
	city.Extend(LatLng{Lat: 40.7589, Lng: -73.9851})
	if z := FitZoom(city, 800, 600, 18); z < 13 {
		t.Errorf("city zoom = %d, want >= 13", z)
	}
}
