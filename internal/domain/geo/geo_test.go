package geo

import (
	"math"
	"testing"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"new york", 40.7128, -74.006, true},
		{"origin", 0, 0, true},
		{"poles and antimeridian", 90, 180, true},
		{"lat too big", 90.1, 0, false},
		{"lon too small", 0, -180.5, false},
		{"nan", math.NaN(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCoordinates(tt.lat, tt.lon); got != tt.want {
				t.Errorf("ValidateCoordinates(%v, %v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestBounds_Extend(t *testing.T) {
	var b Bounds
	if !b.IsEmpty() {
		t.Fatal("zero bounds should be empty")
	}

	b.Extend(LatLng{Lat: 40.7128, Lng: -74.006})
	if b.IsEmpty() {
		t.Fatal("bounds should not be empty after Extend")
	}
	if b.SouthWest != b.NorthEast {
		t.Fatalf("single point bounds should collapse, got %+v", b)
	}

	b.Extend(LatLng{Lat: 51.5074, Lng: -0.1278})
	if b.SouthWest.Lat != 40.7128 || b.SouthWest.Lng != -74.006 {
		t.Errorf("south west = %+v", b.SouthWest)
	}
	if b.NorthEast.Lat != 51.5074 || b.NorthEast.Lng != -0.1278 {
		t.Errorf("north east = %+v", b.NorthEast)
	}

	c := b.Center()
	if math.Abs(c.Lat-46.1101) > 1e-4 || math.Abs(c.Lng-(-37.0669)) > 1e-4 {
		t.Errorf("center = %+v", c)
	}
}
