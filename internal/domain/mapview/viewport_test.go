package mapview

import "testing"

func TestFit_NoPoints(t *testing.T) {
	v := Fit(nil, DefaultFrame)
	if v.Zoom != WorldZoom || v.Center.Lat != 0 || v.Center.Lng != 0 || v.Bounds != nil {
		t.Fatalf("Fit(nil) = %+v", v)
	}
}

func TestFit_SinglePoint(t *testing.T) {
	v := Fit([]Point{{ID: "a", Lat: 51.5074, Lng: -0.1278}}, DefaultFrame)
	if v.Zoom != SingleZoom || v.Center.Lat != 51.5074 || v.Center.Lng != -0.1278 {
		t.Fatalf("Fit(one) = %+v", v)
	}
}

func TestFit_ManyPoints(t *testing.T) {
	pts := []Point{
		{ID: "ny", Lat: 40.7128, Lng: -74.006},
		{ID: "london", Lat: 51.5074, Lng: -0.1278},
		{ID: "tokyo", Lat: 35.6762, Lng: 139.6503},
	}

	v := Fit(pts, DefaultFrame)
	if v.Bounds == nil {
		t.Fatal("expected bounds")
	}
	if v.Bounds.SouthWest.Lat != 35.6762 || v.Bounds.NorthEast.Lng != 139.6503 {
		t.Errorf("bounds = %+v", *v.Bounds)
	}
	if v.Zoom < 1 || v.Zoom > 3 {
		t.Errorf("zoom = %d, want a world-scale zoom", v.Zoom)
	}
	for _, p := range pts {
		if p.Lat < v.Bounds.SouthWest.Lat || p.Lat > v.Bounds.NorthEast.Lat {
			t.Errorf("%s outside bounds", p.ID)
		}
	}
}

func TestFit_ClusterZoomsIn(t *testing.T) {
	pts := []Point{
		{ID: "a", Lat: 40.7128, Lng: -74.006},
		{ID: "b", Lat: 40.7580, Lng: -73.9855},
	}

	v := Fit(pts, DefaultFrame)
	if v.Zoom < 11 {
		t.Errorf("zoom = %d, want city zoom", v.Zoom)
	}
}

func TestFocus(t *testing.T) {
	v := Focus(Point{ID: "x", Lat: 12.9716, Lng: 77.5946})
	if v.Zoom != FocusZoom || v.Center.Lat != 12.9716 || v.Bounds != nil {
		t.Fatalf("Focus = %+v", v)
	}
}
