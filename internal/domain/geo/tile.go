package geo

import "math"

// Tile is a slippy-map tile address.
type Tile struct {
	Z int
	X int
	Y int
}

// TileXY converts a coordinate to the tile containing it at the given zoom.
// Latitudes beyond the Mercator limit are clamped.
func TileXY(lat, lon float64, zoom int) (x, y int) {
	lat = math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, lat))
	n := math.Exp2(float64(zoom))
	latRad := lat * math.Pi / 180

	x = int((lon + 180.0) / 360.0 * n)
	y = int((1.0 - math.Asinh(math.Tan(latRad))/math.Pi) / 2.0 * n)

	maxIdx := int(n) - 1
	return clampInt(x, 0, maxIdx), clampInt(y, 0, maxIdx)
}

// TileRange is the inclusive tile rectangle covering a bounding box at one zoom.
type TileRange struct {
	Zoom int
	MinX int
	MinY int
	MaxX int
	MaxY int
}

// Count returns the number of tiles in the range.
func (r TileRange) Count() int {
	return (r.MaxX - r.MinX + 1) * (r.MaxY - r.MinY + 1)
}

// RangeForBounds returns the tile range covering b at zoom.
// Tile Y grows southwards, so the north-west corner gives the minimum.
func RangeForBounds(b Bounds, zoom int) TileRange {
	minX, minY := TileXY(b.NorthEast.Lat, b.SouthWest.Lng, zoom)
	maxX, maxY := TileXY(b.SouthWest.Lat, b.NorthEast.Lng, zoom)
	return TileRange{Zoom: zoom, MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// FitZoom returns the largest zoom (capped at maxZoom) at which b fits into a
// viewport of widthPx x heightPx using 256px tiles.
func FitZoom(b Bounds, widthPx, heightPx, maxZoom int) int {
	if b.IsEmpty() {
		return 0
	}
	lngSpan := b.NorthEast.Lng - b.SouthWest.Lng
	latSpan := mercatorY(b.NorthEast.Lat) - mercatorY(b.SouthWest.Lat)

	for z := maxZoom; z > 0; z-- {
		worldPx := 256 * math.Exp2(float64(z))
		w := lngSpan / 360 * worldPx
		h := latSpan / (2 * math.Pi) * worldPx
		if w <= float64(widthPx) && h <= float64(heightPx) {
			return z
		}
	}
	return 0
}

func mercatorY(lat float64) float64 {
	lat = math.Max(-MaxMercatorLat, math.Min(MaxMercatorLat, lat))
	latRad := lat * math.Pi / 180
	return math.Log(math.Tan(math.Pi/4 + latRad/2))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
