package geoimage

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/tingold/geoimage/srs"
)

// GeoPoint is a location in a spatial reference system.
type GeoPoint struct {
	SRS  srs.SRS
	X, Y float64
}

// NewGeoPoint returns a point at x, y in s.
func NewGeoPoint(s srs.SRS, x, y float64) GeoPoint {
	return GeoPoint{SRS: s, X: x, Y: y}
}

// Valid reports whether the point has a usable SRS.
func (p GeoPoint) Valid() bool { return p.SRS.Valid() }

// Point returns the coordinates as an orb.Point.
func (p GeoPoint) Point() orb.Point { return orb.Point{p.X, p.Y} }

// Transform returns p expressed in another SRS.
func (p GeoPoint) Transform(to srs.SRS) (GeoPoint, bool) {
	if !p.Valid() || !to.Valid() {
		return GeoPoint{}, false
	}
	out, ok := p.SRS.To(to).Transform(p.Point())
	if !ok {
		return GeoPoint{}, false
	}
	return GeoPoint{SRS: to, X: out[0], Y: out[1]}, true
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%s, %g, %g)", p.SRS, p.X, p.Y)
}
