package geoimage

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/tingold/geoimage/srs"
	"gonum.org/v1/gonum/floats"
)

// containsEpsilon absorbs rounding error when testing points against extent edges.
const containsEpsilon = 1e-6

// GeoExtent is an axis-aligned rectangle in the coordinate space of an SRS.
// It is an immutable value; the zero value is invalid.
type GeoExtent struct {
	srs   srs.SRS
	bound orb.Bound
	valid bool
}

// InvalidExtent is the zero, invalid extent.
var InvalidExtent = GeoExtent{}

// NewGeoExtent creates an extent. For a geographic SRS an east edge west of
// the west edge means the extent crosses the antimeridian, and 360 degrees
// are added to it. A south edge north of the north edge, or a non-finite
// edge, yields an invalid extent.
func NewGeoExtent(s srs.SRS, west, south, east, north float64) GeoExtent {
	for _, v := range [...]float64{west, south, east, north} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return InvalidExtent
		}
	}
	if south > north {
		return InvalidExtent
	}
	if s.IsGeographic() {
		for east < west {
			east += 360
		}
	}
	if east < west {
		return InvalidExtent
	}

	return GeoExtent{
		srs:   s,
		bound: orb.Bound{Min: orb.Point{west, south}, Max: orb.Point{east, north}},
		valid: s.Valid(),
	}
}

// NewGeoExtentFromBound creates an extent from an orb.Bound.
func NewGeoExtentFromBound(s srs.SRS, b orb.Bound) GeoExtent {
	return NewGeoExtent(s, b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}

// Valid reports whether the extent has an SRS and well formed bounds.
func (e GeoExtent) Valid() bool { return e.valid }

// SRS returns the spatial reference of the extent.
func (e GeoExtent) SRS() srs.SRS { return e.srs }

// XMin returns the west edge.
func (e GeoExtent) XMin() float64 { return e.bound.Min[0] }

// YMin returns the south edge.
func (e GeoExtent) YMin() float64 { return e.bound.Min[1] }

// XMax returns the east edge.
func (e GeoExtent) XMax() float64 { return e.bound.Max[0] }

// YMax returns the north edge.
func (e GeoExtent) YMax() float64 { return e.bound.Max[1] }

// Width returns the east-west size in SRS units. It is zero for an invalid extent.
func (e GeoExtent) Width() float64 {
	if !e.valid {
		return 0
	}
	return e.bound.Max[0] - e.bound.Min[0]
}

// Height returns the north-south size in SRS units. It is zero for an invalid extent.
func (e GeoExtent) Height() float64 {
	if !e.valid {
		return 0
	}
	return e.bound.Max[1] - e.bound.Min[1]
}

// Bound returns the extent as an orb.Bound.
func (e GeoExtent) Bound() orb.Bound { return e.bound }

// Center returns the centroid of the extent.
func (e GeoExtent) Center() orb.Point { return e.bound.Center() }

// CrossesAntimeridian reports whether a geographic extent spans 180 degrees longitude.
func (e GeoExtent) CrossesAntimeridian() bool {
	return e.valid && e.srs.IsGeographic() && e.bound.Max[0] > 180
}

// Equal reports whether both extents cover the same area in equivalent SRSs.
func (e GeoExtent) Equal(o GeoExtent) bool {
	if !e.valid || !o.valid {
		return e.valid == o.valid
	}
	return e.bound.Equal(o.bound) && e.srs.IsEquivalentTo(o.srs)
}

// Contains reports whether the point x, y, in the extent's SRS, lies inside
// the extent, edges included.
func (e GeoExtent) Contains(x, y float64) bool {
	if !e.valid || math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	if math.Abs(e.YMin()-y) < containsEpsilon {
		y = e.YMin()
	}
	if math.Abs(e.YMax()-y) < containsEpsilon {
		y = e.YMax()
	}
	if y < e.YMin() || y > e.YMax() {
		return false
	}

	if e.srs.IsGeographic() {
		x = normalizeLongitude(x, e.XMin())
	}
	if math.Abs(e.XMin()-x) < containsEpsilon {
		x = e.XMin()
	}
	if math.Abs(e.XMax()-x) < containsEpsilon {
		x = e.XMax()
	}
	return x >= e.XMin() && x <= e.XMax()
}

// ContainsPoint is Contains for a point in any SRS; the point is transformed
// into the extent's SRS first.
func (e GeoExtent) ContainsPoint(p GeoPoint) bool {
	if !e.valid || !p.Valid() {
		return false
	}
	q, ok := p.Transform(e.srs)
	if !ok {
		return false
	}
	return e.Contains(q.X, q.Y)
}

// ContainsExtent reports whether o lies entirely within e. Both must share an
// equivalent SRS.
func (e GeoExtent) ContainsExtent(o GeoExtent) bool {
	if !e.valid || !o.valid || !e.srs.IsHorizEquivalentTo(o.srs) {
		return false
	}
	c := o.Center()
	return e.Contains(o.XMin(), o.YMin()) &&
		e.Contains(o.XMax(), o.YMax()) &&
		e.Contains(c[0], c[1])
}

// Intersects reports whether the two extents overlap. Both must share an
// equivalent SRS.
func (e GeoExtent) Intersects(o GeoExtent) bool {
	if !e.valid || !o.valid || !e.srs.IsHorizEquivalentTo(o.srs) {
		return false
	}
	return e.bound.Intersects(o.bound)
}

// Intersection returns the overlapping area of e and o, or an invalid
// extent when they do not overlap.
func (e GeoExtent) Intersection(o GeoExtent) GeoExtent {
	if !e.Intersects(o) {
		return InvalidExtent
	}
	return NewGeoExtent(e.srs,
		math.Max(e.XMin(), o.XMin()), math.Max(e.YMin(), o.YMin()),
		math.Min(e.XMax(), o.XMax()), math.Min(e.YMax(), o.YMax()))
}

// Transform returns the minimum bounding rectangle of e in another SRS. The
// edges are sampled so projections that bow the edges outward are covered.
// An invalid extent is returned when any sample fails to transform.
func (e GeoExtent) Transform(to srs.SRS) GeoExtent {
	if !e.valid || !to.Valid() {
		return InvalidExtent
	}
	if e.srs.IsHorizEquivalentTo(to) {
		return NewGeoExtentFromBound(to, e.bound)
	}

	xmin, ymin, xmax, ymax := e.XMin(), e.YMin(), e.XMax(), e.YMax()

	// Clamp to the legal latitudes of the target when leaving geographic space.
	if e.srs.IsGeographic() && to.IsSphericalMercator() {
		legal := to.GeographicBounds()
		ymin = math.Max(legal.Min[1], math.Min(legal.Max[1], ymin))
		ymax = math.Max(legal.Min[1], math.Min(legal.Max[1], ymax))
	}

	pts := mbrSamples(xmin, ymin, xmax, ymax)
	if !e.srs.To(to).TransformRange(pts) {
		return InvalidExtent
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p[0], p[1]
	}
	outXMin, outXMax := floats.Min(xs), floats.Max(xs)
	outYMin, outYMax := floats.Min(ys), floats.Max(ys)

	// pts[0] is the centroid and pts[1..4] are LL, UL, UR, LR. A corner on
	// the wrong side of the centroid wrapped around the antimeridian.
	if to.IsGeographic() {
		c := pts[0]
		if pts[1][0] > c[0] || pts[2][0] > c[0] {
			outXMin = -180
		}
		if pts[3][0] < c[0] || pts[4][0] < c[0] {
			outXMax = 180
		}
	}

	return NewGeoExtent(to, outXMin, outYMin, outXMax, outYMax)
}

// mbrSamples returns the centroid, the four corners and five samples along
// each edge of a rectangle.
func mbrSamples(xmin, ymin, xmax, ymax float64) []orb.Point {
	const numSamples = 5
	width, height := xmax-xmin, ymax-ymin

	pts := make([]orb.Point, 0, 5+4*numSamples)
	pts = append(pts,
		orb.Point{xmin + width*0.5, ymin + height*0.5},
		orb.Point{xmin, ymin},
		orb.Point{xmin, ymax},
		orb.Point{xmax, ymax},
		orb.Point{xmax, ymin},
	)

	dw := width / (numSamples - 1)
	dh := height / (numSamples - 1)
	for i := 0; i < numSamples; i++ {
		fi := float64(i)
		pts = append(pts,
			orb.Point{xmin, ymin + dh*fi},
			orb.Point{xmax, ymin + dh*fi},
			orb.Point{xmin + dw*fi, ymax},
			orb.Point{xmin + dw*fi, ymin},
		)
	}
	return pts
}

// normalizeLongitude brings x into the 360 degree window starting at west.
func normalizeLongitude(x, west float64) float64 {
	for x < west-containsEpsilon {
		x += 360
	}
	for x > west+360+containsEpsilon {
		x -= 360
	}
	return x
}

func (e GeoExtent) String() string {
	if !e.valid {
		return "GeoExtent(invalid)"
	}
	return fmt.Sprintf("GeoExtent(%s, %g, %g, %g, %g)", e.srs, e.XMin(), e.YMin(), e.XMax(), e.YMax())
}
