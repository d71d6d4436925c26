package srs

import (
	"math"

	"github.com/paulmach/orb"
)

// Operation transforms coordinates from one SRS to another.
// Create one with SRS.To. The zero value is an invalid operation.
type Operation struct {
	from     SRS
	to       SRS
	identity bool
}

// To returns the operation that takes coordinates from s into target.
// The operation is invalid when either SRS is invalid.
func (s SRS) To(target SRS) Operation {
	if !s.Valid() || !target.Valid() {
		return Operation{}
	}
	return Operation{
		from:     s,
		to:       target,
		identity: s.IsHorizEquivalentTo(target),
	}
}

// Valid reports whether the operation can be used.
func (op Operation) Valid() bool {
	return op.from.Valid() && op.to.Valid()
}

// From returns the source SRS.
func (op Operation) From() SRS {
	return op.from
}

// To returns the target SRS.
func (op Operation) To() SRS {
	return op.to
}

// IsIdentity reports whether points pass through unchanged.
func (op Operation) IsIdentity() bool {
	return op.identity
}

// Transform transforms a single point. It reports false if the operation
// is invalid, the point falls outside the area of use of either SRS or it
// cannot be represented in the target SRS.
func (op Operation) Transform(p orb.Point) (orb.Point, bool) {
	if !op.Valid() {
		return p, false
	}
	if op.identity {
		return p, finite(p[0], p[1])
	}

	lon, lat, _ := op.from.toGeo(p[0], p[1], 0)
	if !finite(lon, lat) || lat < -90 || lat > 90 {
		return p, false
	}
	if !op.from.Contains(lon, lat) || !op.to.Contains(lon, lat) {
		return p, false
	}
	x, y, _ := op.to.fromGeo(lon, lat, 0)
	if !finite(x, y) {
		return p, false
	}
	if op.to.IsGeographic() && (y < -90 || y > 90) {
		return p, false
	}
	return orb.Point{x, y}, true
}

// TransformRange transforms pts in place. Every point is attempted; the
// result is true only if all of them succeeded. When it returns false the
// contents of pts are unspecified and must be discarded.
func (op Operation) TransformRange(pts []orb.Point) bool {
	if !op.Valid() {
		return false
	}
	errors := 0
	for i := range pts {
		out, ok := op.Transform(pts[i])
		if !ok {
			errors++
			continue
		}
		pts[i] = out
	}
	return errors == 0
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}
