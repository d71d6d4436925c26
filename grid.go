package geoimage

import (
	"github.com/paulmach/orb"
	"github.com/tingold/geoimage/srs"
	"gonum.org/v1/gonum/floats"
)

// transformGrid builds a numx by numy grid of points spanning the rectangle
// (edges included) in from, transforms it into to and writes the results
// to outX and outY in column-major order: index c*numy + r.
//
// It fails when either SRS is invalid, the outputs are too short or any
// point fails to transform; outX and outY are untouched on failure. A
// dimension of one samples only the minimum of that axis.
func transformGrid(from, to srs.SRS, xmin, ymin, xmax, ymax float64, numx, numy int, outX, outY []float64) bool {
	if !from.Valid() || !to.Valid() || numx < 1 || numy < 1 {
		return false
	}
	n := numx * numy
	if len(outX) < n || len(outY) < n {
		return false
	}

	xs := axisSamples(numx, xmin, xmax)
	ys := axisSamples(numy, ymin, ymax)

	pts := pointPool.get(n)
	defer pointPool.put(pts)

	i := 0
	for c := 0; c < numx; c++ {
		for r := 0; r < numy; r++ {
			pts[i] = orb.Point{xs[c], ys[r]}
			i++
		}
	}

	if !from.To(to).TransformRange(pts) {
		Logger().Warn("coordinate grid transform failed",
			"from", from.String(), "to", to.String(), "numx", numx, "numy", numy)
		return false
	}

	for i, p := range pts {
		outX[i], outY[i] = p[0], p[1]
	}
	return true
}

// axisSamples returns n evenly spaced values from lo to hi inclusive.
func axisSamples(n int, lo, hi float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	return floats.Span(out, lo, hi)
}
