package geoimage

import (
	"math"

	"github.com/paulmach/orb"
)

// PolygonFromBounds creates a closed polygon from a bounding box.
func PolygonFromBounds(bound orb.Bound) orb.Polygon {
	if bound.IsEmpty() {
		return orb.Polygon{}
	}

	ring := orb.Ring{
		{bound.Min[0], bound.Min[1]}, // Bottom-left
		{bound.Max[0], bound.Min[1]}, // Bottom-right
		{bound.Max[0], bound.Max[1]}, // Top-right
		{bound.Min[0], bound.Max[1]}, // Top-left
		{bound.Min[0], bound.Min[1]}, // Close ring
	}

	return orb.Polygon{ring}
}

// Polygon returns the extent as a polygon in its own SRS.
func (e GeoExtent) Polygon() orb.Polygon {
	if !e.valid {
		return orb.Polygon{}
	}
	return PolygonFromBounds(e.bound)
}

// Corners returns the top-left, top-right, bottom-right and bottom-left
// corners of the extent.
func (e GeoExtent) Corners() [4]orb.Point {
	if !e.valid {
		return [4]orb.Point{}
	}
	return [4]orb.Point{
		{e.XMin(), e.YMax()},
		{e.XMax(), e.YMax()},
		{e.XMax(), e.YMin()},
		{e.XMin(), e.YMin()},
	}
}

// PixelToPoint converts a pixel position to a coordinate in g's SRS.
// Integer positions are pixel corners; x, y = 0, 0 is the corner at the
// extent's minimum.
func (g GeoImage) PixelToPoint(x, y float64) orb.Point {
	if !g.Valid() {
		return orb.Point{}
	}
	resX := g.extent.Width() / float64(g.image.Width())
	resY := g.extent.Height() / float64(g.image.Height())
	return orb.Point{g.extent.XMin() + x*resX, g.extent.YMin() + y*resY}
}

// PointToPixel returns the pixel containing p, which is in g's SRS. It
// reports false when p is outside the image.
func (g GeoImage) PointToPixel(p orb.Point) (int, int, bool) {
	if !g.Valid() {
		return 0, 0, false
	}
	geoWidth := g.extent.Width()
	geoHeight := g.extent.Height()
	if geoWidth == 0 || geoHeight == 0 {
		return 0, 0, false
	}

	w, h := g.image.Width(), g.image.Height()
	px := int(math.Floor((p[0] - g.extent.XMin()) / geoWidth * float64(w)))
	py := int(math.Floor((p[1] - g.extent.YMin()) / geoHeight * float64(h)))

	// The maximum edge belongs to the last pixel.
	if px == w && p[0] <= g.extent.XMax() {
		px--
	}
	if py == h && p[1] <= g.extent.YMax() {
		py--
	}
	if px < 0 || px >= w || py < 0 || py >= h {
		return 0, 0, false
	}
	return px, py, true
}

// GeoTransform returns the six affine coefficients, in GDAL order, that map
// pixel (col, row) to model coordinates for the north-up rendition of the
// image (row 0 at the top, as after Image.FlipVerticalInPlace):
//
//	X = gt[0] + col*gt[1] + row*gt[2]
//	Y = gt[3] + col*gt[4] + row*gt[5]
func (g GeoImage) GeoTransform() [6]float64 {
	if !g.Valid() {
		return [6]float64{}
	}
	resX := g.extent.Width() / float64(g.image.Width())
	resY := g.extent.Height() / float64(g.image.Height())
	return [6]float64{g.extent.XMin(), resX, 0, g.extent.YMax(), 0, -resY}
}
