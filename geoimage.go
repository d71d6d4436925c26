// Package geoimage crops and reprojects georeferenced rasters.
//
// A GeoImage pairs a pixel buffer (Image) with the GeoExtent it covers.
// Crop cuts out a sub-area, either snapped to source pixels or resampled
// exactly; Reproject resamples into another spatial reference system
// (see package srs) with nearest-neighbour or bilinear sampling.
//
// Row 0 of an Image is the row at the minimum Y of its extent.
package geoimage

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/tingold/geoimage/srs"
)

// GeoImage is an image with a georeferenced extent. The image is shared
// between copies and must be treated as read-only. The zero value is the
// invalid GeoImage, which stands for "no data".
type GeoImage struct {
	image  *Image
	extent GeoExtent
}

// InvalidGeoImage is the invalid GeoImage.
var InvalidGeoImage = GeoImage{}

// New pairs img with the extent it covers.
func New(img *Image, extent GeoExtent) GeoImage {
	return GeoImage{image: img, extent: extent}
}

// Valid reports whether the GeoImage has an image and a valid extent.
func (g GeoImage) Valid() bool {
	return g.image != nil && g.extent.Valid()
}

// Image returns the pixel buffer, which may be nil.
func (g GeoImage) Image() *Image { return g.image }

// Extent returns the covered extent.
func (g GeoImage) Extent() GeoExtent { return g.extent }

// SRS returns the spatial reference of the extent.
func (g GeoImage) SRS() srs.SRS { return g.extent.SRS() }

// Width returns the image width in pixels, or 0 without an image.
func (g GeoImage) Width() int {
	if g.image == nil {
		return 0
	}
	return g.image.Width()
}

// Height returns the image height in pixels, or 0 without an image.
func (g GeoImage) Height() int {
	if g.image == nil {
		return 0
	}
	return g.image.Height()
}

// Crop returns the part of g inside e, which must share g's SRS.
//
// By default the crop is snapped outward to whole source pixels and no
// resampling happens; the extent of the result is the snapped area. With
// Exact(true) or an explicit Size the image is resampled to exactly e.
// An invalid receiver, including one without an image, is returned
// unchanged. A crop that covers no pixels returns InvalidGeoImage and a
// nil error.
func (g GeoImage) Crop(e GeoExtent, opts ...Option) (GeoImage, error) {
	if !g.Valid() {
		return g, nil
	}
	if !e.SRS().IsEquivalentTo(g.SRS()) {
		return InvalidGeoImage, fmt.Errorf("crop %s to %s: %w", g.SRS(), e.SRS(), ErrIncompatibleSRS)
	}

	o := applyOptions(opts)

	if o.exact || o.width != 0 || o.height != 0 {
		if o.width == 0 || o.height == 0 {
			xRes := g.extent.Width() / float64(g.image.Width())
			yRes := g.extent.Height() / float64(g.image.Height())
			o.width = max(1, int(e.Width()/xRes))
			o.height = max(1, int(e.Height()/yRes))
		}
		return g.reproject(g.SRS(), &e, o)
	}

	bound := e.Bound()
	cropped := cropImage(g.image, g.extent.Bound(), &bound)
	if cropped == nil {
		return InvalidGeoImage, nil
	}
	return New(cropped, NewGeoExtentFromBound(g.SRS(), bound)), nil
}

// Reproject resamples g into the SRS to. The destination extent is the
// one given with ToExtent, or g's extent transformed into to.
func (g GeoImage) Reproject(to srs.SRS, opts ...Option) (GeoImage, error) {
	o := applyOptions(opts)
	return g.reproject(to, o.toExtent, o)
}

func (g GeoImage) reproject(to srs.SRS, toExtent *GeoExtent, o options) (GeoImage, error) {
	if g.image == nil {
		return InvalidGeoImage, newStatus(ResourceUnavailable, "geoimage has no pixel data to reproject")
	}

	var dest GeoExtent
	if toExtent != nil {
		dest = *toExtent
	} else {
		dest = g.extent.Transform(to)
	}
	if !dest.Valid() {
		return InvalidGeoImage, fmt.Errorf("reproject %s to %s: %w", g.extent, to, ErrInvalidExtent)
	}

	img, err := reprojectImage(g.image, g.extent, dest, o)
	if err != nil {
		return InvalidGeoImage, err
	}
	return New(img, dest), nil
}

// Read samples the first layer at p with bilinear filtering. p is
// transformed into g's SRS when needed. It reports false when p is outside
// the extent or cannot be transformed.
func (g GeoImage) Read(p GeoPoint) (Pixel, bool) {
	if !p.Valid() || !g.Valid() {
		return Pixel{}, false
	}
	if !p.SRS.IsHorizEquivalentTo(g.SRS()) {
		c, ok := p.Transform(g.SRS())
		if !ok {
			return Pixel{}, false
		}
		p = c
	}
	return g.readUV(p.X, p.Y)
}

// ReadXY is Read for a coordinate in s. An invalid s means x, y are
// already in g's SRS.
func (g GeoImage) ReadXY(x, y float64, s srs.SRS) (Pixel, bool) {
	if !g.Valid() {
		return Pixel{}, false
	}
	if !s.Valid() {
		return g.readUV(x, y)
	}
	return g.ReadWithOperation(x, y, s.To(g.SRS()))
}

// ReadWithOperation is Read for a coordinate that op takes into g's SRS.
// Reusing one operation avoids resolving it for every sample.
func (g GeoImage) ReadWithOperation(x, y float64, op srs.Operation) (Pixel, bool) {
	if !g.Valid() {
		return Pixel{}, false
	}
	p, ok := op.Transform(orb.Point{x, y})
	if !ok {
		return Pixel{}, false
	}
	return g.readUV(p[0], p[1])
}

func (g GeoImage) readUV(x, y float64) (Pixel, bool) {
	u := (x - g.extent.XMin()) / g.extent.Width()
	v := (y - g.extent.YMin()) / g.extent.Height()

	if !(u >= 0 && u <= 1 && v >= 0 && v <= 1) {
		return Pixel{}, false
	}
	return g.image.ReadBilinear(u, v, 0), true
}

// UnitsPerPixel returns the mean ground resolution in SRS units, or 0
// without an image.
func (g GeoImage) UnitsPerPixel() float64 {
	if g.image == nil {
		return 0
	}
	uppw := g.extent.Width() / float64(g.image.Width())
	upph := g.extent.Height() / float64(g.image.Height())
	return (uppw + upph) / 2
}

// Coord maps pixel s, t to a coordinate in g's SRS such that pixel 0 lies
// on the minimum edge and pixel width-1 on the maximum edge.
func (g GeoImage) Coord(s, t int) (x, y float64, ok bool) {
	if !g.Valid() {
		return 0, 0, false
	}
	u := float64(s) / float64(g.image.Width()-1)
	v := float64(t) / float64(g.image.Height()-1)
	if math.IsNaN(u) || math.IsInf(u, 0) || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, 0, false
	}
	return g.extent.XMin() + u*g.extent.Width(), g.extent.YMin() + v*g.extent.Height(), true
}

func (g GeoImage) String() string {
	if !g.Valid() {
		return "GeoImage(invalid)"
	}
	return fmt.Sprintf("GeoImage(%dx%dx%d %s, %s)", g.image.Width(), g.image.Height(), g.image.Depth(), g.image.Format(), g.extent)
}
