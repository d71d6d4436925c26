// Package xdraw provides a geoimage.ReprojectionBackend built on
// golang.org/x/image/draw.
//
// It handles resampling between extents of the same spatial reference
// system, where the pixel mapping is a pure affine transform, for 8-bit
// single channel and RGBA images. Channels are interpolated independently.
// Everything else is left to the built-in resampler.
package xdraw

import (
	"fmt"
	"image"
	"math"

	"github.com/tingold/geoimage"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Backend resamples with x/image/draw transformers.
type Backend struct {
	bilinear draw.Transformer
	nearest  draw.Transformer
}

var _ geoimage.ReprojectionBackend = (*Backend)(nil)

// New creates a Backend using draw.BiLinear and draw.NearestNeighbor.
func New() *Backend {
	return &Backend{
		bilinear: draw.BiLinear,
		nearest:  draw.NearestNeighbor,
	}
}

// ApproxBiLinear creates a faster, lower quality Backend using
// draw.ApproxBiLinear for bilinear requests.
func ApproxBiLinear() *Backend {
	return &Backend{
		bilinear: draw.ApproxBiLinear,
		nearest:  draw.NearestNeighbor,
	}
}

// Name implements geoimage.ReprojectionBackend.
func (b *Backend) Name() string { return "x/image/draw" }

// CanReproject implements geoimage.ReprojectionBackend.
func (b *Backend) CanReproject(req *geoimage.ReprojectRequest) bool {
	if req == nil || !req.Source.Valid() || req.Source.Depth() != 1 {
		return false
	}
	switch req.Source.Format() {
	case geoimage.R8Unorm, geoimage.R8G8B8A8Unorm:
	default:
		return false
	}
	// sourceToDest divides by the source size minus one.
	return req.Width > 0 && req.Height > 0 &&
		req.Source.Width() > 1 && req.Source.Height() > 1 &&
		req.SourceExtent.Valid() && req.DestExtent.Valid() &&
		req.SourceExtent.Width() > 0 && req.SourceExtent.Height() > 0 &&
		req.DestExtent.Width() > 0 && req.DestExtent.Height() > 0 &&
		req.SourceExtent.SRS().IsHorizEquivalentTo(req.DestExtent.SRS())
}

// Reproject implements geoimage.ReprojectionBackend.
func (b *Backend) Reproject(req *geoimage.ReprojectRequest) (*geoimage.Image, error) {
	if !b.CanReproject(req) {
		return nil, geoimage.ErrFallback
	}

	src := req.Source
	srcImg, err := toStdImage(src)
	if err != nil {
		return nil, err
	}

	// Only pixels whose centres fall inside the source extent are drawn;
	// the rest stay zero.
	dr := image.Rect(0, 0, req.Width, req.Height)
	inside := sampledRect(req)
	var pix []byte
	var dst draw.Image
	switch src.Format() {
	case geoimage.R8Unorm:
		d := image.NewGray(dr)
		pix, dst = d.Pix, d.SubImage(inside).(*image.Gray)
	default:
		d := image.NewRGBA(dr)
		pix, dst = d.Pix, d.SubImage(inside).(*image.RGBA)
	}

	t := b.bilinear
	if req.Interpolation == geoimage.Nearest {
		t = b.nearest
	}
	if !inside.Empty() {
		t.Transform(dst, sourceToDest(req), srcImg, srcImg.Bounds(), draw.Src, nil)
	}
	out, err := geoimage.NewImageFromData(src.Format(), req.Width, req.Height, 1, pix, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to wrap resampled pixels: %w", err)
	}
	return out, nil
}

// sourceToDest maps draw's source pixel space onto its destination pixel
// space. Source pixel centres span the source extent edge to edge, and
// destination pixel centres sit half a pixel inside the destination extent,
// matching the built-in resampler.
func sourceToDest(req *geoimage.ReprojectRequest) f64.Aff3 {
	s, d := req.SourceExtent, req.DestExtent
	sw, sh := float64(req.Source.Width()), float64(req.Source.Height())
	dw, dh := float64(req.Width), float64(req.Height)

	// destination pixels per source pixel
	a := s.Width() / (sw - 1) * dw / d.Width()
	e := s.Height() / (sh - 1) * dh / d.Height()

	c := -0.5*a + (s.XMin()-d.XMin())*dw/d.Width()
	f := -0.5*e + (s.YMin()-d.YMin())*dh/d.Height()

	return f64.Aff3{
		a, 0, c,
		0, e, f,
	}
}

// sampledRect returns the destination pixels whose centres lie within the
// source extent.
func sampledRect(req *geoimage.ReprojectRequest) image.Rectangle {
	s, d := req.SourceExtent, req.DestExtent
	dx := d.Width() / float64(req.Width)
	dy := d.Height() / float64(req.Height)

	// centre of pixel i is origin + (i+0.5)*step
	first := func(lo, origin, step float64, n int) int {
		return clamp(math.Ceil((lo-origin)/step-0.5), n)
	}
	last := func(hi, origin, step float64, n int) int {
		return clamp(math.Floor((hi-origin)/step-0.5)+1, n)
	}

	r := image.Rectangle{
		Min: image.Point{X: first(s.XMin(), d.XMin(), dx, req.Width), Y: first(s.YMin(), d.YMin(), dy, req.Height)},
		Max: image.Point{X: last(s.XMax(), d.XMin(), dx, req.Width), Y: last(s.YMax(), d.YMin(), dy, req.Height)},
	}
	return r.Intersect(image.Rect(0, 0, req.Width, req.Height))
}

func clamp(v float64, n int) int {
	return int(math.Max(0, math.Min(v, float64(n))))
}

// toStdImage wraps the pixels of img in an image.Image without copying.
func toStdImage(img *geoimage.Image) (image.Image, error) {
	r := image.Rect(0, 0, img.Width(), img.Height())
	switch img.Format() {
	case geoimage.R8Unorm:
		return &image.Gray{Pix: img.Data(), Stride: img.RowSizeInBytes(), Rect: r}, nil
	case geoimage.R8G8B8A8Unorm:
		return &image.RGBA{Pix: img.Data(), Stride: img.RowSizeInBytes(), Rect: r}, nil
	}
	return nil, fmt.Errorf("unsupported pixel format %s: %w", img.Format(), geoimage.ErrFallback)
}
