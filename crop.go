package geoimage

import (
	"math"

	"github.com/paulmach/orb"
)

// cropImage copies the pixels of img that cover dst, snapped outward to
// whole source pixels. img covers src. dst is replaced by the area actually
// copied. nil is returned when the window is empty.
func cropImage(img *Image, src orb.Bound, dst *orb.Bound) *Image {
	if !img.Valid() || dst == nil {
		return nil
	}
	w, h := img.Width(), img.Height()
	srcW := src.Max[0] - src.Min[0]
	srcH := src.Max[1] - src.Min[1]
	if srcW <= 0 || srcH <= 0 {
		return nil
	}

	// Clamping alone would turn a window beyond the max edges into the last
	// row or column.
	if dst.Min[0] >= src.Max[0] || dst.Max[0] <= src.Min[0] ||
		dst.Min[1] >= src.Max[1] || dst.Max[1] <= src.Min[1] {
		Logger().Debug("crop window is outside the image", "bound", *dst)
		return nil
	}

	windowX := clampInt(floorInt((dst.Min[0]-src.Min[0])/srcW*float64(w)), 0, w-1)
	windowY := clampInt(floorInt((dst.Min[1]-src.Min[1])/srcH*float64(h)), 0, h-1)
	windowWidth := clampInt(ceilInt((dst.Max[0]-src.Min[0])/srcW*float64(w))-windowX, 0, w)
	windowHeight := clampInt(ceilInt((dst.Max[1]-src.Min[1])/srcH*float64(h))-windowY, 0, h)

	if windowX+windowWidth > w {
		windowWidth = w - windowX
	}
	if windowY+windowHeight > h {
		windowHeight = h - windowY
	}
	if windowWidth*windowHeight == 0 {
		Logger().Debug("crop window is empty", "bound", *dst)
		return nil
	}

	resS := srcW / float64(w)
	resT := srcH / float64(h)
	dst.Min = orb.Point{src.Min[0] + float64(windowX)*resS, src.Min[1] + float64(windowY)*resT}
	dst.Max = orb.Point{dst.Min[0] + float64(windowWidth)*resS, dst.Min[1] + float64(windowHeight)*resT}

	cropped, err := NewImage(img.Format(), windowWidth, windowHeight, img.Depth())
	if err != nil {
		return nil
	}

	rowBytes := cropped.RowSizeInBytes()
	for layer := 0; layer < img.Depth(); layer++ {
		for dstRow := 0; dstRow < windowHeight; dstRow++ {
			copy(cropped.DataAt(0, dstRow, layer)[:rowBytes], img.DataAt(windowX, windowY+dstRow, layer)[:rowBytes])
		}
	}
	return cropped
}

// floorInt and ceilInt saturate instead of overflowing on huge or
// non-finite input.
func floorInt(v float64) int { return saturate(math.Floor(v)) }

func ceilInt(v float64) int { return saturate(math.Ceil(v)) }

func saturate(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(v)
}
