package geoimage

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// outputSize resolves the dimensions of a reprojection. Both must be
// positive to be used as given.
func outputSize(src *Image, dest GeoExtent, width, height int, policy SizePolicy) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}

	if policy == SizePreserveAspect && dest.Width() > 0 && dest.Height() > 0 {
		long := max(src.Width(), src.Height())
		aspect := dest.Width() / dest.Height()
		if aspect >= 1 {
			return long, max(1, int(math.Round(float64(long)/aspect)))
		}
		return max(1, int(math.Round(float64(long)*aspect))), long
	}

	m := min(src.Width(), src.Height())
	return m, m
}

// manualReproject resamples img, which covers srcExtent, onto a new image
// covering destExtent. Destination pixel centres are transformed into the
// source SRS and sampled there; samples falling outside srcExtent stay zero.
func manualReproject(img *Image, srcExtent, destExtent GeoExtent, interp Interpolation, width, height int, policy SizePolicy) (*Image, error) {
	if !img.Valid() {
		return nil, newStatus(ResourceUnavailable, "source image has no pixel data")
	}
	if !srcExtent.Valid() || !destExtent.Valid() {
		return nil, ErrInvalidExtent
	}

	width, height = outputSize(img, destExtent, width, height, policy)
	result, err := NewImage(img.Format(), width, height, img.Depth())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate reprojected image: %w", err)
	}

	dx := destExtent.Width() / float64(width)
	dy := destExtent.Height() / float64(height)

	n := width * height
	srcX := floatPool.get(n)
	defer floatPool.put(srcX)
	srcY := floatPool.get(n)
	defer floatPool.put(srcY)

	// Sample pixel centres.
	ok := transformGrid(
		destExtent.SRS(), srcExtent.SRS(),
		destExtent.XMin()+0.5*dx, destExtent.YMin()+0.5*dy,
		destExtent.XMax()-0.5*dx, destExtent.YMax()-0.5*dy,
		width, height, srcX, srcY)
	if !ok {
		return nil, fmt.Errorf("reproject %s to %s: %w", srcExtent.SRS(), destExtent.SRS(), ErrTransformFailed)
	}

	sw, sh := img.Width(), img.Height()
	xfac := float64(sw-1) / srcExtent.Width()
	yfac := float64(sh-1) / srcExtent.Height()
	sxmin, symin := srcExtent.XMin(), srcExtent.YMin()
	sxmax, symax := srcExtent.XMax(), srcExtent.YMax()

	var color, ur, ll, ul, lr Pixel

	for layer := 0; layer < img.Depth(); layer++ {
		pixel := 0
		for c := 0; c < width; c++ {
			for r := 0; r < height; r++ {
				x, y := srcX[pixel], srcY[pixel]
				pixel++

				if x < sxmin || x > sxmax || y < symin || y > symax {
					continue
				}

				px := float32((x - sxmin) * xfac)
				py := float32((y - symin) * yfac)

				pxi := clampInt(int(math32.Round(px)), 0, sw-1)
				pyi := clampInt(int(math32.Round(py)), 0, sh-1)

				if interp == Nearest {
					img.ReadInto(&color, pxi, pyi, layer)
					result.Write(color, c, r, layer)
					continue
				}

				rowMin := max(int(math32.Floor(py)), 0)
				rowMax := max(min(int(math32.Ceil(py)), sh-1), 0)
				colMin := max(int(math32.Floor(px)), 0)
				colMax := max(min(int(math32.Ceil(px)), sw-1), 0)
				if rowMin > rowMax {
					rowMin = rowMax
				}
				if colMin > colMax {
					colMin = colMax
				}

				img.ReadInto(&ur, colMax, rowMax, layer)
				img.ReadInto(&ll, colMin, rowMin, layer)
				img.ReadInto(&ul, colMin, rowMax, layer)
				img.ReadInto(&lr, colMax, rowMin, layer)

				switch {
				case colMax == colMin && rowMax == rowMin:
					img.ReadInto(&color, pxi, pyi, layer)
				case colMax == colMin:
					// vertical only
					r0, r1 := float32(rowMax)-py, py-float32(rowMin)
					for i := range color {
						color[i] = r0*ll[i] + r1*ul[i]
					}
				case rowMax == rowMin:
					// horizontal only
					c0, c1 := float32(colMax)-px, px-float32(colMin)
					for i := range color {
						color[i] = c0*ll[i] + c1*lr[i]
					}
				default:
					col1, col2 := float32(colMax)-px, px-float32(colMin)
					row1, row2 := float32(rowMax)-py, py-float32(rowMin)
					for i := range color {
						r1 := col1*ll[i] + col2*lr[i]
						r2 := col1*ul[i] + col2*ur[i]
						color[i] = row1*r1 + row2*r2
					}
				}

				result.Write(color, c, r, layer)
			}
		}
	}

	return result, nil
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
