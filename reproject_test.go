package geoimage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tingold/geoimage/srs"
)

// values2x2 is a 2x2 float image: 0 1 on row 0, 2 3 on row 1.
func values2x2(t *testing.T) *Image {
	return newFloatImage(t, 2, 2, func(x, y int) float32 { return float32(x + 2*y) })
}

func TestManualReprojectUniform(t *testing.T) {
	for _, interp := range []Interpolation{Bilinear, Nearest} {
		t.Run(interp.String(), func(t *testing.T) {
			src, err := NewImage(R8G8B8A8Unorm, 4, 4)
			require.NoError(t, err)
			color := Pixel{0.5, 0.25, 1, 1}
			src.Fill(color)
			want := src.Read(0, 0, 0)

			ext := NewGeoExtent(srs.WGS84, 0, 0, 4, 4)
			out, err := manualReproject(src, ext, ext, interp, 2, 2, SizeMinDimension)
			require.NoError(t, err)
			require.Equal(t, 2, out.Width())
			require.Equal(t, 2, out.Height())

			for c := 0; c < 2; c++ {
				for r := 0; r < 2; r++ {
					assert.Equal(t, want, out.Read(c, r, 0), "pixel %d,%d", c, r)
				}
			}
		})
	}
}

func TestManualReprojectIdentity(t *testing.T) {
	src := newFloatImage(t, 3, 3, func(x, y int) float32 { return float32(x + 10*y) })
	ext := NewGeoExtent(srs.SphericalMercator, 0, 0, 2, 2)

	t.Run("nearest", func(t *testing.T) {
		out, err := manualReproject(src, ext, ext, Nearest, 3, 3, SizeMinDimension)
		require.NoError(t, err)
		assert.Equal(t, src.Data(), out.Data())
	})

	t.Run("bilinear exact hits", func(t *testing.T) {
		// Pixel centres of this extent land on source pixels.
		dest := NewGeoExtent(srs.SphericalMercator, -0.5, -0.5, 2.5, 2.5)
		out, err := manualReproject(src, ext, dest, Bilinear, 3, 3, SizeMinDimension)
		require.NoError(t, err)
		assert.Equal(t, src.Data(), out.Data())
	})
}

func TestManualReprojectBilinearCases(t *testing.T) {
	src := values2x2(t)
	ext := NewGeoExtent(srs.WGS84, 0, 0, 1, 1)

	tests := []struct {
		name string
		dest GeoExtent
		want float32
	}{
		// sample at (0.5, 0.5)
		{"general", NewGeoExtent(srs.WGS84, 0.25, 0.25, 0.75, 0.75), 1.5},
		// sample at (0, 0.25)
		{"vertical only", NewGeoExtent(srs.WGS84, -0.25, 0, 0.25, 0.5), 0.5},
		// sample at (0.25, 0)
		{"horizontal only", NewGeoExtent(srs.WGS84, 0, -0.25, 0.5, 0.25), 0.25},
		// sample at (1, 1)
		{"upper right", NewGeoExtent(srs.WGS84, 0.75, 0.75, 1.25, 1.25), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := manualReproject(src, ext, tt.dest, Bilinear, 1, 1, SizeMinDimension)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, out.Read(0, 0, 0)[0], 1e-6)
		})
	}
}

func TestManualReprojectOutOfBoundsStaysZero(t *testing.T) {
	src := newFloatImage(t, 2, 2, func(x, y int) float32 { return 7 })
	ext := NewGeoExtent(srs.WGS84, 0, 0, 1, 1)
	dest := NewGeoExtent(srs.WGS84, 0, 0, 2, 1)

	out, err := manualReproject(src, ext, dest, Bilinear, 2, 1, SizeMinDimension)
	require.NoError(t, err)
	assert.Equal(t, float32(7), out.Read(0, 0, 0)[0])
	assert.Equal(t, float32(0), out.Read(1, 0, 0)[0])
}

func TestManualReprojectLayers(t *testing.T) {
	src, err := NewImage(R32Sfloat, 4, 4, 3)
	require.NoError(t, err)
	for layer := 0; layer < 3; layer++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				src.Write(Pixel{float32(layer + 1)}, x, y, layer)
			}
		}
	}
	ext := NewGeoExtent(srs.WGS84, 0, 0, 4, 4)

	out, err := manualReproject(src, ext, ext, Bilinear, 2, 2, SizeMinDimension)
	require.NoError(t, err)
	require.Equal(t, 3, out.Depth())
	for layer := 0; layer < 3; layer++ {
		assert.InDelta(t, float32(layer+1), out.Read(1, 1, layer)[0], 1e-6)
	}
}

func TestManualReprojectDefaultSize(t *testing.T) {
	src, err := NewImage(R8Unorm, 8, 4)
	require.NoError(t, err)
	ext := NewGeoExtent(srs.WGS84, 0, 0, 8, 4)

	out, err := manualReproject(src, ext, ext, Nearest, 0, 0, SizeMinDimension)
	require.NoError(t, err)
	assert.Equal(t, 4, out.Width())
	assert.Equal(t, 4, out.Height())

	out, err = manualReproject(src, ext, ext, Nearest, 0, 3, SizePreserveAspect)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Width())
	assert.Equal(t, 4, out.Height())

	tall := NewGeoExtent(srs.WGS84, 0, 0, 2, 8)
	w, h := outputSize(src, tall, 0, 0, SizePreserveAspect)
	assert.Equal(t, 2, w)
	assert.Equal(t, 8, h)
}

func TestManualReprojectErrors(t *testing.T) {
	src := values2x2(t)
	ext := NewGeoExtent(srs.WGS84, 0, 0, 1, 1)

	_, err := manualReproject(nil, ext, ext, Bilinear, 1, 1, SizeMinDimension)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.EqualError(t, err, "Resource unavailable: source image has no pixel data")

	_, err = manualReproject(src, ext, InvalidExtent, Bilinear, 1, 1, SizeMinDimension)
	assert.ErrorIs(t, err, ErrInvalidExtent)

	dest := NewGeoExtent(srs.PlateCarree, 0, 0, 1e5, 2e7)
	_, err = manualReproject(src, ext, dest, Bilinear, 4, 4, SizeMinDimension)
	assert.ErrorIs(t, err, ErrTransformFailed)
}
