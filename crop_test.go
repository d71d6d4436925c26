package geoimage

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ramp4x4 is a 4x4 R8 image whose pixel (x, y) stores the byte x + 4y.
func ramp4x4(t *testing.T) *Image {
	t.Helper()
	img, err := NewImage(R8Unorm, 4, 4)
	require.NoError(t, err)
	for i := range img.Data() {
		img.Data()[i] = byte(i)
	}
	return img
}

func bound(minX, minY, maxX, maxY float64) orb.Bound {
	return orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
}

func TestCropImageSnapsOutward(t *testing.T) {
	img := ramp4x4(t)
	src := bound(0, 0, 4, 4)
	dst := bound(1.5, 1.5, 3.2, 2.9)

	out := cropImage(img, src, &dst)
	require.NotNil(t, out)
	assert.Equal(t, 3, out.Width())
	assert.Equal(t, 2, out.Height())
	assert.Equal(t, bound(1, 1, 4, 3), dst)
	assert.Equal(t, []byte{5, 6, 7, 9, 10, 11}, out.Data())
}

func TestCropImageIdempotent(t *testing.T) {
	img := ramp4x4(t)
	src := bound(0, 0, 4, 4)
	dst := bound(1, 0, 3, 2)

	first := cropImage(img, src, &dst)
	require.NotNil(t, first)
	again := dst
	second := cropImage(first, dst, &again)
	require.NotNil(t, second)

	assert.Equal(t, dst, again)
	assert.Equal(t, first.Data(), second.Data())
}

func TestCropImageLayers(t *testing.T) {
	img, err := NewImage(R16Unorm, 2, 2, 2)
	require.NoError(t, err)
	img.Write(Pixel{1}, 1, 1, 1)

	dst := bound(1, 1, 2, 2)
	out := cropImage(img, bound(0, 0, 2, 2), &dst)
	require.NotNil(t, out)
	assert.Equal(t, 2, out.Depth())
	assert.Equal(t, Pixel{}, out.Read(0, 0, 0))
	assert.Equal(t, Pixel{1}, out.Read(0, 0, 1))
}

func TestCropImageEmpty(t *testing.T) {
	img := ramp4x4(t)
	src := bound(0, 0, 4, 4)

	tests := []struct {
		name string
		dst  orb.Bound
	}{
		{"left", bound(-3, 0, -2, 4)},
		{"right", bound(5, 0, 6, 4)},
		{"above", bound(0, 5, 4, 6)},
		{"below", bound(0, -6, 4, -5)},
		{"touching max edge", bound(4, 0, 5, 4)},
		{"zero width", bound(2, 0, 2, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := tt.dst
			assert.Nil(t, cropImage(img, src, &dst))
		})
	}

	dst := bound(0, 0, 1, 1)
	assert.Nil(t, cropImage(nil, src, &dst))
}
