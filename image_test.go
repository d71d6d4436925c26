package geoimage

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFloatImage builds an R32 image where pixel (x, y) holds fn(x, y).
func newFloatImage(t testing.TB, w, h int, fn func(x, y int) float32) *Image {
	t.Helper()
	img, err := NewImage(R32Sfloat, w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Write(Pixel{fn(x, y)}, x, y, 0)
		}
	}
	return img
}

func TestNewImage(t *testing.T) {
	img, err := NewImage(R8G8B8A8Unorm, 3, 2)
	require.NoError(t, err)
	assert.True(t, img.Valid())
	assert.Equal(t, 1, img.Depth())
	assert.Equal(t, 12, img.RowSizeInBytes())
	assert.Equal(t, 24, img.SizeInBytes())
	for _, b := range img.Data() {
		require.Zero(t, b)
	}

	_, err = NewImage(R8Unorm, 0, 2)
	assert.Error(t, err)
	_, err = NewImage(R8Unorm, 2, 2, 0)
	assert.Error(t, err)
	_, err = NewImage(PixelFormat(99), 2, 2)
	assert.Error(t, err)

	var nilImg *Image
	assert.False(t, nilImg.Valid())
}

func TestImageReadWrite(t *testing.T) {
	img, err := NewImage(R8G8B8A8Unorm, 2, 2, 2)
	require.NoError(t, err)

	p := Pixel{1, 0, 0, 1}
	img.Write(p, 1, 1, 1)
	assert.Equal(t, p, img.Read(1, 1, 1))
	assert.Equal(t, Pixel{}, img.Read(1, 1, 0), "layers are independent")

	// layer stride is height*row
	assert.Len(t, img.DataAt(1, 1, 1), 4)
	assert.Equal(t, byte(255), img.DataAt(1, 1, 1)[0])

	// out of range
	assert.Equal(t, Pixel{}, img.Read(2, 0, 0))
	assert.Nil(t, img.DataAt(0, -1, 0))
	img.Write(p, -1, 0, 0)
	img.Write(p, 0, 0, 2)
	assert.Equal(t, Pixel{}, img.Read(0, 0, 0))
}

func TestNewImageFromData(t *testing.T) {
	data := []byte{0x12, 0x34, 0xab, 0xcd}
	img, err := NewImageFromData(R16Unorm, 2, 1, 1, data, binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x34, 0x12, 0xcd, 0xab}, img.Data())

	data[0] = 0
	assert.Equal(t, byte(0x34), img.Data()[0], "data is copied")

	_, err = NewImageFromData(R16Unorm, 2, 2, 1, data, binary.BigEndian)
	assert.Error(t, err)
}

func TestReadBilinear(t *testing.T) {
	img := newFloatImage(t, 2, 2, func(x, y int) float32 { return float32(x + 2*y) })

	tests := []struct {
		name string
		u, v float64
		want float32
	}{
		{"lower left", 0, 0, 0},
		{"upper right", 1, 1, 3},
		{"center", 0.5, 0.5, 1.5},
		{"bottom edge", 0.5, 0, 0.5},
		{"clamped", 2, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, img.ReadBilinear(tt.u, tt.v, 0)[0], 1e-6)
		})
	}

	single := newFloatImage(t, 1, 1, func(x, y int) float32 { return 7 })
	assert.Equal(t, float32(7), single.ReadBilinear(0.3, 0.9, 0)[0])
}

func TestCloneFlipFill(t *testing.T) {
	img, err := NewImage(R8Unorm, 1, 3, 2)
	require.NoError(t, err)
	copy(img.Data(), []byte{1, 2, 3, 4, 5, 6})

	c := img.Clone()
	img.FlipVerticalInPlace()
	assert.Equal(t, []byte{3, 2, 1, 6, 5, 4}, img.Data())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, c.Data(), "clone is independent")

	c.Fill(Pixel{1})
	for _, b := range c.Data() {
		require.Equal(t, byte(255), b)
	}
}

func TestCopyAsSubImage(t *testing.T) {
	src := newFloatImage(t, 2, 2, func(x, y int) float32 { return float32(1 + x + 2*y) })
	dst, err := NewImage(R32Sfloat, 4, 4)
	require.NoError(t, err)

	require.True(t, src.CopyAsSubImage(dst, 1, 2))
	assert.Equal(t, float32(1), dst.Read(1, 2, 0)[0])
	assert.Equal(t, float32(4), dst.Read(2, 3, 0)[0])
	assert.Equal(t, float32(0), dst.Read(0, 0, 0)[0])

	assert.False(t, src.CopyAsSubImage(dst, 3, 0), "does not fit")
}
