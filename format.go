package geoimage

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"
)

// PixelFormat identifies the sample layout of an Image.
type PixelFormat uint8

const (
	R8Unorm PixelFormat = iota
	R8G8Unorm
	R8G8B8Unorm
	R8G8B8A8Unorm
	R16Unorm
	R32Sfloat
	R64Sfloat

	numPixelFormats
)

type encoding uint8

const (
	unorm encoding = iota
	sfloat
)

// layout describes how a PixelFormat is stored.
type layout struct {
	name       string
	components int
	sampleSize int
	enc        encoding
}

var layouts = [numPixelFormats]layout{
	R8Unorm:       {"R8_UNORM", 1, 1, unorm},
	R8G8Unorm:     {"R8G8_UNORM", 2, 1, unorm},
	R8G8B8Unorm:   {"R8G8B8_UNORM", 3, 1, unorm},
	R8G8B8A8Unorm: {"R8G8B8A8_UNORM", 4, 1, unorm},
	R16Unorm:      {"R16_UNORM", 1, 2, unorm},
	R32Sfloat:     {"R32_SFLOAT", 1, 4, sfloat},
	R64Sfloat:     {"R64_SFLOAT", 1, 8, sfloat},
}

const (
	norm8  = 255.0
	norm16 = 65535.0
)

// Valid reports whether f is a known format.
func (f PixelFormat) Valid() bool {
	return f < numPixelFormats
}

// NumComponents returns the number of channels per pixel.
func (f PixelFormat) NumComponents() int {
	if !f.Valid() {
		return 0
	}
	return layouts[f].components
}

// BytesPerSample returns the size of one channel.
func (f PixelFormat) BytesPerSample() int {
	if !f.Valid() {
		return 0
	}
	return layouts[f].sampleSize
}

// BytesPerPixel returns the size of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	if !f.Valid() {
		return 0
	}
	return layouts[f].components * layouts[f].sampleSize
}

// IsNormalized reports whether samples are unsigned integers read as [0,1].
func (f PixelFormat) IsNormalized() bool {
	return f.Valid() && layouts[f].enc == unorm
}

func (f PixelFormat) String() string {
	if !f.Valid() {
		return "UNKNOWN"
	}
	return layouts[f].name
}

// read decodes the pixel stored at b. Channels beyond the format's
// component count are set to zero.
func (l *layout) read(p *Pixel, b []byte) {
	*p = Pixel{}
	for i := 0; i < l.components; i++ {
		s := b[i*l.sampleSize:]
		switch {
		case l.enc == unorm && l.sampleSize == 1:
			p[i] = float32(s[0]) / norm8
		case l.enc == unorm && l.sampleSize == 2:
			p[i] = float32(binary.LittleEndian.Uint16(s)) / norm16
		case l.sampleSize == 4:
			p[i] = math.Float32frombits(binary.LittleEndian.Uint32(s))
		case l.sampleSize == 8:
			p[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(s)))
		}
	}
}

// write encodes p into b. Normalized formats are clamped and rounded to
// the nearest representable value.
func (l *layout) write(p Pixel, b []byte) {
	for i := 0; i < l.components; i++ {
		s := b[i*l.sampleSize:]
		switch {
		case l.enc == unorm && l.sampleSize == 1:
			s[0] = uint8(math32.Round(clamp01(p[i]) * norm8))
		case l.enc == unorm && l.sampleSize == 2:
			binary.LittleEndian.PutUint16(s, uint16(math32.Round(clamp01(p[i])*norm16)))
		case l.sampleSize == 4:
			binary.LittleEndian.PutUint32(s, math.Float32bits(p[i]))
		case l.sampleSize == 8:
			binary.LittleEndian.PutUint64(s, math.Float64bits(float64(p[i])))
		}
	}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
