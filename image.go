package geoimage

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Pixel holds up to four channel values. Normalized formats read as [0,1];
// float formats read their raw value.
type Pixel [4]float32

// Image is a typed 2D or 3D pixel buffer.
//
// Data is stored layer by layer, row by row, with interleaved channels:
// offset = layer*Height*RowSizeInBytes + y*RowSizeInBytes + x*BytesPerPixel.
// Row 0 is the row at the minimum Y of the image's extent.
type Image struct {
	format PixelFormat
	width  int
	height int
	depth  int
	data   []byte
}

// NewImage allocates a zero-initialized image. depth defaults to 1.
func NewImage(format PixelFormat, width, height int, depth ...int) (*Image, error) {
	d := 1
	if len(depth) > 0 {
		d = depth[0]
	}
	if !format.Valid() {
		return nil, fmt.Errorf("unsupported pixel format %d", format)
	}
	if width <= 0 || height <= 0 || d <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%dx%d", width, height, d)
	}

	return &Image{
		format: format,
		width:  width,
		height: height,
		depth:  d,
		data:   make([]byte, width*height*d*format.BytesPerPixel()),
	}, nil
}

// NewImageFromData creates an image from raw interleaved samples stored in
// the given byte order. The samples are copied, so data may be reused.
func NewImageFromData(format PixelFormat, width, height, depth int, data []byte, byteOrder binary.ByteOrder) (*Image, error) {
	img, err := NewImage(format, width, height, depth)
	if err != nil {
		return nil, err
	}
	if len(data) < len(img.data) {
		return nil, fmt.Errorf("insufficient data: expected %d bytes, got %d", len(img.data), len(data))
	}
	if byteOrder == nil {
		byteOrder = binary.LittleEndian
	}

	size := format.BytesPerSample()
	for off := 0; off < len(img.data); off += size {
		src := data[off : off+size]
		dst := img.data[off : off+size]
		switch size {
		case 1:
			dst[0] = src[0]
		case 2:
			binary.LittleEndian.PutUint16(dst, byteOrder.Uint16(src))
		case 4:
			binary.LittleEndian.PutUint32(dst, byteOrder.Uint32(src))
		case 8:
			binary.LittleEndian.PutUint64(dst, byteOrder.Uint64(src))
		}
	}
	return img, nil
}

// Valid reports whether the image has storage.
func (img *Image) Valid() bool {
	return img != nil && img.data != nil && img.format.Valid()
}

// Width returns the number of columns.
func (img *Image) Width() int { return img.width }

// Height returns the number of rows.
func (img *Image) Height() int { return img.height }

// Depth returns the number of layers.
func (img *Image) Depth() int { return img.depth }

// Format returns the pixel format.
func (img *Image) Format() PixelFormat { return img.format }

// Data returns the raw buffer.
func (img *Image) Data() []byte { return img.data }

// RowSizeInBytes returns the stride of one row.
func (img *Image) RowSizeInBytes() int {
	return img.width * img.format.BytesPerPixel()
}

// SizeInBytes returns the size of the whole buffer.
func (img *Image) SizeInBytes() int {
	return len(img.data)
}

func (img *Image) inBounds(x, y, layer int) bool {
	return x >= 0 && x < img.width && y >= 0 && y < img.height && layer >= 0 && layer < img.depth
}

// offset returns the byte offset of a pixel. No bounds checking.
func (img *Image) offset(x, y, layer int) int {
	row := img.RowSizeInBytes()
	return layer*img.height*row + y*row + x*img.format.BytesPerPixel()
}

// DataAt returns the buffer starting at the given pixel, or nil when the
// pixel is out of range.
func (img *Image) DataAt(x, y, layer int) []byte {
	if !img.inBounds(x, y, layer) {
		return nil
	}
	return img.data[img.offset(x, y, layer):]
}

// Read returns the pixel at x, y in the given layer. Out of range reads
// return the zero pixel.
func (img *Image) Read(x, y, layer int) Pixel {
	var p Pixel
	img.ReadInto(&p, x, y, layer)
	return p
}

// ReadInto reads the pixel at x, y into p, avoiding a copy in tight loops.
func (img *Image) ReadInto(p *Pixel, x, y, layer int) {
	if !img.inBounds(x, y, layer) {
		*p = Pixel{}
		return
	}
	l := &layouts[img.format]
	l.read(p, img.data[img.offset(x, y, layer):])
}

// Write stores p at x, y in the given layer. Out of range writes are ignored.
func (img *Image) Write(p Pixel, x, y, layer int) {
	if !img.inBounds(x, y, layer) {
		return
	}
	l := &layouts[img.format]
	l.write(p, img.data[img.offset(x, y, layer):])
}

// ReadBilinear samples the image at normalized coordinates u, v in [0,1]
// (clamped), blending the four nearest pixels.
func (img *Image) ReadBilinear(u, v float64, layer int) Pixel {
	u = math.Max(0, math.Min(1, u))
	v = math.Max(0, math.Min(1, v))

	sizeS := float32(img.width - 1)
	sizeT := float32(img.height - 1)

	s := float32(u) * sizeS
	s0 := math32.Max(math32.Floor(s), 0)
	s1 := math32.Min(s0+1, sizeS)
	var smix float32
	if s0 < s1 {
		smix = (s - s0) / (s1 - s0)
	}

	t := float32(v) * sizeT
	t0 := math32.Max(math32.Floor(t), 0)
	t1 := math32.Min(t0+1, sizeT)
	var tmix float32
	if t0 < t1 {
		tmix = (t - t0) / (t1 - t0)
	}

	var ll, lr, ul, ur Pixel
	img.ReadInto(&ll, int(s0), int(t0), layer)
	img.ReadInto(&lr, int(s1), int(t0), layer)
	img.ReadInto(&ul, int(s0), int(t1), layer)
	img.ReadInto(&ur, int(s1), int(t1), layer)

	var out Pixel
	for i := range out {
		bottom := ll[i] + (lr[i]-ll[i])*smix
		top := ul[i] + (ur[i]-ul[i])*smix
		out[i] = bottom + (top-bottom)*tmix
	}
	return out
}

// Clone returns a deep copy of the image.
func (img *Image) Clone() *Image {
	if !img.Valid() {
		return nil
	}
	c := *img
	c.data = make([]byte, len(img.data))
	copy(c.data, img.data)
	return &c
}

// FlipVerticalInPlace reverses the row order of every layer.
func (img *Image) FlipVerticalInPlace() {
	row := img.RowSizeInBytes()
	layerBytes := img.height * row
	tmp := make([]byte, row)
	for d := 0; d < img.depth; d++ {
		base := d * layerBytes
		for y := 0; y < img.height/2; y++ {
			a := img.data[base+y*row : base+(y+1)*row]
			anti := img.height - 1 - y
			b := img.data[base+anti*row : base+(anti+1)*row]
			copy(tmp, a)
			copy(a, b)
			copy(b, tmp)
		}
	}
}

// Fill writes p to every pixel of every layer.
func (img *Image) Fill(p Pixel) {
	if !img.Valid() {
		return
	}
	bpp := img.format.BytesPerPixel()
	// Encode once, then replicate the bytes.
	img.Write(p, 0, 0, 0)
	first := img.data[:bpp]
	for off := bpp; off < len(img.data); off += bpp {
		copy(img.data[off:off+bpp], first)
	}
}

// CopyAsSubImage copies img into dst with its lower-left pixel at
// (dstCol, dstRow). It fails when img does not fit or the depths differ.
func (img *Image) CopyAsSubImage(dst *Image, dstCol, dstRow int) bool {
	if !img.Valid() || !dst.Valid() ||
		dstCol < 0 || dstRow < 0 ||
		dstCol+img.width > dst.width ||
		dstRow+img.height > dst.height ||
		img.depth != dst.depth {
		return false
	}

	var p Pixel
	for r := 0; r < img.depth; r++ {
		for t := 0; t < img.height; t++ {
			for s := 0; s < img.width; s++ {
				img.ReadInto(&p, s, t, r)
				dst.Write(p, dstCol+s, dstRow+t, r)
			}
		}
	}
	return true
}
