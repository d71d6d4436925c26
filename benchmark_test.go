package geoimage

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/tingold/geoimage/srs"
)

// Benchmark data generation helpers

// generateTestImage creates an image filled with random bytes
func generateTestImage(b *testing.B, format PixelFormat, width, height int) *Image {
	b.Helper()
	img, err := NewImage(format, width, height)
	if err != nil {
		b.Fatal(err)
	}
	for i := range img.Data() {
		img.Data()[i] = byte(rand.Intn(256))
	}
	return img
}

// =============================================================================
// Benchmarks for pixel access patterns
// =============================================================================

func BenchmarkPixelAccess_Sequential(b *testing.B) {
	width, height := 256, 256
	img := generateTestImage(b, R8G8B8Unorm, width, height)

	b.ResetTimer()
	b.ReportAllocs()

	var p Pixel
	var sum float32
	for i := 0; i < b.N; i++ {
		sum = 0
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.ReadInto(&p, x, y, 0)
				sum += p[0]
			}
		}
	}
	_ = sum
}

func BenchmarkPixelAccess_Random(b *testing.B) {
	width, height := 256, 256
	img := generateTestImage(b, R8G8B8Unorm, width, height)

	// Pre-generate random coordinates
	coords := make([][2]int, 10000)
	for i := range coords {
		coords[i] = [2]int{rand.Intn(width), rand.Intn(height)}
	}

	b.ResetTimer()
	b.ReportAllocs()

	var p Pixel
	var sum float32
	for i := 0; i < b.N; i++ {
		sum = 0
		for _, c := range coords {
			img.ReadInto(&p, c[0], c[1], 0)
			sum += p[0]
		}
	}
	_ = sum
}

func BenchmarkReadBilinear(b *testing.B) {
	img := generateTestImage(b, R8G8B8A8Unorm, 256, 256)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = img.ReadBilinear(0.37, 0.61, 0)
	}
}

// =============================================================================
// Benchmarks for grid buffers
// =============================================================================

func BenchmarkGridBufferAlloc(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		buf := make([]orb.Point, 256*256)
		_ = buf
	}
}

func BenchmarkGridBufferPooled(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		buf := pointPool.get(256 * 256)
		pointPool.put(buf)
	}
}

func BenchmarkTransformGrid_Identity(b *testing.B) {
	benchmarkTransformGrid(b, srs.WGS84, srs.WGS84)
}

func BenchmarkTransformGrid_Mercator(b *testing.B) {
	benchmarkTransformGrid(b, srs.SphericalMercator, srs.WGS84)
}

func benchmarkTransformGrid(b *testing.B, from, to srs.SRS) {
	const n = 256
	xs := make([]float64, n*n)
	ys := make([]float64, n*n)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if !transformGrid(from, to, 0, 0, 1e6, 1e6, n, n, xs, ys) {
			b.Fatal("transform failed")
		}
	}
}

// =============================================================================
// Benchmarks for reprojection
// =============================================================================

func BenchmarkReproject_256to128(b *testing.B) {
	benchmarkReproject(b, 256, 128, Bilinear)
}

func BenchmarkReproject_512to256(b *testing.B) {
	benchmarkReproject(b, 512, 256, Bilinear)
}

func BenchmarkReproject_512to256_Nearest(b *testing.B) {
	benchmarkReproject(b, 512, 256, Nearest)
}

func benchmarkReproject(b *testing.B, srcSize, dstSize int, interp Interpolation) {
	img := generateTestImage(b, R8G8B8Unorm, srcSize, srcSize)
	src := NewGeoExtent(srs.WGS84, -10, -10, 10, 10)
	dst := src.Transform(srs.SphericalMercator)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = manualReproject(img, src, dst, interp, dstSize, dstSize, SizeMinDimension)
	}
}

func BenchmarkTile(b *testing.B) {
	img := generateTestImage(b, R8G8B8A8Unorm, 512, 512)
	g := New(img, NewGeoExtent(srs.WGS84, -180, -85, 180, 85))
	tile := maptile.New(2, 1, 2)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = g.Tile(tile, 256)
	}
}

// =============================================================================
// Benchmarks for cropping
// =============================================================================

func BenchmarkCrop_1024(b *testing.B) {
	img := generateTestImage(b, R8G8B8A8Unorm, 1024, 1024)
	src := orb.Bound{Max: orb.Point{1024, 1024}}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		dst := orb.Bound{Min: orb.Point{100.5, 200.5}, Max: orb.Point{612.2, 712.7}}
		_ = cropImage(img, src, &dst)
	}
}
