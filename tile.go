package geoimage

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/project"
	"github.com/tingold/geoimage/srs"
)

// DefaultTileSize is the width and height of a tile when none is given.
const DefaultTileSize = 256

// TileExtent returns the spherical mercator extent of an XYZ map tile.
func TileExtent(t maptile.Tile) GeoExtent {
	b := t.Bound() // WGS84
	return NewGeoExtent(srs.SphericalMercator,
		mercator(b.Min)[0], mercator(b.Min)[1],
		mercator(b.Max)[0], mercator(b.Max)[1])
}

func mercator(p orb.Point) orb.Point {
	return project.Point(p, project.WGS84.ToMercator)
}

// Tile reprojects g onto the XYZ map tile t as a size by size image in
// spherical mercator. If size is not provided or is <= 0, it defaults to
// DefaultTileSize. Areas of the tile outside g are left zero.
func (g GeoImage) Tile(t maptile.Tile, size int, opts ...Option) (GeoImage, error) {
	if size <= 0 {
		size = DefaultTileSize
	}
	opts = append(opts[:len(opts):len(opts)], ToExtent(TileExtent(t)), Size(size, size))
	return g.Reproject(srs.SphericalMercator, opts...)
}
