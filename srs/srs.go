// Package srs provides spatial reference systems and the coordinate
// operations between them.
//
// An SRS is a small value type. Geographic (longitude/latitude on WGS84),
// spherical mercator and plate carrée are built in; any other "epsg:N"
// definition is resolved through the github.com/wroge/wgs84 EPSG repository,
// and user-defined transverse mercator systems can be built with
// NewTransverseMercator.
package srs

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/wroge/wgs84"
)

// MaxMercatorLatitude is the latitude at which spherical mercator is clamped.
const MaxMercatorLatitude = 85.0511287798066

type kind uint8

const (
	kindInvalid kind = iota
	kindGeographic
	kindSphericalMercator
	kindPlateCarree
	kindEPSG
	kindUserDefined
)

// transformFunc has the same shape as the functions produced by wgs84.Transform.
type transformFunc func(a, b, c float64) (a2, b2, c2 float64)

// SRS is a spatial reference system. The zero value is the empty, invalid SRS.
type SRS struct {
	kind     kind
	code     int
	name     string
	def      string
	key      string
	vertical string

	// toGeo and fromGeo convert between this SRS and WGS84 longitude/latitude degrees.
	toGeo   transformFunc
	fromGeo transformFunc

	// crs is set for systems resolved through wgs84; its area of use limits
	// the longitude/latitude a transform accepts.
	crs wgs84.CoordinateReferenceSystem
}

var (
	// WGS84 is geographic longitude/latitude on the WGS84 ellipsoid.
	WGS84 = newGeographic("wgs84")

	// SphericalMercator is the pseudo-mercator projection used by most web maps (EPSG:3857).
	SphericalMercator = newSphericalMercator("spherical-mercator")

	// PlateCarree is the equidistant cylindrical projection in meters.
	PlateCarree = newPlateCarree("plate-carree")

	// Empty is the invalid SRS.
	Empty = SRS{}
)

// New creates an SRS from a horizontal definition and an optional vertical
// datum name. The horizontal definition may be a well-known alias ("wgs84",
// "spherical-mercator", "plate-carree") or an EPSG code ("epsg:4326").
// An unrecognized definition yields an invalid SRS.
func New(horizontal string, vertical ...string) SRS {
	s := parse(horizontal)
	if !s.Valid() {
		return Empty
	}
	if len(vertical) > 0 {
		s.vertical = strings.ToLower(strings.TrimSpace(vertical[0]))
	}
	return s
}

func parse(def string) SRS {
	d := strings.ToLower(strings.TrimSpace(def))
	switch d {
	case "wgs84", "geographic", "latlong", "epsg:4326", "epsg:4979":
		return newGeographic(def)
	case "spherical-mercator", "epsg:3857", "epsg:900913", "epsg:102100", "epsg:102113":
		return newSphericalMercator(def)
	case "plate-carree", "plate-carre", "eqc", "epsg:32663":
		return newPlateCarree(def)
	}

	if code, ok := strings.CutPrefix(d, "epsg:"); ok {
		n, err := strconv.Atoi(code)
		if err != nil || n <= 0 {
			return Empty
		}
		return newEPSG(def, n)
	}
	return Empty
}

func newGeographic(def string) SRS {
	identity := func(a, b, c float64) (float64, float64, float64) { return a, b, c }
	return SRS{
		kind:    kindGeographic,
		code:    4326,
		name:    "WGS84",
		def:     def,
		key:     "geographic",
		toGeo:   identity,
		fromGeo: identity,
	}
}

func newSphericalMercator(def string) SRS {
	return SRS{
		kind: kindSphericalMercator,
		code: 3857,
		name: "Spherical Mercator",
		def:  def,
		key:  "spherical-mercator",
		toGeo: func(a, b, c float64) (float64, float64, float64) {
			p := project.Point(orb.Point{a, b}, project.Mercator.ToWGS84)
			return p[0], p[1], c
		},
		fromGeo: func(a, b, c float64) (float64, float64, float64) {
			p := project.Point(orb.Point{a, b}, project.WGS84.ToMercator)
			return p[0], p[1], c
		},
	}
}

func newPlateCarree(def string) SRS {
	const scale = orb.EarthRadius * math.Pi / 180.0
	return SRS{
		kind: kindPlateCarree,
		code: 32663,
		name: "Plate Carree",
		def:  def,
		key:  "plate-carree",
		toGeo: func(a, b, c float64) (float64, float64, float64) {
			return a / scale, b / scale, c
		},
		fromGeo: func(a, b, c float64) (float64, float64, float64) {
			return a * scale, b * scale, c
		},
	}
}

func newEPSG(def string, code int) SRS {
	var crs wgs84.CoordinateReferenceSystem = wgs84.EPSG().Code(code)
	if crs == nil {
		return Empty
	}
	return SRS{
		kind:    kindEPSG,
		code:    code,
		name:    fmt.Sprintf("EPSG:%d", code),
		def:     def,
		key:     fmt.Sprintf("epsg:%d", code),
		toGeo:   transformFunc(wgs84.Transform(crs, wgs84.LonLat())),
		fromGeo: transformFunc(wgs84.Transform(wgs84.LonLat(), crs)),
		crs:     crs,
	}
}

// Valid reports whether the SRS is usable.
func (s SRS) Valid() bool {
	return s.kind != kindInvalid && s.toGeo != nil && s.fromGeo != nil
}

// Name returns a human readable name.
func (s SRS) Name() string {
	if !s.Valid() {
		return "invalid"
	}
	return s.name
}

// Definition returns the string the SRS was created from.
func (s SRS) Definition() string {
	return s.def
}

// Vertical returns the vertical datum name, if any.
func (s SRS) Vertical() string {
	return s.vertical
}

// EPSG returns the EPSG code, or 0 when there is none.
func (s SRS) EPSG() int {
	if s.kind == kindUserDefined {
		return 0
	}
	return s.code
}

// IsGeographic reports whether coordinates are longitude/latitude degrees.
func (s SRS) IsGeographic() bool {
	return s.kind == kindGeographic
}

// IsProjected reports whether coordinates are planar.
func (s SRS) IsProjected() bool {
	return s.Valid() && s.kind != kindGeographic
}

// IsSphericalMercator reports whether this is the web mercator projection.
func (s SRS) IsSphericalMercator() bool {
	return s.kind == kindSphericalMercator
}

// IsUserDefined reports whether the SRS was built from custom parameters
// rather than a well-known definition.
func (s SRS) IsUserDefined() bool {
	return s.kind == kindUserDefined
}

// WithVertical returns a copy of s that uses the named vertical datum.
func (s SRS) WithVertical(vertical string) SRS {
	s.vertical = strings.ToLower(strings.TrimSpace(vertical))
	return s
}

// IsHorizEquivalentTo reports whether s and rhs map horizontal coordinates
// identically, ignoring vertical datums.
func (s SRS) IsHorizEquivalentTo(rhs SRS) bool {
	if !s.Valid() || !rhs.Valid() {
		return false
	}
	return s.key == rhs.key
}

// IsEquivalentTo reports whether s and rhs are the same system, including
// the vertical datum.
func (s SRS) IsEquivalentTo(rhs SRS) bool {
	return s.IsHorizEquivalentTo(rhs) && s.vertical == rhs.vertical
}

// GeographicBounds returns the longitude/latitude area in which the SRS is
// usable. Only spherical mercator is limited.
func (s SRS) GeographicBounds() orb.Bound {
	if s.kind == kindSphericalMercator {
		return orb.Bound{
			Min: orb.Point{-180, -MaxMercatorLatitude},
			Max: orb.Point{180, MaxMercatorLatitude},
		}
	}
	return orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
}

// Contains reports whether the longitude/latitude point lies in the area
// of use of s. Systems without a declared area contain every point.
func (s SRS) Contains(lon, lat float64) bool {
	if s.crs == nil {
		return true
	}
	return s.crs.Contains(lon, lat)
}

func (s SRS) String() string {
	if s.vertical != "" {
		return s.Name() + "+" + s.vertical
	}
	return s.Name()
}
