package srs

import (
	"fmt"

	"github.com/wroge/wgs84"
)

// Ellipsoid parameters of the GRS 1980 spheroid.
const (
	GRS80SemiMajorAxis     = 6378137.0
	GRS80InverseFlattening = 298.257222101
)

type spheroid struct {
	a, fi float64
}

func (s spheroid) A() float64 {
	return s.a
}

func (s spheroid) Fi() float64 {
	return s.fi
}

// TransverseMercatorParams describes a custom transverse mercator system.
// Zero SemiMajorAxis/InverseFlattening select GRS 1980.
type TransverseMercatorParams struct {
	SemiMajorAxis     float64
	InverseFlattening float64
	CentralMeridian   float64
	LatitudeOfOrigin  float64
	ScaleFactor       float64
	FalseEasting      float64
	FalseNorthing     float64

	// Area optionally limits the longitude/latitude area the projection
	// accepts. Transforms of points outside it fail.
	Area func(lon, lat float64) bool
}

// NewTransverseMercator builds a user-defined transverse mercator SRS.
//
// EPSG:5186 (Korea 2000 / Central Belt 2010) for example:
//
//	srs.NewTransverseMercator("korea-central", srs.TransverseMercatorParams{
//	    CentralMeridian: 127, LatitudeOfOrigin: 38, ScaleFactor: 1,
//	    FalseEasting: 200000, FalseNorthing: 600000,
//	})
func NewTransverseMercator(name string, p TransverseMercatorParams) SRS {
	if p.SemiMajorAxis == 0 {
		p.SemiMajorAxis = GRS80SemiMajorAxis
	}
	if p.InverseFlattening == 0 {
		p.InverseFlattening = GRS80InverseFlattening
	}
	if p.ScaleFactor == 0 {
		p.ScaleFactor = 1
	}
	area := p.Area
	if area == nil {
		area = func(lon, lat float64) bool { return true }
	}

	datum := wgs84.Datum{
		Spheroid: spheroid{a: p.SemiMajorAxis, fi: p.InverseFlattening},
		Area:     wgs84.AreaFunc(area),
	}
	var proj wgs84.CoordinateReferenceSystem = datum.TransverseMercator(p.CentralMeridian, p.LatitudeOfOrigin, p.ScaleFactor, p.FalseEasting, p.FalseNorthing)

	return SRS{
		kind: kindUserDefined,
		name: name,
		def:  name,
		key: fmt.Sprintf("user:tmerc:%s:%g:%g:%g:%g:%g:%g:%g", name,
			p.SemiMajorAxis, p.InverseFlattening,
			p.CentralMeridian, p.LatitudeOfOrigin, p.ScaleFactor,
			p.FalseEasting, p.FalseNorthing),
		toGeo:   transformFunc(wgs84.Transform(proj, wgs84.LonLat())),
		fromGeo: transformFunc(wgs84.Transform(wgs84.LonLat(), proj)),
		crs:     proj,
	}
}
