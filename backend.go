package geoimage

import (
	"errors"
)

// ErrFallback is returned by a ReprojectionBackend that cannot complete a
// request it accepted. The built-in resampler is used instead.
var ErrFallback = &Status{Code: ServiceUnavailable, Message: "reprojection backend declined request"}

// ReprojectRequest describes one reprojection. Width and Height are always
// resolved before a backend sees the request.
type ReprojectRequest struct {
	Source        *Image
	SourceExtent  GeoExtent
	DestExtent    GeoExtent
	Width, Height int
	Interpolation Interpolation
}

// ReprojectionBackend is an alternative resampler, typically faster but
// limited to some inputs.
type ReprojectionBackend interface {
	// Name identifies the backend in logs.
	Name() string
	// CanReproject reports whether the backend handles req.
	CanReproject(req *ReprojectRequest) bool
	// Reproject returns an image of req.Width by req.Height pixels covering
	// req.DestExtent. Returning ErrFallback hands the request back.
	Reproject(req *ReprojectRequest) (*Image, error)
}

// reprojectImage resamples img onto dest, using the configured backend
// when it accepts the request and the built-in resampler otherwise.
func reprojectImage(img *Image, src, dest GeoExtent, o options) (*Image, error) {
	width, height := outputSize(img, dest, o.width, o.height, o.sizePolicy)

	if b := o.backend; b != nil && useBackend(img, src, dest) {
		req := &ReprojectRequest{
			Source:        img,
			SourceExtent:  src,
			DestExtent:    dest,
			Width:         width,
			Height:        height,
			Interpolation: o.interpolation,
		}
		if b.CanReproject(req) {
			log := Logger().With("backend", b.Name())
			out, err := b.Reproject(req)
			switch {
			case err == nil && out.Valid():
				log.Debug("reprojected with backend", "width", width, "height", height)
				return out, nil
			case err == nil:
				log.Warn("backend returned no image, using built-in resampler")
			case errors.Is(err, ErrFallback):
				log.Debug("backend fell back to built-in resampler")
			default:
				log.Warn("backend failed, using built-in resampler", "error", err)
			}
		}
	}

	return manualReproject(img, src, dest, o.interpolation, width, height, o.sizePolicy)
}

// useBackend reports whether a request is eligible for a backend at all.
// Layered images and user-defined projections always use the built-in
// resampler.
func useBackend(img *Image, src, dest GeoExtent) bool {
	return img.Depth() == 1 &&
		!src.SRS().IsUserDefined() &&
		!dest.SRS().IsUserDefined()
}
