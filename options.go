package geoimage

// Interpolation selects how source pixels are sampled during reprojection.
type Interpolation uint8

const (
	// Bilinear blends the four source pixels around each sample.
	Bilinear Interpolation = iota
	// Nearest takes the closest source pixel.
	Nearest
)

func (i Interpolation) String() string {
	switch i {
	case Bilinear:
		return "bilinear"
	case Nearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// SizePolicy decides the output size of a reprojection when none is given.
type SizePolicy uint8

const (
	// SizeMinDimension makes the output square, with both sides equal to
	// the smaller dimension of the source.
	SizeMinDimension SizePolicy = iota
	// SizePreserveAspect keeps the larger source dimension and derives the
	// other from the aspect ratio of the destination extent.
	SizePreserveAspect
)

type options struct {
	exact         bool
	width, height int
	interpolation Interpolation
	toExtent      *GeoExtent
	backend       ReprojectionBackend
	sizePolicy    SizePolicy
}

// Option configures Crop, Reproject and Tile.
type Option func(*options)

func defaultOptions() options {
	return options{
		interpolation: Bilinear,
		sizePolicy:    SizeMinDimension,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Exact makes Crop resample to exactly the requested extent instead of
// snapping to source pixel boundaries.
func Exact(exact bool) Option {
	return func(o *options) {
		o.exact = exact
	}
}

// Size sets the output dimensions. A zero in either dimension means the
// size is chosen automatically.
func Size(width, height int) Option {
	return func(o *options) {
		o.width = max(width, 0)
		o.height = max(height, 0)
	}
}

// WithInterpolation selects the resampling filter. The default is Bilinear.
func WithInterpolation(i Interpolation) Option {
	return func(o *options) {
		o.interpolation = i
	}
}

// ToExtent sets the destination extent of Reproject. By default the source
// extent transformed into the target SRS is used.
func ToExtent(e GeoExtent) Option {
	return func(o *options) {
		o.toExtent = &e
	}
}

// WithBackend installs an accelerated reprojection backend. Requests the
// backend declines are handled by the built-in resampler.
func WithBackend(b ReprojectionBackend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithSizePolicy selects how the output size is chosen when Size is not given.
func WithSizePolicy(p SizePolicy) Option {
	return func(o *options) {
		o.sizePolicy = p
	}
}
