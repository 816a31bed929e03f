package chronowheel

import "time"

// default wheel geometry: a 1-minute-range bottom wheel with
// 1-second slots, 3 levels deep.
const (
	defaultWheelSize    = 60
	defaultSlotInterval = time.Second
	defaultNumWheels    = 3
	defaultWorkerCount  = 4
)

// Options holds the resolved construction parameters for a Monitor.
type Options struct {
	WheelSize    int
	SlotInterval time.Duration
	NumWheels    int
	WorkerCount  int
	Logger       Logger
}

// NewOptions builds an Options value from its defaults plus any Option
// overrides, in the order given.
func NewOptions(opts ...Option) Options {
	options := Options{
		WheelSize:    defaultWheelSize,
		SlotInterval: defaultSlotInterval,
		NumWheels:    defaultNumWheels,
		WorkerCount:  defaultWorkerCount,
		Logger:       defaultLogger,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// Option configures a Monitor at construction time.
type Option func(*Options)

// WithWheelSize sets the number of slots per wheel. A non-positive value is
// accepted here and rejected by New with ErrInvalidGeometry.
func WithWheelSize(n int) Option {
	return func(o *Options) {
		o.WheelSize = n
	}
}

// WithSlotInterval sets the tick cadence. Values <= 0 are ignored.
func WithSlotInterval(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.SlotInterval = d
		}
	}
}

// WithNumWheels sets the number of hierarchical levels. A non-positive
// value is accepted here and rejected by New with ErrInvalidGeometry.
func WithNumWheels(n int) Option {
	return func(o *Options) {
		o.NumWheels = n
	}
}

// WithWorkerCount sets the size of the callback pool. Values <= 0 are
// ignored.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.WorkerCount = n
		}
	}
}

// WithLogger overrides the informational/error logging sink. A nil logger
// is ignored, leaving the slog-backed stderr default in place.
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
