package chronowheel

import "errors"

// Error taxonomy returned by Add. Remove never returns an error; an
// unknown task identifier simply yields false.
var (
	// ErrNotRunning is returned when Add is called before Start or after Stop.
	ErrNotRunning = errors.New("chronowheel: monitor not running")

	// ErrInvalidTimeout is returned when timeout is not positive.
	ErrInvalidTimeout = errors.New("chronowheel: timeout must be positive")

	// ErrRangeExceeded is returned when timeout exceeds slotInterval * wheelSize^numWheels.
	ErrRangeExceeded = errors.New("chronowheel: timeout exceeds maximum range")

	// ErrDuplicateTask is returned when taskID is already monitored.
	ErrDuplicateTask = errors.New("chronowheel: task already monitored")

	// ErrPlacementFailed is returned only on internal invariant breakage; the
	// registry entry is rolled back before this error reaches the caller.
	ErrPlacementFailed = errors.New("chronowheel: failed to place task in wheel")

	// ErrInvalidGeometry is returned by New when WheelSize or NumWheels is 0.
	ErrInvalidGeometry = errors.New("chronowheel: wheel size and number of wheels must be greater than zero")
)
