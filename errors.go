package probrush

import "errors"

// Validation errors shared by all packages of the engine. They are returned
// wrapped with context; use errors.Is to test for them.
var (
	// ErrInvalidDomain indicates non-increasing control point positions or an
	// empty interval.
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrInvalidCertainty indicates a certainty outside [0,1].
	ErrInvalidCertainty = errors.New("certainty must lie within [0,1]")
	// ErrUnknownAxis indicates a reference to an axis that does not exist.
	ErrUnknownAxis = errors.New("unknown axis")
	// ErrUnknownLabel indicates a reference to a label that does not exist.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrUnknownBrush indicates a reference to a brush that does not exist.
	ErrUnknownBrush = errors.New("unknown brush")
	// ErrDegenerateBrush indicates a brush with fewer than 2 control points.
	ErrDegenerateBrush = errors.New("brush needs at least 2 control points")
	// ErrOutOfDomain indicates a query position outside of an axis range.
	ErrOutOfDomain = errors.New("position outside of axis range")
	// ErrIndexOutOfRange indicates a control point or segment index which
	// does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrMainSegmentFixed indicates an attempt to re-assign the interpolation
	// of a brush's main segment.
	ErrMainSegmentFixed = errors.New("main segment is always linear")
	// ErrInvalidSampleCount indicates a resampling request with n < 2.
	ErrInvalidSampleCount = errors.New("need at least 2 samples")
)

// ErrDuplicateID indicates an attempt to add an axis or label with an id
// already in use.
var ErrDuplicateID = errors.New("id already in use")
