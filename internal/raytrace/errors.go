package raytrace

import "errors"

// ErrInvalidArgument is returned for mismatched parallel-slice lengths or
// a non-positive radius/round count.
var ErrInvalidArgument = errors.New("raytrace: invalid argument")
