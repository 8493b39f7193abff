package cells

import "errors"

// ErrInvalidArgument is returned for non-positive radii or an out-of-range
// neuron fraction.
var ErrInvalidArgument = errors.New("cells: invalid argument")
