package graphtopo

import "errors"

// ErrInvalidArgument is returned for a negative depth or empty required
// id set.
var ErrInvalidArgument = errors.New("graphtopo: invalid argument")
