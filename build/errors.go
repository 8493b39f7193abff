package build

import "errors"

// ErrInvalidArgument is returned for an invalid Config or a nil Stage.
var ErrInvalidArgument = errors.New("build: invalid argument")
