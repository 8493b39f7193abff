package model

import "errors"

// ErrInvalidArgument is returned when a ModelData field is outside its
// legal domain (non-positive size or radius, output larger than neuron
// count, etc). Precondition violations of this kind are programmer error
// and abort construction deterministically.
var ErrInvalidArgument = errors.New("model: invalid argument")
