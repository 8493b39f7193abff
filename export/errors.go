package export

import "errors"

// ErrInvalidArgument wraps a failure to build the matrix.Dense or
// core.Graph rendering. A COO that fails Validate is reported with the
// error Validate itself returns.
var ErrInvalidArgument = errors.New("export: invalid argument")
