package sparse

import "errors"

// ErrInvalidArgument is returned for mismatched parallel-slice lengths, a
// non-positive batch size, or a column value exceeding the hash modulus.
var ErrInvalidArgument = errors.New("sparse: invalid argument")

// ErrPreconditionViolated is returned when a COO fails Validate — it is
// not unique-and-sorted-by-composite-key on entry to an operation that
// requires that canonical form.
var ErrPreconditionViolated = errors.New("sparse: precondition violated")
