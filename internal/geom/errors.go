package geom

import "errors"

// ErrInvalidArgument is returned for negative radii, zero counts where a
// positive count is required, or mismatched slice lengths.
var ErrInvalidArgument = errors.New("geom: invalid argument")

// ErrCoincidentEndpoints is returned by LineSphereIntersect when a line
// segment's start and end coincide, which would otherwise divide by zero
// while projecting onto the segment's direction. Spec.md §7 makes
// avoiding this the caller's responsibility via the con_rad filter; this
// error exists so a violation aborts deterministically instead of
// producing NaN.
var ErrCoincidentEndpoints = errors.New("geom: line segment start and end coincide")
