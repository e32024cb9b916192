package render

import (
	"errors"

	"github.com/chazu/cadvec/pkg/errs"
)

// IsMeshingFailure reports whether err (or anything it wraps) is a
// MeshingFailure — recoverable locally by falling back to a CAD
// kernel's native tessellation (spec §7).
func IsMeshingFailure(err error) bool {
	var e *errs.MeshingFailure
	return errors.As(err, &e)
}

// IsEdgeClassEmpty reports whether err is an EdgeClassEmpty — recovered
// silently by omitting the class from the emitted document (spec §7).
func IsEdgeClassEmpty(err error) bool {
	var e *errs.EdgeClassEmpty
	return errors.As(err, &e)
}
