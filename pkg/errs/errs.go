// Package errs defines the render pipeline's error kinds (see spec §7).
// Each is a small struct with an Error() method, in the style of the
// lignin engine's EvalError — not a bare sentinel — so callers can carry
// a bit of structured context (which index, which camera) alongside the
// message, while still composing with errors.As.
package errs

import "fmt"

// InvalidGeometry is raised when a vertex matrix is empty or has the
// wrong dimensionality.
type InvalidGeometry struct {
	Reason string
}

func (e *InvalidGeometry) Error() string {
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

// InvalidCamera is raised when a camera's view direction is zero.
type InvalidCamera struct {
	Reason string
}

func (e *InvalidCamera) Error() string {
	return fmt.Sprintf("invalid camera: %s", e.Reason)
}

// InvalidIndex is raised by an out-of-range solid/facet lookup.
type InvalidIndex struct {
	Kind  string // "solid" or "facet"
	Index int
	Bound int
}

func (e *InvalidIndex) Error() string {
	return fmt.Sprintf("invalid %s index %d (have %d)", e.Kind, e.Index, e.Bound)
}

// ProjectionDegenerate is raised when a projector cannot be constructed
// because the view direction is zero or ill-conditioned.
type ProjectionDegenerate struct {
	Reason string
}

func (e *ProjectionDegenerate) Error() string {
	return fmt.Sprintf("projection degenerate: %s", e.Reason)
}

// MeshingFailure is raised by a mesher kernel failure. It is recovered
// locally by callers (fallback to native CAD-kernel tessellation) rather
// than aborting the render, but is still a distinct, inspectable type so
// the fallback path can be logged or tested.
type MeshingFailure struct {
	Reason string
}

func (e *MeshingFailure) Error() string {
	return fmt.Sprintf("meshing failed: %s", e.Reason)
}

// EdgeClassEmpty marks an HLR edge class whose compound came back null.
// It is recovered silently: the caller omits the class from the output
// list rather than treating this as a failure.
type EdgeClassEmpty struct {
	Class string
}

func (e *EdgeClassEmpty) Error() string {
	return fmt.Sprintf("edge class %s is empty", e.Class)
}

// IO wraps an SVG write failure; propagated to the caller unchanged.
type IO struct {
	Path string
	Err  error
}

func (e *IO) Error() string {
	return fmt.Sprintf("io error writing %s: %v", e.Path, e.Err)
}

func (e *IO) Unwrap() error {
	return e.Err
}
