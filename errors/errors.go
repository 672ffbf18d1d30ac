package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which bridge operation the error occurred in
type Phase string

const (
	PhaseQuery   Phase = "query"   // parameter/geometry query
	PhaseForward Phase = "forward" // forward marshal
	PhaseInverse Phase = "inverse" // inverse marshal
	PhaseLayout  Phase = "layout"  // shape/stride computation
	PhaseNative  Phase = "native"  // inside the wrapped library
)

// Kind categorizes the error
type Kind string

const (
	KindRankMismatch    Kind = "rank_mismatch"
	KindScaleMismatch   Kind = "scale_mismatch"
	KindShapeMismatch   Kind = "shape_mismatch"
	KindEmptyBuffer     Kind = "empty_buffer"
	KindInvalidArgument Kind = "invalid_argument"
	KindAllocation      Kind = "allocation"
	KindNativeFailure   Kind = "native_failure"
)

// Error is the structured error type used throughout the bridge.
//
// Every Kind except KindNativeFailure is structural: it is raised before the
// native library is invoked and the caller can recover by fixing the input.
// KindNativeFailure wraps a fault signaled by the wrapped library and is not
// recoverable at this layer.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsStructural reports whether err is a structural bridge error, i.e. one
// detected before any native call and recoverable by the caller.
func IsStructural(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Kind != KindNativeFailure
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the structural path (e.g. scale/angle position)
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// RankMismatch creates a rank mismatch error
func RankMismatch(phase Phase, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRankMismatch,
		Detail: fmt.Sprintf("buffer rank %d, pipeline rank %d", got, want),
		Value:  got,
	}
}

// ScaleMismatch creates a scale count mismatch error
func ScaleMismatch(phase Phase, got, want int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindScaleMismatch,
		Detail: fmt.Sprintf("coefficient structure has %d scales, caller requested %d", got, want),
		Value:  got,
	}
}

// ShapeMismatch creates a shape mismatch error
func ShapeMismatch(phase Phase, path []string, got, want []int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindShapeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("shape %v, expected %v", got, want),
		Value:  got,
	}
}

// EmptyBuffer creates an empty buffer error
func EmptyBuffer(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEmptyBuffer,
		Detail: "buffer has no elements",
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, n int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d elements", n),
	}
}

// Native wraps a fault signaled by the wrapped library
func Native(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNativeFailure,
		Detail: "native library failure",
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
