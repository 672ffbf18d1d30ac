// Package errors provides structured error types for the curvelops bridge.
//
// Errors are categorized by Phase (which bridge operation failed) and Kind
// (error category). The Error type includes rich context: a structural path
// into the scale/angle hierarchy, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseInverse, errors.KindShapeMismatch).
//		Path("scale[2]", "angle[5]").
//		Detail("leaf shape does not match geometry").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.RankMismatch(errors.PhaseForward, 1, 2)
//	err := errors.ScaleMismatch(errors.PhaseInverse, 2, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// IsStructural distinguishes recoverable pre-native errors from wrapped
// native-library faults.
package errors
