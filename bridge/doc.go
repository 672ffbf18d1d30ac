// Package bridge implements the buffer-marshalling layer between host-owned
// complex buffers and a native curvelet-transform library.
//
// # Pipelines
//
// A Pipeline binds a rank (2 or 3) to a native.Library. Both ranks share one
// implementation; the rank only selects validation and axis bookkeeping.
//
//	lib := ...               // native.Library implementation
//	p, err := bridge.New(2, lib)
//
//	geo, err := p.QueryParams(dims, nbscales, nbanglesCoarse, allCurvelets)
//	c, err := p.Forward(nbscales, nbanglesCoarse, allCurvelets, input)
//	out, err := p.Inverse(dims, nbscales, nbanglesCoarse, allCurvelets, c)
//
// # Marshalling discipline
//
// Forward wraps the host input as a borrowed column-major view of the
// reversed shape over the same storage (zero copy for contiguous input, one
// compacting copy otherwise), runs the native forward transform, clears the
// view, and adopts every leaf the library allocated into an independently
// owned host buffer (axes reversed back, release registered at hand-off).
//
// Inverse checks the caller's scale count against the structure first, then
// cross-checks every leaf shape against the library's own geometry before
// building borrowed views and running the native inverse. Both checks raise
// structural errors without touching the native transform; the malformed
// inputs they reject would otherwise be undefined behavior inside the
// library, which performs no bounds checking of its own.
//
// # Axis order
//
// All bridge APIs speak external (row-major) axis order. The native library
// is column-major; the bridge reverses axes in both directions so callers
// never pre-transpose data.
package bridge
