// Package curvelops bridges host Go code and native fast discrete curvelet
// transform (FDCT) libraries without copying bulk numerical data on the hot
// path.
//
// The hard problem this library solves is not the transform itself, which is
// a black box behind the native.Library interface, but the marshalling
// layer around it: wrapping host-owned complex buffers as zero-copy native
// views, walking the transform's nested scale/angle output and re-exposing
// each leaf array as an independently-owned host buffer, and doing the same
// in reverse for the inverse transform, with exact ownership accounting at
// every hand-off.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	curvelops/           Root package with the New2D/New3D pipeline facades
//	├── bridge/          Rank-generic marshalling pipeline: QueryParams,
//	│                    Forward, Inverse, nested coefficient structure
//	├── buffer/          Host-facing strided complex128 buffers and layout math
//	├── native/          Native-side contracts: Container (borrowed|owned),
//	│                    Allocator, the black-box Library interface
//	│   └── wasmfdct/    wazero-backed Library running an FDCT core compiled
//	│                    to WebAssembly
//	├── wedge/           Coefficient analysis helpers (energies, argmax)
//	├── fdcttest/        Test doubles: fake library, counting allocator
//	├── errors/          Structured error types for debugging
//	└── cmd/curveinfo/   Geometry inspection CLI and TUI
//
// # Quick Start
//
// Bind a pipeline to a library and round-trip a buffer:
//
//	p, err := curvelops.New2D(lib)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	in, _ := buffer.FromSlice(data, []int{nx, ny})
//	c, err := p.Forward(nbscales, nbanglesCoarse, true, in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Free()
//
//	out, err := p.Inverse([]int{nx, ny}, nbscales, nbanglesCoarse, true, c)
//	defer out.Free()
//
// # Element Ordering
//
// Host buffers are row-major; the native library is column-major. The bridge
// reverses axes at the boundary in both directions, so a contiguous buffer
// crosses with zero copies and callers never pre-transpose data.
//
// # Ownership
//
// Buffers returned by Forward and Inverse own native allocations. They are
// released exactly once: explicitly via Free, or by a registered finalizer
// as a backstop. Borrowed views built for native calls are cleared the
// moment the call returns and can never free host memory.
//
// # Thread Safety
//
// Pipelines hold no state between calls. Concurrent use is safe only if the
// underlying native library is reentrant, which is not assumed; serialize
// calls unless the implementation documents otherwise.
package curvelops
