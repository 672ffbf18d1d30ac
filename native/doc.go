// Package native models the wrapped transform library's side of the bridge.
//
// The library is a black box behind the Library interface: it computes the
// curvelet decomposition geometry (Param), the forward transform (Forward)
// and the inverse transform (Inverse). Implementations live elsewhere
// (native/wasmfdct runs a wasm build of an FDCT core; fdcttest provides an
// in-process fake for tests). This package only defines the contracts and the
// Container type they exchange.
//
// # Axis order
//
// Everything in this package speaks the library's native axis order:
// column-major, first axis fastest in memory. The bridge package reverses
// axes at the boundary, so a host row-major buffer of shape (a, b, c) arrives
// here as a container with extents (c, b, a) aliasing the same storage.
//
// # Ownership
//
// A Container is either Borrowed or Owned:
//
//	Borrowed - a view over storage somebody else owns. Built by View at the
//	           marshal boundary, cleared by the bridge immediately after the
//	           native call returns, never released.
//	Owned    - storage allocated by the library through its Allocator. Handed
//	           off to exactly one host buffer, then cleared. Release frees it
//	           only while it has not been handed off.
//
// Clear nulls the extents and storage so a stale Container cannot free, or
// even reach, memory it no longer has any claim to. This mirrors the classic
// marshalling discipline for wrapped numerical libraries: the view is cleared
// as if it had never existed.
package native
