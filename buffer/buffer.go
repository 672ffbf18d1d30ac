// Package buffer implements the host-facing side of the curvelet bridge:
// flat, strided blocks of complex128 elements with explicit shape and
// ownership.
//
// A Buffer is either host-owned (created with New or FromSlice; Free is a
// no-op) or bridge-owned (created by Adopt at the moment a native allocation
// is handed off; Free releases the storage exactly once, with a runtime
// finalizer as backstop). No code path frees a buffer it did not adopt.
package buffer

import (
	"runtime"

	"github.com/PyLops/curvelops/errors"
)

// ReleaseFunc releases an adopted storage block. It is called at most once.
type ReleaseFunc func([]complex128)

// Buffer is a caller-owned or bridge-owned block of complex128 elements
// described by a shape and per-dimension element strides.
type Buffer struct {
	data    []complex128
	shape   []int
	strides []int
	release ReleaseFunc
}

// New allocates a zero-filled contiguous row-major buffer of the given shape.
func New(shape []int) (*Buffer, error) {
	n := ElemCount(shape)
	if n == 0 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, "invalid shape %v", shape)
	}
	return &Buffer{
		data:    make([]complex128, n),
		shape:   append([]int(nil), shape...),
		strides: RowMajorStrides(shape),
	}, nil
}

// FromSlice wraps data as a contiguous row-major buffer of the given shape
// without copying. The buffer aliases data; the caller retains ownership.
func FromSlice(data []complex128, shape []int) (*Buffer, error) {
	n := ElemCount(shape)
	if n == 0 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, "invalid shape %v", shape)
	}
	if len(data) != n {
		return nil, errors.InvalidArgument(errors.PhaseLayout,
			"data length %d does not match shape %v (%d elements)", len(data), shape, n)
	}
	return &Buffer{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: RowMajorStrides(shape),
	}, nil
}

// FromStrided wraps data with explicit element strides without copying.
// Strides must address every element of shape inside data without gaps being
// required; overlapping layouts are rejected only insofar as the maximal
// index must fit in data.
func FromStrided(data []complex128, shape, strides []int) (*Buffer, error) {
	n := ElemCount(shape)
	if n == 0 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, "invalid shape %v", shape)
	}
	if len(strides) != len(shape) {
		return nil, errors.InvalidArgument(errors.PhaseLayout,
			"strides rank %d does not match shape rank %d", len(strides), len(shape))
	}
	maxIdx := 0
	for i, d := range shape {
		if strides[i] < 0 {
			return nil, errors.InvalidArgument(errors.PhaseLayout, "negative stride %d on axis %d", strides[i], i)
		}
		maxIdx += (d - 1) * strides[i]
	}
	if maxIdx >= len(data) {
		return nil, errors.InvalidArgument(errors.PhaseLayout,
			"strides %v with shape %v exceed data length %d", strides, shape, len(data))
	}
	return &Buffer{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: append([]int(nil), strides...),
	}, nil
}

// Adopt takes ownership of a native allocation and exposes it as a contiguous
// row-major buffer. This is the hand-off point: release will be invoked
// exactly once, either by an explicit Free or by the registered finalizer.
func Adopt(data []complex128, shape []int, release ReleaseFunc) *Buffer {
	b := &Buffer{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: RowMajorStrides(shape),
		release: release,
	}
	if release != nil {
		runtime.SetFinalizer(b, (*Buffer).Free)
	}
	return b
}

// Free releases adopted storage. It is idempotent and a no-op for host-owned
// buffers. After Free the buffer is empty: shape, strides and data are
// cleared so no later code can reach the released block.
func (b *Buffer) Free() {
	if b.release == nil {
		return
	}
	rel, data := b.release, b.data
	b.release = nil
	b.data = nil
	b.shape = nil
	b.strides = nil
	runtime.SetFinalizer(b, nil)
	rel(data)
}

// Owned reports whether the buffer owns its storage (was adopted and not yet
// freed).
func (b *Buffer) Owned() bool { return b.release != nil }

// Rank returns the number of dimensions.
func (b *Buffer) Rank() int { return len(b.shape) }

// Shape returns the buffer's extents in external (row-major) axis order.
// The returned slice must not be modified.
func (b *Buffer) Shape() []int { return b.shape }

// Strides returns per-dimension element strides.
// The returned slice must not be modified.
func (b *Buffer) Strides() []int { return b.strides }

// Len returns the number of elements.
func (b *Buffer) Len() int { return ElemCount(b.shape) }

// Data returns the backing storage. For contiguous buffers the elements are
// in row-major order.
func (b *Buffer) Data() []complex128 { return b.data }

// IsContiguous reports whether the buffer is contiguous row-major, i.e.
// whether its storage can be reinterpreted as a column-major block of the
// reversed shape without copying.
func (b *Buffer) IsContiguous() bool {
	if len(b.shape) == 0 || len(b.data) != ElemCount(b.shape) {
		return false
	}
	want := RowMajorStrides(b.shape)
	for i := range want {
		if b.strides[i] != want[i] {
			return false
		}
	}
	return true
}

// At returns the element at the given index vector.
func (b *Buffer) At(idx ...int) complex128 {
	return b.data[b.offset(idx)]
}

// SetAt stores v at the given index vector.
func (b *Buffer) SetAt(v complex128, idx ...int) {
	b.data[b.offset(idx)] = v
}

func (b *Buffer) offset(idx []int) int {
	if len(idx) != len(b.shape) {
		panic("buffer: index rank mismatch")
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= b.shape[i] {
			panic("buffer: index out of range")
		}
		off += v * b.strides[i]
	}
	return off
}

// Compact returns a contiguous row-major copy of the buffer. The copy is
// host-owned regardless of the receiver's ownership.
func (b *Buffer) Compact() *Buffer {
	out := &Buffer{
		data:    make([]complex128, b.Len()),
		shape:   append([]int(nil), b.shape...),
		strides: RowMajorStrides(b.shape),
	}
	idx := make([]int, len(b.shape))
	for i := range out.data {
		out.data[i] = b.At(idx...)
		for ax := len(idx) - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < b.shape[ax] {
				break
			}
			idx[ax] = 0
		}
	}
	return out
}
