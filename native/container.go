package native

import (
	"github.com/PyLops/curvelops/buffer"
)

// Mode tags who is responsible for a Container's storage.
type Mode uint8

const (
	// ModeBorrowed marks a view over externally-owned storage. A borrowed
	// container never frees anything.
	ModeBorrowed Mode = iota
	// ModeOwned marks storage allocated by the native library and owned by
	// the bridge until hand-off.
	ModeOwned
)

func (m Mode) String() string {
	if m == ModeOwned {
		return "owned"
	}
	return "borrowed"
}

// Container is the native library's tensor/matrix abstraction: column-major
// extents plus contiguous storage plus an ownership tag.
type Container struct {
	extents []int
	data    []complex128
	mode    Mode
}

// View constructs a borrowed container aliasing a contiguous host buffer.
// The extents are the buffer's shape with axes reversed; no allocation and
// no copy happen here. The view must not outlive the buffer, and the caller
// must Clear it once the native call it was built for has returned.
func View(b *buffer.Buffer) *Container {
	return &Container{
		extents: buffer.ReverseAxes(b.Shape()),
		data:    b.Data(),
		mode:    ModeBorrowed,
	}
}

// NewOwned constructs an owned container over storage the native library
// allocated. The bridge must hand it off to exactly one host buffer.
func NewOwned(extents []int, data []complex128) *Container {
	return &Container{
		extents: append([]int(nil), extents...),
		data:    data,
		mode:    ModeOwned,
	}
}

// Extents returns the container's per-dimension extents in native
// (column-major) axis order. The returned slice must not be modified.
func (c *Container) Extents() []int { return c.extents }

// Rank returns the number of dimensions.
func (c *Container) Rank() int { return len(c.extents) }

// Len returns the number of elements.
func (c *Container) Len() int { return buffer.ElemCount(c.extents) }

// Data returns the backing storage in column-major element order.
func (c *Container) Data() []complex128 { return c.data }

// Mode returns the ownership tag.
func (c *Container) Mode() Mode { return c.mode }

// Clear nulls the extents and storage, preventing any later deallocation
// attempt (borrowed views) or double hand-off (owned results).
func (c *Container) Clear() {
	c.extents = nil
	c.data = nil
}

// TakeData transfers the storage out of an owned container for hand-off and
// clears it. It returns nil for borrowed or already-cleared containers, so a
// hand-off can happen at most once.
func (c *Container) TakeData() []complex128 {
	if c.mode != ModeOwned || c.data == nil {
		return nil
	}
	data := c.data
	c.Clear()
	return data
}

// Release frees an owned container's storage through the given allocator and
// clears it. Borrowed and already-handed-off containers are untouched; this
// is the error-path cleanup for owned results that never reached a host
// buffer.
func (c *Container) Release(a Allocator) {
	if c.mode == ModeOwned && c.data != nil && a != nil {
		a.Free(c.data)
	}
	c.Clear()
}
