package bridge

import (
	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/errors"
)

// Coeffs is the two-level decomposition structure: one level per scale, one
// sub-level per angle within a scale, each angle owning exactly one leaf
// buffer. A Coeffs produced by Forward must round-trip into Inverse with its
// scale/angle counts and per-leaf shapes unchanged.
type Coeffs struct {
	scales [][]*buffer.Buffer
}

// NewCoeffs wraps an existing nested leaf collection.
func NewCoeffs(scales [][]*buffer.Buffer) *Coeffs {
	return &Coeffs{scales: scales}
}

// NumScales returns the number of decomposition scales.
func (c *Coeffs) NumScales() int { return len(c.scales) }

// NumAngles returns the number of angular wedges at scale s.
func (c *Coeffs) NumAngles(s int) int { return len(c.scales[s]) }

// At returns the leaf buffer at scale s, angle a.
func (c *Coeffs) At(s, a int) *buffer.Buffer { return c.scales[s][a] }

// Each visits every leaf in scale-major order until fn returns false.
func (c *Coeffs) Each(fn func(s, a int, leaf *buffer.Buffer) bool) {
	for s, angles := range c.scales {
		for a, leaf := range angles {
			if !fn(s, a, leaf) {
				return
			}
		}
	}
}

// TotalLen returns the summed element count over all leaves.
func (c *Coeffs) TotalLen() int {
	n := 0
	c.Each(func(_, _ int, leaf *buffer.Buffer) bool {
		n += leaf.Len()
		return true
	})
	return n
}

// Free releases every bridge-owned leaf. Host-owned leaves are untouched.
func (c *Coeffs) Free() {
	c.Each(func(_, _ int, leaf *buffer.Buffer) bool {
		leaf.Free()
		return true
	})
}

// Vect flattens the structure into a single vector: leaves concatenated in
// scale-major order, each in row-major element order. The result is a copy.
func (c *Coeffs) Vect() []complex128 {
	out := make([]complex128, 0, c.TotalLen())
	c.Each(func(_, _ int, leaf *buffer.Buffer) bool {
		if leaf.IsContiguous() {
			out = append(out, leaf.Data()...)
		} else {
			out = append(out, leaf.Compact().Data()...)
		}
		return true
	})
	return out
}

// Struct rebuilds a Coeffs from a flat vector using the given geometry. The
// leaves are zero-copy views into vec, in the same order Vect emits.
func Struct(g *Geometry, vec []complex128) (*Coeffs, error) {
	want := g.TotalCoefficients()
	if len(vec) != want {
		return nil, errors.InvalidArgument(errors.PhaseLayout,
			"vector has %d elements, geometry requires %d", len(vec), want)
	}
	scales := make([][]*buffer.Buffer, g.NumScales())
	pos := 0
	for s := range g.Scales {
		scales[s] = make([]*buffer.Buffer, g.NumAngles(s))
		for a, ag := range g.Scales[s].Angles {
			n := buffer.ElemCount(ag.Extents)
			leaf, err := buffer.FromSlice(vec[pos:pos+n], ag.Extents)
			if err != nil {
				return nil, err
			}
			scales[s][a] = leaf
			pos += n
		}
	}
	return NewCoeffs(scales), nil
}
