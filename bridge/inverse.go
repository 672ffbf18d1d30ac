package bridge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/errors"
	"github.com/PyLops/curvelops/native"
)

// Inverse reconstructs a host buffer of shape dims from a coefficient
// structure, running the native inverse transform over zero-copy borrowed
// views of the leaves.
//
// Two structural checks run before the native library is touched: the
// caller's nbscales must equal the structure's scale count, and every leaf
// shape must match the geometry the library itself reports for (dims,
// nbscales, nbanglesCoarse, allCurvelets). The second check costs one
// parameter query and closes the undefined-behavior hole a malformed
// structure would otherwise hit inside the unchecked native inverse.
func (p *Pipeline) Inverse(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool, c *Coeffs) (*buffer.Buffer, error) {
	if err := p.checkDims(errors.PhaseInverse, dims); err != nil {
		return nil, err
	}
	if err := p.checkArgs(errors.PhaseInverse, nbscales, nbanglesCoarse); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.EmptyBuffer(errors.PhaseInverse)
	}
	if c.NumScales() != nbscales {
		return nil, errors.ScaleMismatch(errors.PhaseInverse, c.NumScales(), nbscales)
	}

	g, err := p.QueryParams(dims, nbscales, nbanglesCoarse, allCurvelets)
	if err != nil {
		return nil, err
	}
	if err := p.checkStructure(g, c); err != nil {
		return nil, err
	}

	// Borrowed views over every leaf, axes reversed, zero copy. The views
	// are collected so they can all be cleared in one pass afterwards.
	views := make([][]*native.Container, c.NumScales())
	var flat []*native.Container
	for s := 0; s < c.NumScales(); s++ {
		views[s] = make([]*native.Container, c.NumAngles(s))
		for a := 0; a < c.NumAngles(s); a++ {
			leaf := c.At(s, a)
			if !leaf.IsContiguous() {
				leaf = leaf.Compact()
			}
			v := native.View(leaf)
			views[s][a] = v
			flat = append(flat, v)
		}
	}

	res, err := p.lib.Inverse(buffer.ReverseAxes(dims), nbscales, nbanglesCoarse, allCurvelets, views)
	// Every view aliased host storage; clear them all regardless of the
	// call's outcome.
	for _, v := range flat {
		v.Clear()
	}
	if err != nil {
		return nil, errors.Native(errors.PhaseInverse, err)
	}

	alloc := p.lib.Allocator()
	shape := buffer.ReverseAxes(res.Extents())
	if !buffer.EqualShapes(shape, dims) {
		res.Release(alloc)
		return nil, errors.Native(errors.PhaseInverse,
			fmt.Errorf("inverse produced shape %v, want %v", shape, dims))
	}

	out := buffer.Adopt(res.TakeData(), shape, alloc.Free)
	Logger().Debug("inverse marshal",
		zap.Ints("dims", dims),
		zap.Int("scales", nbscales))
	return out, nil
}

// checkStructure cross-checks a coefficient structure against the geometry
// reported by the parameter query.
func (p *Pipeline) checkStructure(g *Geometry, c *Coeffs) error {
	if c.NumScales() != g.NumScales() {
		return errors.ScaleMismatch(errors.PhaseInverse, c.NumScales(), g.NumScales())
	}
	for s := 0; s < g.NumScales(); s++ {
		if c.NumAngles(s) != g.NumAngles(s) {
			return errors.New(errors.PhaseInverse, errors.KindShapeMismatch).
				Path(fmt.Sprintf("scale[%d]", s)).
				Detail("%d angles, geometry requires %d", c.NumAngles(s), g.NumAngles(s)).
				Build()
		}
		for a := 0; a < g.NumAngles(s); a++ {
			leaf := c.At(s, a)
			want := g.Scales[s].Angles[a].Extents
			if leaf == nil || leaf.Len() == 0 {
				return errors.New(errors.PhaseInverse, errors.KindEmptyBuffer).
					Path(fmt.Sprintf("scale[%d]", s), fmt.Sprintf("angle[%d]", a)).
					Detail("missing leaf buffer").
					Build()
			}
			if !buffer.EqualShapes(leaf.Shape(), want) {
				return errors.ShapeMismatch(errors.PhaseInverse,
					[]string{fmt.Sprintf("scale[%d]", s), fmt.Sprintf("angle[%d]", a)},
					leaf.Shape(), want)
			}
		}
	}
	return nil
}
