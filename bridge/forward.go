package bridge

import (
	"go.uber.org/zap"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/errors"
	"github.com/PyLops/curvelops/native"
)

// Forward runs the native forward transform on a host buffer and returns
// the nested coefficient structure, every leaf an independently-owned
// buffer.
//
// The input is wrapped as a borrowed column-major view of the reversed
// shape over the same storage: zero copy when the buffer is contiguous, one
// compacting copy otherwise. The returned scale and angle counts are
// whatever the library actually produced, which may differ from the
// requested nbscales if the library clamps it.
func (p *Pipeline) Forward(nbscales, nbanglesCoarse int, allCurvelets bool, in *buffer.Buffer) (*Coeffs, error) {
	if in == nil || in.Len() == 0 {
		return nil, errors.EmptyBuffer(errors.PhaseForward)
	}
	if in.Rank() != p.rank {
		return nil, errors.RankMismatch(errors.PhaseForward, in.Rank(), p.rank)
	}
	if err := p.checkArgs(errors.PhaseForward, nbscales, nbanglesCoarse); err != nil {
		return nil, err
	}

	src := in
	copied := false
	if !in.IsContiguous() {
		src = in.Compact()
		copied = true
	}

	view := native.View(src)
	cmat, err := p.lib.Forward(nbscales, nbanglesCoarse, allCurvelets, view)
	// The view aliased host storage and must never be freed; clear it
	// before anything else can happen to it.
	view.Clear()
	if err != nil {
		return nil, errors.Native(errors.PhaseForward, err)
	}

	alloc := p.lib.Allocator()
	scales := make([][]*buffer.Buffer, len(cmat))
	leaves := 0
	for s, angles := range cmat {
		scales[s] = make([]*buffer.Buffer, len(angles))
		for a, ct := range angles {
			shape := buffer.ReverseAxes(ct.Extents())
			data := ct.TakeData() // hand-off: clears the container
			scales[s][a] = buffer.Adopt(data, shape, alloc.Free)
			leaves++
		}
	}

	Logger().Debug("forward marshal",
		zap.Ints("dims", in.Shape()),
		zap.Int("scales", len(scales)),
		zap.Int("leaves", leaves),
		zap.Bool("compacted", copied))
	return NewCoeffs(scales), nil
}
