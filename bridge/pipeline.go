package bridge

import (
	"go.uber.org/zap"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/errors"
	"github.com/PyLops/curvelops/native"
)

// Pipeline binds a decomposition rank to a native library. It is stateless
// between calls; concurrent use is safe exactly when the underlying library
// is reentrant, which is not assumed.
type Pipeline struct {
	rank int
	lib  native.Library
}

// New creates a pipeline of the given rank. Only ranks 2 and 3 are
// supported.
func New(rank int, lib native.Library) (*Pipeline, error) {
	if rank != 2 && rank != 3 {
		return nil, errors.InvalidArgument(errors.PhaseLayout, "rank %d not supported, want 2 or 3", rank)
	}
	if lib == nil {
		return nil, errors.InvalidArgument(errors.PhaseLayout, "nil native library")
	}
	return &Pipeline{rank: rank, lib: lib}, nil
}

// Rank returns the pipeline's decomposition rank.
func (p *Pipeline) Rank() int { return p.rank }

// Library returns the wrapped native library.
func (p *Pipeline) Library() native.Library { return p.lib }

func (p *Pipeline) checkArgs(phase errors.Phase, nbscales, nbanglesCoarse int) error {
	if nbscales < 1 {
		return errors.InvalidArgument(phase, "nbscales %d < 1", nbscales)
	}
	if nbanglesCoarse < 1 {
		return errors.InvalidArgument(phase, "nbangles_coarse %d < 1", nbanglesCoarse)
	}
	return nil
}

func (p *Pipeline) checkDims(phase errors.Phase, dims []int) error {
	if len(dims) != p.rank {
		return errors.RankMismatch(phase, len(dims), p.rank)
	}
	if buffer.ElemCount(dims) == 0 {
		return errors.InvalidArgument(phase, "invalid dims %v", dims)
	}
	return nil
}

// QueryParams reports the decomposition geometry for the given external
// dims: per scale and per angle, the leaf shape plus frequency (and, when
// the library provides them, sample) coordinates. Pure computation, no
// buffers.
func (p *Pipeline) QueryParams(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool) (*Geometry, error) {
	if err := p.checkDims(errors.PhaseQuery, dims); err != nil {
		return nil, err
	}
	if err := p.checkArgs(errors.PhaseQuery, nbscales, nbanglesCoarse); err != nil {
		return nil, err
	}
	ps, err := p.lib.Param(buffer.ReverseAxes(dims), nbscales, nbanglesCoarse, allCurvelets)
	if err != nil {
		return nil, errors.Native(errors.PhaseQuery, err)
	}
	g, err := nestParams(ps, p.rank)
	if err != nil {
		return nil, err
	}
	Logger().Debug("parameter query",
		zap.Ints("dims", dims),
		zap.Int("scales", g.NumScales()),
		zap.Int("leaves", ps.Leaves()))
	return g, nil
}
