package bridge

import (
	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/errors"
	"github.com/PyLops/curvelops/native"
)

// AngleGeometry describes one (scale, angle) leaf in external axis order.
type AngleGeometry struct {
	// Extents is the leaf array's shape, row-major axis order.
	Extents []int
	// Frequency holds the per-axis center frequency coordinates.
	Frequency []float64
	// Sample holds the per-axis sample coordinates, or nil when the native
	// library does not report them for this rank.
	Sample []float64
}

// ScaleGeometry groups the angular wedges of one decomposition scale.
type ScaleGeometry struct {
	Angles []AngleGeometry
}

// Geometry is the nested per-scale, per-angle shape description of a
// decomposition, as reported by the native library's parameter query.
type Geometry struct {
	Scales []ScaleGeometry
}

// NumScales returns the number of decomposition scales.
func (g *Geometry) NumScales() int { return len(g.Scales) }

// NumAngles returns the number of angular wedges at scale s.
func (g *Geometry) NumAngles(s int) int { return len(g.Scales[s].Angles) }

// TotalCoefficients returns the summed element count over all leaves.
func (g *Geometry) TotalCoefficients() int {
	n := 0
	for _, sc := range g.Scales {
		for _, a := range sc.Angles {
			n += buffer.ElemCount(a.Extents)
		}
	}
	return n
}

// nestParams converts the library's flat per-axis parameter lists into the
// nested Geometry, reversing axes from native to external order.
func nestParams(ps *native.ParamSet, rank int) (*Geometry, error) {
	leaves := ps.Leaves()
	if len(ps.Extents) != rank || len(ps.Frequency) != rank {
		return nil, errors.New(errors.PhaseQuery, errors.KindNativeFailure).
			Detail("parameter query reported %d axes, rank is %d", len(ps.Extents), rank).
			Build()
	}
	if ps.Sample != nil && len(ps.Sample) != rank {
		return nil, errors.New(errors.PhaseQuery, errors.KindNativeFailure).
			Detail("sample coordinates report %d axes, rank is %d", len(ps.Sample), rank).
			Build()
	}
	for ax := 0; ax < rank; ax++ {
		if len(ps.Extents[ax]) != leaves || len(ps.Frequency[ax]) != leaves {
			return nil, errors.New(errors.PhaseQuery, errors.KindNativeFailure).
				Detail("axis %d reports %d leaves, angle counts sum to %d", ax, len(ps.Extents[ax]), leaves).
				Build()
		}
		if ps.Sample != nil && len(ps.Sample[ax]) != leaves {
			return nil, errors.New(errors.PhaseQuery, errors.KindNativeFailure).
				Detail("sample axis %d reports %d leaves, angle counts sum to %d", ax, len(ps.Sample[ax]), leaves).
				Build()
		}
	}

	g := &Geometry{Scales: make([]ScaleGeometry, len(ps.AnglesPerScale))}
	leaf := 0
	for s, na := range ps.AnglesPerScale {
		g.Scales[s].Angles = make([]AngleGeometry, na)
		for a := 0; a < na; a++ {
			ag := AngleGeometry{
				Extents:   make([]int, rank),
				Frequency: make([]float64, rank),
			}
			if ps.Sample != nil {
				ag.Sample = make([]float64, rank)
			}
			// Native axis ax maps to external axis rank-1-ax.
			for ax := 0; ax < rank; ax++ {
				ag.Extents[rank-1-ax] = ps.Extents[ax][leaf]
				ag.Frequency[rank-1-ax] = ps.Frequency[ax][leaf]
				if ag.Sample != nil {
					ag.Sample[rank-1-ax] = ps.Sample[ax][leaf]
				}
			}
			g.Scales[s].Angles[a] = ag
			leaf++
		}
	}
	return g, nil
}
