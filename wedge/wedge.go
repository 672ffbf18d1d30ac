// Package wedge provides analysis helpers over decomposition structures:
// per-wedge energies and locations of dominant coefficients.
package wedge

import (
	"math"
	"math/cmplx"

	"github.com/PyLops/curvelops/bridge"
	"github.com/PyLops/curvelops/buffer"
)

// Energy returns the root mean square magnitude of a buffer's elements.
func Energy(b *buffer.Buffer) float64 {
	n := b.Len()
	if n == 0 {
		return 0
	}
	sum := 0.0
	if b.IsContiguous() {
		for _, v := range b.Data() {
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
	} else {
		shape := b.Shape()
		idx := make([]int, len(shape))
		for i := 0; i < n; i++ {
			v := b.At(idx...)
			sum += real(v)*real(v) + imag(v)*imag(v)
			for ax := len(idx) - 1; ax >= 0; ax-- {
				idx[ax]++
				if idx[ax] < shape[ax] {
					break
				}
				idx[ax] = 0
			}
		}
	}
	return math.Sqrt(sum / float64(n))
}

// EnergySplit returns the per-scale, per-angle energies of a coefficient
// structure, in the structure's own nesting.
func EnergySplit(c *bridge.Coeffs) [][]float64 {
	out := make([][]float64, c.NumScales())
	for s := range out {
		out[s] = make([]float64, c.NumAngles(s))
	}
	c.Each(func(s, a int, leaf *buffer.Buffer) bool {
		out[s][a] = Energy(leaf)
		return true
	})
	return out
}

// ArgmaxAbs returns the index vector of the element with the largest
// magnitude, row-major order breaking ties toward the earlier index.
func ArgmaxAbs(b *buffer.Buffer) []int {
	shape := b.Shape()
	best := make([]int, len(shape))
	idx := make([]int, len(shape))
	bestMag := math.Inf(-1)
	for i := 0; i < b.Len(); i++ {
		if m := cmplx.Abs(b.At(idx...)); m > bestMag {
			bestMag = m
			copy(best, idx)
		}
		for ax := len(idx) - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < shape[ax] {
				break
			}
			idx[ax] = 0
		}
	}
	return best
}
