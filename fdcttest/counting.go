package fdcttest

import "github.com/PyLops/curvelops/native"

// CallCounter wraps a native.Library and counts how many calls reach it.
// The structural-error tests use it to prove that invalid input never
// touches the native layer.
type CallCounter struct {
	Lib native.Library

	ParamCalls   int
	ForwardCalls int
	InverseCalls int
}

func Count(lib native.Library) *CallCounter { return &CallCounter{Lib: lib} }

// Total returns the number of native calls of any kind.
func (c *CallCounter) Total() int { return c.ParamCalls + c.ForwardCalls + c.InverseCalls }

func (c *CallCounter) Param(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool) (*native.ParamSet, error) {
	c.ParamCalls++
	return c.Lib.Param(dims, nbscales, nbanglesCoarse, allCurvelets)
}

func (c *CallCounter) Forward(nbscales, nbanglesCoarse int, allCurvelets bool, input *native.Container) ([][]*native.Container, error) {
	c.ForwardCalls++
	return c.Lib.Forward(nbscales, nbanglesCoarse, allCurvelets, input)
}

func (c *CallCounter) Inverse(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool, coeffs [][]*native.Container) (*native.Container, error) {
	c.InverseCalls++
	return c.Lib.Inverse(dims, nbscales, nbanglesCoarse, allCurvelets, coeffs)
}

func (c *CallCounter) Allocator() native.Allocator { return c.Lib.Allocator() }
