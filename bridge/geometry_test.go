package bridge

import (
	"testing"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/native"
)

func TestNestParams(t *testing.T) {
	// Two scales, one + two angles, rank 2, native axis order in the flat
	// lists. Native axis 0 is the fastest axis, i.e. external axis 1.
	ps := &native.ParamSet{
		AnglesPerScale: []int{1, 2},
		Extents: [][]int{
			{8, 4, 4}, // native axis 0
			{5, 5, 5}, // native axis 1
		},
		Frequency: [][]float64{
			{0.1, 0.4, 0.8},
			{0.5, 0.5, 0.5},
		},
		Sample: [][]float64{
			{0.0, 0.25, 0.75},
			{0.0, 0.0, 0.0},
		},
	}

	g, err := nestParams(ps, 2)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumScales() != 2 || g.NumAngles(0) != 1 || g.NumAngles(1) != 2 {
		t.Fatalf("wrong nesting: %d scales", g.NumScales())
	}

	// External order reverses the native axes.
	first := g.Scales[0].Angles[0]
	if !buffer.EqualShapes(first.Extents, []int{5, 8}) {
		t.Fatalf("leaf 0 extents %v, want [5 8]", first.Extents)
	}
	if first.Frequency[1] != 0.1 || first.Frequency[0] != 0.5 {
		t.Fatalf("leaf 0 frequency %v not axis-reversed", first.Frequency)
	}
	if first.Sample[1] != 0.0 {
		t.Fatalf("leaf 0 sample %v not axis-reversed", first.Sample)
	}

	last := g.Scales[1].Angles[1]
	if !buffer.EqualShapes(last.Extents, []int{5, 4}) {
		t.Fatalf("last leaf extents %v, want [5 4]", last.Extents)
	}
	if last.Sample[1] != 0.75 {
		t.Fatalf("last leaf sample %v, want axis-1 = 0.75", last.Sample)
	}
}

func TestNestParams_NoSample(t *testing.T) {
	ps := &native.ParamSet{
		AnglesPerScale: []int{1},
		Extents:        [][]int{{2}, {3}, {4}},
		Frequency:      [][]float64{{0.5}, {0.5}, {0.5}},
	}
	g, err := nestParams(ps, 3)
	if err != nil {
		t.Fatal(err)
	}
	if g.Scales[0].Angles[0].Sample != nil {
		t.Fatal("sample must stay nil when the library reports none")
	}
	if !buffer.EqualShapes(g.Scales[0].Angles[0].Extents, []int{4, 3, 2}) {
		t.Fatalf("extents %v, want [4 3 2]", g.Scales[0].Angles[0].Extents)
	}
}

func TestNestParams_Inconsistent(t *testing.T) {
	// Axis count does not match rank.
	ps := &native.ParamSet{
		AnglesPerScale: []int{1},
		Extents:        [][]int{{2}},
		Frequency:      [][]float64{{0.5}},
	}
	if _, err := nestParams(ps, 2); err == nil {
		t.Fatal("axis/rank mismatch must fail")
	}

	// Flat list shorter than the angle counts claim.
	ps = &native.ParamSet{
		AnglesPerScale: []int{2},
		Extents:        [][]int{{2}, {3}},
		Frequency:      [][]float64{{0.5}, {0.5}},
	}
	if _, err := nestParams(ps, 2); err == nil {
		t.Fatal("leaf count mismatch must fail")
	}

	// Sample lists shorter than the angle counts claim must error, not panic.
	ps = &native.ParamSet{
		AnglesPerScale: []int{2},
		Extents:        [][]int{{2, 2}, {3, 3}},
		Frequency:      [][]float64{{0.5, 0.5}, {0.5, 0.5}},
		Sample:         [][]float64{{0.0}, {0.0}},
	}
	if _, err := nestParams(ps, 2); err == nil {
		t.Fatal("short sample list must fail")
	}

	// Sample axis count not matching the rank must error too.
	ps = &native.ParamSet{
		AnglesPerScale: []int{1},
		Extents:        [][]int{{2}, {3}},
		Frequency:      [][]float64{{0.5}, {0.5}},
		Sample:         [][]float64{{0.0}},
	}
	if _, err := nestParams(ps, 2); err == nil {
		t.Fatal("sample axis/rank mismatch must fail")
	}
}
