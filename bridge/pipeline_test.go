package bridge

import (
	"testing"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/errors"
	"github.com/PyLops/curvelops/fdcttest"
)

func TestNew(t *testing.T) {
	lib := fdcttest.New(nil)

	for _, rank := range []int{2, 3} {
		p, err := New(rank, lib)
		if err != nil {
			t.Fatalf("New(%d) failed: %v", rank, err)
		}
		if p.Rank() != rank {
			t.Fatalf("Rank = %d, want %d", p.Rank(), rank)
		}
	}

	for _, rank := range []int{0, 1, 4} {
		if _, err := New(rank, lib); err == nil {
			t.Errorf("New(%d) should fail", rank)
		}
	}
	if _, err := New(2, nil); err == nil {
		t.Error("New with nil library should fail")
	}
}

func TestQueryParams(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(2, lib)

	dims := []int{5, 24} // external order; native first axis extent is 24
	g, err := p.QueryParams(dims, 3, 4, true)
	if err != nil {
		t.Fatalf("QueryParams failed: %v", err)
	}

	if g.NumScales() != 3 {
		t.Fatalf("NumScales = %d, want 3", g.NumScales())
	}
	wantAngles := []int{1, 4, 4}
	for s, want := range wantAngles {
		if g.NumAngles(s) != want {
			t.Fatalf("NumAngles(%d) = %d, want %d", s, g.NumAngles(s), want)
		}
	}

	// Geometry coordinates come back in external axis order: the split
	// native axis is the last external axis, so the band extents appear on
	// axis 1 and axis 0 always carries dims[0].
	total := 0
	for s := range g.Scales {
		for _, ag := range g.Scales[s].Angles {
			if len(ag.Extents) != 2 {
				t.Fatalf("leaf rank = %d, want 2", len(ag.Extents))
			}
			if ag.Extents[0] != dims[0] {
				t.Fatalf("leaf extents %v: axis 0 should be %d", ag.Extents, dims[0])
			}
			if ag.Sample == nil {
				t.Fatal("rank-2 geometry should carry sample coordinates")
			}
			total += ag.Extents[1]
		}
	}
	if total != dims[1] {
		t.Fatalf("band extents sum to %d, want %d", total, dims[1])
	}

	if g.TotalCoefficients() != buffer.ElemCount(dims) {
		t.Fatalf("TotalCoefficients = %d, want %d", g.TotalCoefficients(), buffer.ElemCount(dims))
	}
}

func TestQueryParams_Rank3NoSample(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(3, lib)

	g, err := p.QueryParams([]int{3, 4, 32}, 3, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	for s := range g.Scales {
		for _, ag := range g.Scales[s].Angles {
			if ag.Sample != nil {
				t.Fatal("rank-3 geometry must not carry sample coordinates")
			}
			if len(ag.Frequency) != 3 {
				t.Fatalf("frequency rank = %d, want 3", len(ag.Frequency))
			}
		}
	}
}

func TestQueryParams_StructuralErrors(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(2, lib)

	if _, err := p.QueryParams([]int{5, 24, 3}, 3, 4, true); !errors.IsStructural(err) {
		t.Errorf("rank mismatch should be structural, got %v", err)
	}
	if _, err := p.QueryParams([]int{5, 0}, 3, 4, true); !errors.IsStructural(err) {
		t.Errorf("zero extent should be structural, got %v", err)
	}
	if _, err := p.QueryParams([]int{5, 24}, 0, 4, true); !errors.IsStructural(err) {
		t.Errorf("nbscales 0 should be structural, got %v", err)
	}
	if _, err := p.QueryParams([]int{5, 24}, 3, 0, true); !errors.IsStructural(err) {
		t.Errorf("nbangles_coarse 0 should be structural, got %v", err)
	}
}
