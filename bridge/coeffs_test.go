package bridge

import (
	"testing"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/fdcttest"
)

func TestVectStruct_RoundTrip(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(2, lib)

	dims := []int{5, 24}
	in := testInput(t, dims)

	g, err := p.QueryParams(dims, 3, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	c, err := p.Forward(3, 4, true, in)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Free()

	vec := c.Vect()
	if len(vec) != g.TotalCoefficients() {
		t.Fatalf("Vect length %d, want %d", len(vec), g.TotalCoefficients())
	}

	c2, err := Struct(g, vec)
	if err != nil {
		t.Fatal(err)
	}
	if c2.NumScales() != c.NumScales() {
		t.Fatalf("Struct produced %d scales, want %d", c2.NumScales(), c.NumScales())
	}
	c.Each(func(s, a int, leaf *buffer.Buffer) bool {
		other := c2.At(s, a)
		if !buffer.EqualShapes(other.Shape(), leaf.Shape()) {
			t.Fatalf("leaf (%d,%d) shape %v, want %v", s, a, other.Shape(), leaf.Shape())
		}
		for i, v := range leaf.Data() {
			if other.Data()[i] != v {
				t.Fatalf("leaf (%d,%d) element %d = %v, want %v", s, a, i, other.Data()[i], v)
			}
		}
		return true
	})

	// The rebuilt structure feeds straight back into the inverse.
	out, err := p.Inverse(dims, 3, 4, true, c2)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Free()
	for i, v := range in.Data() {
		if out.Data()[i] != v {
			t.Fatalf("element %d = %v, want %v", i, out.Data()[i], v)
		}
	}
}

func TestStruct_LengthMismatch(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(2, lib)

	g, err := p.QueryParams([]int{5, 24}, 3, 4, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Struct(g, make([]complex128, 7)); err == nil {
		t.Fatal("short vector must be rejected")
	}
}

func TestStruct_LeavesAliasVector(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(2, lib)

	g, _ := p.QueryParams([]int{5, 24}, 2, 4, true)
	vec := make([]complex128, g.TotalCoefficients())
	c, err := Struct(g, vec)
	if err != nil {
		t.Fatal(err)
	}
	vec[0] = 3 + 4i
	if c.At(0, 0).Data()[0] != 3+4i {
		t.Fatal("Struct leaves must alias the vector, not copy it")
	}
}

func TestCoeffs_Each_EarlyStop(t *testing.T) {
	lib := fdcttest.New(nil)
	p, _ := New(2, lib)

	c, err := p.Forward(3, 4, true, testInput(t, []int{5, 24}))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Free()

	visits := 0
	c.Each(func(s, a int, _ *buffer.Buffer) bool {
		visits++
		return visits < 3
	})
	if visits != 3 {
		t.Fatalf("Each visited %d leaves after early stop, want 3", visits)
	}
}
