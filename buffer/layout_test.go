package buffer

import "testing"

func TestRowMajorStrides(t *testing.T) {
	tests := []struct {
		shape []int
		want  []int
	}{
		{[]int{5}, []int{1}},
		{[]int{2, 3}, []int{3, 1}},
		{[]int{2, 3, 4}, []int{12, 4, 1}},
	}
	for _, tt := range tests {
		got := RowMajorStrides(tt.shape)
		if !EqualShapes(got, tt.want) {
			t.Errorf("RowMajorStrides(%v) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestColMajorStrides(t *testing.T) {
	tests := []struct {
		shape []int
		want  []int
	}{
		{[]int{5}, []int{1}},
		{[]int{2, 3}, []int{1, 2}},
		{[]int{2, 3, 4}, []int{1, 2, 6}},
	}
	for _, tt := range tests {
		got := ColMajorStrides(tt.shape)
		if !EqualShapes(got, tt.want) {
			t.Errorf("ColMajorStrides(%v) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}

func TestReverseAxes(t *testing.T) {
	got := ReverseAxes([]int{2, 3, 4})
	if !EqualShapes(got, []int{4, 3, 2}) {
		t.Errorf("ReverseAxes = %v, want [4 3 2]", got)
	}

	// Row-major strides of a shape are the column-major strides of the
	// reversed shape, read backwards. This identity is what lets the bridge
	// alias instead of copy.
	shape := []int{3, 5, 7}
	rm := RowMajorStrides(shape)
	cm := ColMajorStrides(ReverseAxes(shape))
	for i := range rm {
		if rm[i] != cm[len(cm)-1-i] {
			t.Fatalf("stride identity broken at axis %d: %v vs %v", i, rm, cm)
		}
	}
}

func TestElemCount(t *testing.T) {
	if n := ElemCount([]int{2, 3, 4}); n != 24 {
		t.Errorf("ElemCount = %d, want 24", n)
	}
	if n := ElemCount(nil); n != 0 {
		t.Errorf("ElemCount(nil) = %d, want 0", n)
	}
	if n := ElemCount([]int{2, 0}); n != 0 {
		t.Errorf("ElemCount with zero extent = %d, want 0", n)
	}
	if n := ElemCount([]int{2, -3}); n != 0 {
		t.Errorf("ElemCount with negative extent = %d, want 0", n)
	}
}

func TestEqualShapes(t *testing.T) {
	if !EqualShapes([]int{1, 2}, []int{1, 2}) {
		t.Error("equal shapes reported unequal")
	}
	if EqualShapes([]int{1, 2}, []int{2, 1}) {
		t.Error("unequal shapes reported equal")
	}
	if EqualShapes([]int{1}, []int{1, 1}) {
		t.Error("different ranks reported equal")
	}
}
