package buffer

// Layout helpers shared by the host-facing and native-facing sides of the
// bridge. External buffers are row-major (last axis fastest in memory); the
// native library is column-major (first axis fastest). The two conventions
// meet through axis reversal: a row-major block of shape s is, byte for byte,
// a column-major block of shape reverse(s).

// RowMajorStrides returns element strides for a contiguous row-major layout.
func RowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// ColMajorStrides returns element strides for a contiguous column-major layout.
func ColMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := 0; i < len(shape); i++ {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// ReverseAxes returns a copy of shape with the axis order reversed.
func ReverseAxes(shape []int) []int {
	out := make([]int, len(shape))
	for i, v := range shape {
		out[len(shape)-1-i] = v
	}
	return out
}

// ElemCount returns the number of elements in a shape, or 0 if any extent
// is non-positive.
func ElemCount(shape []int) int {
	if len(shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range shape {
		if d <= 0 {
			return 0
		}
		n *= d
	}
	return n
}

// EqualShapes reports whether two shapes have identical rank and extents.
func EqualShapes(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
