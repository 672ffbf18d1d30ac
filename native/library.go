package native

// Allocator allocates and frees native storage blocks. Implementations back
// the Owned side of the container lifecycle; the bridge records the exact
// block at hand-off and frees it through the same allocator, exactly once.
type Allocator interface {
	Alloc(n int) ([]complex128, error)
	Free(data []complex128)
}

// HeapAllocator allocates on the Go heap. Free is a no-op: the garbage
// collector reclaims blocks once the owning buffer drops them. It still
// participates in the exactly-once release discipline so that counting
// allocators can be substituted in tests.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(n int) ([]complex128, error) {
	return make([]complex128, n), nil
}

func (HeapAllocator) Free(data []complex128) {}

// ParamSet is the native library's raw parameter output: one flat list per
// axis, segmented implicitly by scale and angle in scale-major order. Axis 0
// is the native first (fastest) axis. The bridge nests and axis-reverses this
// into its Geometry type; this package keeps the library's own layout.
type ParamSet struct {
	// AnglesPerScale holds the number of angular wedges at each scale.
	AnglesPerScale []int
	// Extents[axis][leaf] is the sub-array extent along axis for the leaf at
	// flat index leaf (scale-major over AnglesPerScale).
	Extents [][]int
	// Frequency[axis][leaf] is the center frequency coordinate along axis.
	Frequency [][]float64
	// Sample[axis][leaf] is the sample (spatial) coordinate along axis, or
	// nil when the library does not report sample coordinates for this rank.
	Sample [][]float64
}

// Leaves returns the total number of (scale, angle) leaves.
func (p *ParamSet) Leaves() int {
	n := 0
	for _, a := range p.AnglesPerScale {
		n += a
	}
	return n
}

// Library is the black-box native transform. Implementations own all
// numerics; the bridge owns all marshalling. Methods take dims in native
// axis order and exchange Containers per the ownership rules in the package
// documentation: Forward and Inverse receive borrowed views and return owned
// containers allocated through Allocator().
//
// Implementations are not assumed reentrant; callers serialize access unless
// an implementation documents otherwise.
type Library interface {
	// Param reports the decomposition geometry for the given dims. Pure
	// computation, no buffers.
	Param(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool) (*ParamSet, error)

	// Forward runs the forward transform on a borrowed input view and
	// returns one owned container per scale per angle. The returned scale
	// and angle counts are authoritative even when they differ from the
	// requested ones.
	Forward(nbscales, nbanglesCoarse int, allCurvelets bool, input *Container) ([][]*Container, error)

	// Inverse runs the inverse transform on borrowed coefficient views and
	// returns a single owned container of the given dims.
	Inverse(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool, coeffs [][]*Container) (*Container, error)

	// Allocator returns the allocator that owns this library's output
	// blocks. Hand-off release goes through it.
	Allocator() Allocator
}
