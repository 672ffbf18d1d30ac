package fdcttest

import (
	"fmt"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/native"
)

// Library is a fake native.Library built on a band partition: the native
// first axis is split into one contiguous band per (scale, angle) leaf, so
// forward/inverse round-trip exactly. The first axis extent must be at least
// the total leaf count.
type Library struct {
	alloc native.Allocator

	// Fail injection for error-path tests.
	FailParam   error
	FailForward error
	FailInverse error
}

// New returns a fake library allocating through alloc. A nil alloc falls
// back to the heap allocator.
func New(alloc native.Allocator) *Library {
	if alloc == nil {
		alloc = native.HeapAllocator{}
	}
	return &Library{alloc: alloc}
}

func (l *Library) Allocator() native.Allocator { return l.alloc }

// AnglesPerScale mimics the real geometry: one wedge at the coarsest scale,
// a doubling angular resolution every other scale, and a single wedge at the
// finest scale when allCurvelets is false (wavelet top level).
func AnglesPerScale(nbscales, nbanglesCoarse int, allCurvelets bool) []int {
	angles := make([]int, nbscales)
	for s := range angles {
		switch {
		case s == 0:
			angles[s] = 1
		case !allCurvelets && s == nbscales-1:
			angles[s] = 1
		default:
			angles[s] = nbanglesCoarse << ((s - 1) / 2)
		}
	}
	return angles
}

type band struct{ start, stop int }

// partition splits extent m0 into count contiguous bands, the first m0%count
// of them one element longer.
func partition(m0, count int) []band {
	bands := make([]band, count)
	base, rem := m0/count, m0%count
	pos := 0
	for i := range bands {
		size := base
		if i < rem {
			size++
		}
		bands[i] = band{pos, pos + size}
		pos += size
	}
	return bands
}

func (l *Library) validate(dims []int, nbscales, nbanglesCoarse int) ([]int, error) {
	if len(dims) != 2 && len(dims) != 3 {
		return nil, fmt.Errorf("fdcttest: rank %d not supported", len(dims))
	}
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("fdcttest: invalid dims %v", dims)
		}
	}
	if nbscales < 1 || nbanglesCoarse < 1 {
		return nil, fmt.Errorf("fdcttest: nbscales=%d nbangles_coarse=%d out of range", nbscales, nbanglesCoarse)
	}
	return dims, nil
}

func (l *Library) Param(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool) (*native.ParamSet, error) {
	if l.FailParam != nil {
		return nil, l.FailParam
	}
	dims, err := l.validate(dims, nbscales, nbanglesCoarse)
	if err != nil {
		return nil, err
	}
	angles := AnglesPerScale(nbscales, nbanglesCoarse, allCurvelets)
	leaves := 0
	for _, a := range angles {
		leaves += a
	}
	if dims[0] < leaves {
		return nil, fmt.Errorf("fdcttest: first extent %d smaller than %d leaves", dims[0], leaves)
	}
	bands := partition(dims[0], leaves)

	rank := len(dims)
	ps := &native.ParamSet{
		AnglesPerScale: angles,
		Extents:        make([][]int, rank),
		Frequency:      make([][]float64, rank),
	}
	for ax := 0; ax < rank; ax++ {
		ps.Extents[ax] = make([]int, leaves)
		ps.Frequency[ax] = make([]float64, leaves)
	}
	if rank == 2 {
		ps.Sample = make([][]float64, rank)
		for ax := range ps.Sample {
			ps.Sample[ax] = make([]float64, leaves)
		}
	}
	for leaf, b := range bands {
		ps.Extents[0][leaf] = b.stop - b.start
		ps.Frequency[0][leaf] = float64(b.start+b.stop) / (2 * float64(dims[0]))
		for ax := 1; ax < rank; ax++ {
			ps.Extents[ax][leaf] = dims[ax]
			ps.Frequency[ax][leaf] = 0.5
		}
		if ps.Sample != nil {
			ps.Sample[0][leaf] = float64(b.start) / float64(dims[0])
		}
	}
	return ps, nil
}

func (l *Library) Forward(nbscales, nbanglesCoarse int, allCurvelets bool, input *native.Container) ([][]*native.Container, error) {
	if l.FailForward != nil {
		return nil, l.FailForward
	}
	dims := input.Extents()
	ps, err := l.Param(dims, nbscales, nbanglesCoarse, allCurvelets)
	if err != nil {
		return nil, err
	}
	bands := partition(dims[0], ps.Leaves())
	rest := buffer.ElemCount(dims) / dims[0]
	src := input.Data()

	out := make([][]*native.Container, len(ps.AnglesPerScale))
	leaf := 0
	for s, na := range ps.AnglesPerScale {
		out[s] = make([]*native.Container, na)
		for a := 0; a < na; a++ {
			b := bands[leaf]
			size := b.stop - b.start
			data, err := l.alloc.Alloc(size * rest)
			if err != nil {
				return nil, err
			}
			// Gather: axis 0 is fastest, so each band slab is contiguous
			// per trailing index.
			for idx := 0; idx < rest; idx++ {
				copy(data[idx*size:(idx+1)*size], src[idx*dims[0]+b.start:idx*dims[0]+b.stop])
			}
			extents := append([]int{size}, dims[1:]...)
			out[s][a] = native.NewOwned(extents, data)
			leaf++
		}
	}
	return out, nil
}

func (l *Library) Inverse(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool, coeffs [][]*native.Container) (*native.Container, error) {
	if l.FailInverse != nil {
		return nil, l.FailInverse
	}
	ps, err := l.Param(dims, nbscales, nbanglesCoarse, allCurvelets)
	if err != nil {
		return nil, err
	}
	bands := partition(dims[0], ps.Leaves())
	rest := buffer.ElemCount(dims) / dims[0]

	data, err := l.alloc.Alloc(buffer.ElemCount(dims))
	if err != nil {
		return nil, err
	}
	leaf := 0
	for s := range coeffs {
		for _, c := range coeffs[s] {
			b := bands[leaf]
			size := b.stop - b.start
			if c.Len() != size*rest {
				l.alloc.Free(data)
				return nil, fmt.Errorf("fdcttest: leaf %d has %d elements, want %d", leaf, c.Len(), size*rest)
			}
			src := c.Data()
			for idx := 0; idx < rest; idx++ {
				copy(data[idx*dims[0]+b.start:idx*dims[0]+b.stop], src[idx*size:(idx+1)*size])
			}
			leaf++
		}
	}
	if leaf != len(bands) {
		l.alloc.Free(data)
		return nil, fmt.Errorf("fdcttest: %d leaves supplied, want %d", leaf, len(bands))
	}
	return native.NewOwned(dims, data), nil
}
