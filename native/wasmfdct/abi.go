package wasmfdct

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/PyLops/curvelops/native"
)

// Guest export names.
const (
	exportMemory  = "memory"
	exportAlloc   = "cl_alloc"
	exportFree    = "cl_free"
	exportParam   = "fdct_param"
	exportForward = "fdct_forward"
	exportInverse = "fdct_inverse"
)

// complexSize is the wire size of one complex sample: two f64 words.
const complexSize = 16

// Sanity bounds for descriptor decoding. A corrupt descriptor must fail
// cleanly instead of driving huge allocations.
const (
	maxScales = 64
	maxAngles = 1 << 20
)

// guestMemory is the subset of wazero's api.Memory the descriptor codecs
// touch. Tests implement it over a plain byte slice.
type guestMemory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	ReadUint32Le(offset uint32) (uint32, bool)
	WriteUint32Le(offset uint32, v uint32) bool
	ReadFloat64Le(offset uint32) (float64, bool)
	WriteFloat64Le(offset uint32, v float64) bool
}

// reader walks a descriptor sequentially, latching the first out-of-bounds
// access so call sites check the error once at the end.
type reader struct {
	mem guestMemory
	off uint32
	err error
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	v, ok := r.mem.ReadUint32Le(r.off)
	if !ok {
		r.err = fmt.Errorf("descriptor read out of bounds at offset %d", r.off)
		return 0
	}
	r.off += 4
	return v
}

func (r *reader) f64() float64 {
	if r.err != nil {
		return 0
	}
	v, ok := r.mem.ReadFloat64Le(r.off)
	if !ok {
		r.err = fmt.Errorf("descriptor read out of bounds at offset %d", r.off)
		return 0
	}
	r.off += 8
	return v
}

// writer mirrors reader for descriptor assembly.
type writer struct {
	mem guestMemory
	off uint32
	err error
}

func (w *writer) u32(v uint32) {
	if w.err != nil {
		return
	}
	if !w.mem.WriteUint32Le(w.off, v) {
		w.err = fmt.Errorf("descriptor write out of bounds at offset %d", w.off)
		return
	}
	w.off += 4
}

// readAngles decodes and bounds-checks the shared nscales/nangles prefix.
func readAngles(r *reader) ([]int, error) {
	nscales := r.u32()
	if r.err != nil {
		return nil, r.err
	}
	if nscales == 0 || nscales > maxScales {
		return nil, fmt.Errorf("descriptor reports %d scales", nscales)
	}
	angles := make([]int, nscales)
	for s := range angles {
		na := r.u32()
		if r.err != nil {
			return nil, r.err
		}
		if na == 0 || na > maxAngles {
			return nil, fmt.Errorf("descriptor reports %d angles at scale %d", na, s)
		}
		angles[s] = int(na)
	}
	return angles, nil
}

// readParamDesc decodes a parameter descriptor written by fdct_param.
func readParamDesc(mem guestMemory, ptr uint32, rank int) (*native.ParamSet, error) {
	r := &reader{mem: mem, off: ptr}
	nscales := r.u32()
	hasSample := r.u32()
	if r.err != nil {
		return nil, r.err
	}
	if nscales == 0 || nscales > maxScales {
		return nil, fmt.Errorf("descriptor reports %d scales", nscales)
	}
	if hasSample > 1 {
		return nil, fmt.Errorf("descriptor sample flag %d", hasSample)
	}
	angles := make([]int, nscales)
	leaves := 0
	for s := range angles {
		na := r.u32()
		if na == 0 || na > maxAngles {
			if r.err != nil {
				return nil, r.err
			}
			return nil, fmt.Errorf("descriptor reports %d angles at scale %d", na, s)
		}
		angles[s] = int(na)
		leaves += int(na)
	}

	ps := &native.ParamSet{
		AnglesPerScale: angles,
		Extents:        make([][]int, rank),
		Frequency:      make([][]float64, rank),
	}
	for ax := 0; ax < rank; ax++ {
		ps.Extents[ax] = make([]int, leaves)
		ps.Frequency[ax] = make([]float64, leaves)
	}
	if hasSample == 1 {
		ps.Sample = make([][]float64, rank)
		for ax := range ps.Sample {
			ps.Sample[ax] = make([]float64, leaves)
		}
	}
	for leaf := 0; leaf < leaves; leaf++ {
		for ax := 0; ax < rank; ax++ {
			ps.Extents[ax][leaf] = int(r.u32())
		}
		for ax := 0; ax < rank; ax++ {
			ps.Frequency[ax][leaf] = r.f64()
		}
		if ps.Sample != nil {
			for ax := 0; ax < rank; ax++ {
				ps.Sample[ax][leaf] = r.f64()
			}
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return ps, nil
}

// coeffLeaf pairs a leaf's guest-side extents with the guest pointer to its
// complex samples.
type coeffLeaf struct {
	extents []int
	data    uint32
}

// readCoeffDesc decodes a coefficient descriptor written by fdct_forward.
func readCoeffDesc(mem guestMemory, ptr uint32, rank int) ([]int, []coeffLeaf, error) {
	r := &reader{mem: mem, off: ptr}
	angles, err := readAngles(r)
	if err != nil {
		return nil, nil, err
	}
	leaves := 0
	for _, na := range angles {
		leaves += na
	}
	out := make([]coeffLeaf, leaves)
	for leaf := range out {
		extents := make([]int, rank)
		for ax := range extents {
			extents[ax] = int(r.u32())
		}
		out[leaf] = coeffLeaf{extents: extents, data: r.u32()}
	}
	if r.err != nil {
		return nil, nil, r.err
	}
	return angles, out, nil
}

// coeffDescSize returns the byte size of a coefficient descriptor for the
// given geometry.
func coeffDescSize(rank int, angles []int) uint32 {
	leaves := 0
	for _, na := range angles {
		leaves += na
	}
	return uint32(4 + 4*len(angles) + leaves*(4*rank+4))
}

// writeCoeffDesc assembles a coefficient descriptor at ptr for fdct_inverse.
func writeCoeffDesc(mem guestMemory, ptr uint32, angles []int, leaves []coeffLeaf) error {
	w := &writer{mem: mem, off: ptr}
	w.u32(uint32(len(angles)))
	for _, na := range angles {
		w.u32(uint32(na))
	}
	for _, leaf := range leaves {
		for _, ext := range leaf.extents {
			w.u32(uint32(ext))
		}
		w.u32(leaf.data)
	}
	return w.err
}

// decodeLeafData copies every leaf payload out of guest memory into Go
// slices, freeing each guest block as it is consumed. On failure the failing
// leaf's block and all remaining blocks are freed before returning, so a
// corrupt descriptor never leaks guest memory.
func decodeLeafData(mem guestMemory, leaves []coeffLeaf, free func(uint32)) ([][]complex128, error) {
	out := make([][]complex128, len(leaves))
	for i, cl := range leaves {
		n := 1
		for _, ext := range cl.extents {
			n *= ext
		}
		if n <= 0 {
			freeLeafData(leaves[i:], free)
			return nil, fmt.Errorf("leaf %d has extents %v", i, cl.extents)
		}
		b, ok := mem.Read(cl.data, uint32(n*complexSize))
		if !ok {
			freeLeafData(leaves[i:], free)
			return nil, fmt.Errorf("leaf %d: sample read out of bounds: ptr=%d count=%d", i, cl.data, n)
		}
		data, err := decodeComplex(b)
		free(cl.data)
		if err != nil {
			freeLeafData(leaves[i+1:], free)
			return nil, fmt.Errorf("leaf %d: %w", i, err)
		}
		out[i] = data
	}
	return out, nil
}

// freeLeafData releases the guest blocks of the given leaves.
func freeLeafData(leaves []coeffLeaf, free func(uint32)) {
	for _, cl := range leaves {
		free(cl.data)
	}
}

// decodeComplex converts wire bytes into complex samples.
func decodeComplex(b []byte) ([]complex128, error) {
	if len(b)%complexSize != 0 {
		return nil, fmt.Errorf("complex payload of %d bytes is not a multiple of %d", len(b), complexSize)
	}
	out := make([]complex128, len(b)/complexSize)
	for i := range out {
		re := math.Float64frombits(binary.LittleEndian.Uint64(b[i*complexSize:]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(b[i*complexSize+8:]))
		out[i] = complex(re, im)
	}
	return out, nil
}

// encodeComplex converts complex samples into wire bytes.
func encodeComplex(src []complex128) []byte {
	b := make([]byte, len(src)*complexSize)
	for i, c := range src {
		binary.LittleEndian.PutUint64(b[i*complexSize:], math.Float64bits(real(c)))
		binary.LittleEndian.PutUint64(b[i*complexSize+8:], math.Float64bits(imag(c)))
	}
	return b
}
