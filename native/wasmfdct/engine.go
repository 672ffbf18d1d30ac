package wasmfdct

import (
	"context"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/PyLops/curvelops/buffer"
	"github.com/PyLops/curvelops/native"
)

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	MemoryLimitPages uint32
}

// Engine runs an FDCT core compiled to WebAssembly and exposes it as a
// native.Library. Guest calls are serialized with an internal mutex; the
// guest instance is single-threaded.
type Engine struct {
	mu      sync.Mutex
	ctx     context.Context
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
	alloc   api.Function
	free    api.Function
	param   api.Function
	forward api.Function
	inverse api.Function
	closed  bool
}

var _ native.Library = (*Engine)(nil)

// Open compiles and instantiates wasmBytes with default configuration.
func Open(ctx context.Context, wasmBytes []byte) (*Engine, error) {
	return OpenWithConfig(ctx, wasmBytes, nil)
}

// OpenWithConfig compiles and instantiates wasmBytes and resolves the guest
// exports. The returned engine must be released with Close.
func OpenWithConfig(ctx context.Context, wasmBytes []byte, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("compile failed: %w", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate failed: %w", err)
	}

	e := &Engine{
		ctx:     ctx,
		runtime: rt,
		mod:     mod,
		mem:     mod.Memory(),
	}
	if e.mem == nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("guest does not export %q", exportMemory)
	}
	for _, fn := range []struct {
		name string
		dst  *api.Function
	}{
		{exportAlloc, &e.alloc},
		{exportFree, &e.free},
		{exportParam, &e.param},
		{exportForward, &e.forward},
		{exportInverse, &e.inverse},
	} {
		f := mod.ExportedFunction(fn.name)
		if f == nil {
			rt.Close(ctx)
			return nil, fmt.Errorf("guest does not export %q", fn.name)
		}
		*fn.dst = f
	}

	Logger().Debug("wasmfdct engine ready",
		zap.Uint32("memory_bytes", e.mem.Size()))
	return e, nil
}

// Close releases the guest instance and its runtime.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.runtime.Close(ctx)
}

// Allocator returns the heap allocator: leaf payloads are decoded into Go
// slices before they leave this package, so nothing downstream ever frees
// guest memory.
func (e *Engine) Allocator() native.Allocator { return native.HeapAllocator{} }

func (e *Engine) guestAlloc(size int) (uint32, error) {
	res, err := e.alloc.Call(e.ctx, uint64(uint32(size)))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", exportAlloc, err)
	}
	ptr := uint32(res[0])
	if ptr == 0 {
		return 0, fmt.Errorf("%s: guest failed to allocate %d bytes", exportAlloc, size)
	}
	return ptr, nil
}

func (e *Engine) guestFree(ptr uint32) {
	if ptr == 0 {
		return
	}
	if _, err := e.free.Call(e.ctx, uint64(ptr)); err != nil {
		Logger().Warn("guest free failed",
			zap.Uint32("ptr", ptr),
			zap.Error(err))
	}
}

// writeDims uploads dims as little-endian u32 extents and returns the guest
// pointer.
func (e *Engine) writeDims(dims []int) (uint32, error) {
	ptr, err := e.guestAlloc(4 * len(dims))
	if err != nil {
		return 0, err
	}
	for i, d := range dims {
		if !e.mem.WriteUint32Le(ptr+uint32(4*i), uint32(d)) {
			e.guestFree(ptr)
			return 0, fmt.Errorf("dims write out of bounds")
		}
	}
	return ptr, nil
}

// writeComplex uploads samples and returns the guest pointer.
func (e *Engine) writeComplex(src []complex128) (uint32, error) {
	payload := encodeComplex(src)
	ptr, err := e.guestAlloc(len(payload))
	if err != nil {
		return 0, err
	}
	if !e.mem.Write(ptr, payload) {
		e.guestFree(ptr)
		return 0, fmt.Errorf("sample write out of bounds")
	}
	return ptr, nil
}

// readComplex copies n samples out of guest memory into a Go slice.
func (e *Engine) readComplex(ptr uint32, n int) ([]complex128, error) {
	b, ok := e.mem.Read(ptr, uint32(n*complexSize))
	if !ok {
		return nil, fmt.Errorf("sample read out of bounds: ptr=%d count=%d", ptr, n)
	}
	return decodeComplex(b)
}

func (e *Engine) check(dims []int) error {
	if e.closed {
		return fmt.Errorf("engine is closed")
	}
	if len(dims) == 0 {
		return fmt.Errorf("empty dims")
	}
	return nil
}

func boolArg(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func (e *Engine) Param(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool) (*native.ParamSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(dims); err != nil {
		return nil, err
	}

	dimsPtr, err := e.writeDims(dims)
	if err != nil {
		return nil, err
	}
	defer e.guestFree(dimsPtr)

	res, err := e.param.Call(e.ctx,
		uint64(len(dims)), uint64(dimsPtr),
		uint64(nbscales), uint64(nbanglesCoarse), boolArg(allCurvelets))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", exportParam, err)
	}
	desc := uint32(res[0])
	if desc == 0 {
		return nil, fmt.Errorf("%s rejected dims=%v nbscales=%d nbangles=%d", exportParam, dims, nbscales, nbanglesCoarse)
	}
	defer e.guestFree(desc)

	return readParamDesc(e.mem, desc, len(dims))
}

func (e *Engine) Forward(nbscales, nbanglesCoarse int, allCurvelets bool, input *native.Container) ([][]*native.Container, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dims := input.Extents()
	if err := e.check(dims); err != nil {
		return nil, err
	}

	dimsPtr, err := e.writeDims(dims)
	if err != nil {
		return nil, err
	}
	defer e.guestFree(dimsPtr)

	dataPtr, err := e.writeComplex(input.Data())
	if err != nil {
		return nil, err
	}
	defer e.guestFree(dataPtr)

	res, err := e.forward.Call(e.ctx,
		uint64(len(dims)), uint64(dimsPtr),
		uint64(nbscales), uint64(nbanglesCoarse), boolArg(allCurvelets),
		uint64(dataPtr))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", exportForward, err)
	}
	desc := uint32(res[0])
	if desc == 0 {
		return nil, fmt.Errorf("%s rejected dims=%v nbscales=%d nbangles=%d", exportForward, dims, nbscales, nbanglesCoarse)
	}
	defer e.guestFree(desc)

	angles, leaves, err := readCoeffDesc(e.mem, desc, len(dims))
	if err != nil {
		return nil, err
	}
	payloads, err := decodeLeafData(e.mem, leaves, e.guestFree)
	if err != nil {
		return nil, err
	}

	out := make([][]*native.Container, len(angles))
	leaf := 0
	for s, na := range angles {
		out[s] = make([]*native.Container, na)
		for a := 0; a < na; a++ {
			out[s][a] = native.NewOwned(leaves[leaf].extents, payloads[leaf])
			leaf++
		}
	}

	Logger().Debug("forward transform complete",
		zap.Ints("dims", dims),
		zap.Int("leaves", leaf))
	return out, nil
}

func (e *Engine) Inverse(dims []int, nbscales, nbanglesCoarse int, allCurvelets bool, coeffs [][]*native.Container) (*native.Container, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.check(dims); err != nil {
		return nil, err
	}

	angles := make([]int, len(coeffs))
	var leaves []coeffLeaf
	defer func() { freeLeafData(leaves, e.guestFree) }()
	for s := range coeffs {
		angles[s] = len(coeffs[s])
		for _, c := range coeffs[s] {
			ptr, err := e.writeComplex(c.Data())
			if err != nil {
				return nil, err
			}
			leaves = append(leaves, coeffLeaf{extents: c.Extents(), data: ptr})
		}
	}

	descPtr, err := e.guestAlloc(int(coeffDescSize(len(dims), angles)))
	if err != nil {
		return nil, err
	}
	defer e.guestFree(descPtr)
	if err := writeCoeffDesc(e.mem, descPtr, angles, leaves); err != nil {
		return nil, err
	}

	dimsPtr, err := e.writeDims(dims)
	if err != nil {
		return nil, err
	}
	defer e.guestFree(dimsPtr)

	res, err := e.inverse.Call(e.ctx,
		uint64(len(dims)), uint64(dimsPtr),
		uint64(nbscales), uint64(nbanglesCoarse), boolArg(allCurvelets),
		uint64(descPtr))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", exportInverse, err)
	}
	resPtr := uint32(res[0])
	if resPtr == 0 {
		return nil, fmt.Errorf("%s rejected dims=%v nbscales=%d nbangles=%d", exportInverse, dims, nbscales, nbanglesCoarse)
	}
	defer e.guestFree(resPtr)

	data, err := e.readComplex(resPtr, buffer.ElemCount(dims))
	if err != nil {
		return nil, err
	}

	Logger().Debug("inverse transform complete", zap.Ints("dims", dims))
	return native.NewOwned(dims, data), nil
}
