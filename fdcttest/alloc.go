package fdcttest

import (
	"sync"
	"unsafe"
)

// CountingAllocator is a native.Allocator that tracks every block it hands
// out. Tests use it to prove that each owned allocation is freed exactly
// once and that nothing frees a block it does not own.
type CountingAllocator struct {
	mu          sync.Mutex
	live        map[*complex128]int
	Allocs      int
	Frees       int
	DoubleFrees int // frees of blocks not currently live
}

func NewCountingAllocator() *CountingAllocator {
	return &CountingAllocator{live: make(map[*complex128]int)}
}

func (a *CountingAllocator) Alloc(n int) ([]complex128, error) {
	data := make([]complex128, n)
	a.mu.Lock()
	a.Allocs++
	a.live[unsafe.SliceData(data)] = n
	a.mu.Unlock()
	return data, nil
}

func (a *CountingAllocator) Free(data []complex128) {
	key := unsafe.SliceData(data)
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.live[key]; !ok {
		a.DoubleFrees++
		return
	}
	delete(a.live, key)
	a.Frees++
}

// Outstanding returns the number of live (allocated, never freed) blocks.
func (a *CountingAllocator) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}
