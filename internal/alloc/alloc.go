// Package alloc defines the allocator contract backing the compositor's pixel
// storage. Allocation failure is unrecoverable for the program.
package alloc

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"
)

// ErrOutOfMemory is returned when an allocation cannot be satisfied.
var ErrOutOfMemory = errors.New("out of memory")

// Allocator hands out aligned byte regions.
type Allocator interface {
	// Alloc returns size bytes whose first byte is aligned to align.
	// Contents are unspecified.
	Alloc(size, align int) ([]byte, error)
	// AllocZeroed is Alloc with the region cleared.
	AllocZeroed(size, align int) ([]byte, error)
	// Free releases a region returned by Alloc or AllocZeroed.
	Free(b []byte)
}

// Heap allocates from the Go heap. Alignment is met by over-allocating by
// align bytes and slicing at the first aligned offset.
type Heap struct{}

// Alloc implements Allocator.
func (Heap) Alloc(size, align int) ([]byte, error) {
	align, err := normalizeAlign(align)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrOutOfMemory, size)
	}
	n := max(size, 1)
	total := n + align - 1
	if total < n {
		return nil, fmt.Errorf("%w: size %d overflows with align %d", ErrOutOfMemory, size, align)
	}
	raw := make([]byte, total)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := int((uintptr(align) - addr%uintptr(align)) % uintptr(align))
	return raw[off : off+size : off+n], nil
}

// AllocZeroed implements Allocator. Go heap memory is already zeroed.
func (h Heap) AllocZeroed(size, align int) ([]byte, error) {
	return h.Alloc(size, align)
}

// Free implements Allocator. The garbage collector reclaims the region.
func (Heap) Free([]byte) {}

func normalizeAlign(align int) (int, error) {
	if align <= 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return 0, fmt.Errorf("%w: alignment %d is not a power of two", ErrOutOfMemory, align)
	}
	return max(align, int(unsafe.Sizeof(uintptr(0)))), nil
}

// Budget caps the bytes outstanding through an underlying allocator.
type Budget struct {
	next  Allocator
	limit int

	mu    sync.Mutex
	used  int
	sizes map[*byte]int
}

// NewBudget wraps next so that at most limit bytes are outstanding.
func NewBudget(next Allocator, limit int) *Budget {
	return &Budget{next: next, limit: limit, sizes: make(map[*byte]int)}
}

// Used returns the bytes currently outstanding.
func (b *Budget) Used() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

// Alloc implements Allocator.
func (b *Budget) Alloc(size, align int) ([]byte, error) {
	return b.alloc(size, align, false)
}

// AllocZeroed implements Allocator.
func (b *Budget) AllocZeroed(size, align int) ([]byte, error) {
	return b.alloc(size, align, true)
}

func (b *Budget) alloc(size, align int, zeroed bool) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if size > b.limit-b.used {
		return nil, fmt.Errorf("%w: %d bytes requested, %d of %d in use", ErrOutOfMemory, size, b.used, b.limit)
	}
	var (
		mem []byte
		err error
	)
	if zeroed {
		mem, err = b.next.AllocZeroed(size, align)
	} else {
		mem, err = b.next.Alloc(size, align)
	}
	if err != nil {
		return nil, err
	}
	b.used += size
	b.sizes[unsafe.SliceData(mem)] = size
	return mem, nil
}

// Free implements Allocator. Regions not allocated by b are ignored.
func (b *Budget) Free(mem []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := unsafe.SliceData(mem)
	size, ok := b.sizes[key]
	if !ok {
		return
	}
	delete(b.sizes, key)
	b.used -= size
	b.next.Free(mem)
}
