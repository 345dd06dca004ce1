// internal/app/system/paging/paging.go
package paging

import (
	"fmt"
	"math"
	"sync"
)

// Default limits. Page numbers are 1-based.
const (
	DefaultSize = 10
	MaxSize     = 100
)

var (
	mu          sync.RWMutex
	defaultSize = DefaultSize
	maxSize     = MaxSize
)

// Configure overrides the default and maximum page size. Zero values are
// ignored. Call it during startup, before any request is served.
func Configure(def, upper int) {
	mu.Lock()
	defer mu.Unlock()
	if upper > 0 {
		maxSize = upper
	}
	if def > 0 {
		defaultSize = def
	}
	if defaultSize > maxSize {
		defaultSize = maxSize
	}
}

// Reset restores the package defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	defaultSize = DefaultSize
	maxSize = MaxSize
}

// Limits returns the current default and maximum page sizes.
func Limits() (def, upper int) {
	mu.RLock()
	defer mu.RUnlock()
	return defaultSize, maxSize
}

// Page identifies page Number (1-based) of Size items.
type Page struct {
	Number int
	Size   int
}

// New returns a page, substituting 1 for a zero number and the configured
// default for a zero size. Negative values are kept so Validate can reject them.
func New(number, size int) Page {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size, _ = Limits()
	}
	return Page{Number: number, Size: size}
}

// First is page 1 at the default size.
func First() Page {
	return New(1, 0)
}

// Validate enforces number >= 1, 1 <= size <= the configured maximum, and
// an Offset that fits in an int64.
func (p Page) Validate() error {
	_, upper := Limits()
	if p.Number < 1 {
		return fmt.Errorf("page number must be >= 1, got %d", p.Number)
	}
	if p.Size < 1 || p.Size > upper {
		return fmt.Errorf("page size must be between 1 and %d, got %d", upper, p.Size)
	}
	if int64(p.Number-1) > math.MaxInt64/int64(p.Size) {
		return fmt.Errorf("page number %d is too large for page size %d", p.Number, p.Size)
	}
	return nil
}

// Offset is the number of items before this page: (Number-1)*Size.
func (p Page) Offset() int64 {
	if p.Number <= 1 {
		return 0
	}
	return int64(p.Number-1) * int64(p.Size)
}

// Limit is the page size as the int64 the driver expects.
func (p Page) Limit() int64 {
	return int64(p.Size)
}

// Slice returns the items that fall on page p. A page past the end yields
// an empty, non-nil slice.
func Slice[T any](items []T, p Page) []T {
	off := p.Offset()
	if off >= int64(len(items)) || p.Size < 1 {
		return []T{}
	}
	end := off + p.Limit()
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[off:end]
}
