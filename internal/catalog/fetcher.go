package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/pranesta/storefront/internal/domain"
)

// LoadFailedMessage is the only failure notice the fetcher ever emits; the
// underlying cause is not surfaced to the user.
const LoadFailedMessage = "Unable to load products"

// Source supplies the product list, optionally filtered to one category.
type Source interface {
	Products(ctx context.Context, category string) ([]domain.Product, error)
}

// Fetcher loads the catalog and holds the current product list. Each load
// takes a sequence number; a completion that is no longer the latest issued
// load is discarded, so a slow stale response can never overwrite the result
// of a newer category selection. Concurrent loads of the same category are
// collapsed into a single backend request.
type Fetcher struct {
	source Source
	notify func(string)

	sfg singleflight.Group
	seq atomic.Uint64

	mu       sync.RWMutex
	products []domain.Product
	loading  bool
}

// NewFetcher wires the fetcher to its product source and the shared status
// slot's update function.
func NewFetcher(source Source, notify func(string)) *Fetcher {
	return &Fetcher{source: source, notify: notify}
}

// Load fetches products for the category ("" or "all" means unfiltered) and
// replaces the held list wholesale on success. On failure the previous list
// is left untouched and the fixed failure notice is emitted. The loading
// flag is owned by the latest issued load and always resets when that load
// completes.
func (f *Fetcher) Load(ctx context.Context, category string) {
	seq := f.seq.Add(1)

	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	v, err, _ := f.sfg.Do(category, func() (any, error) {
		return f.source.Products(ctx, category)
	})

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq.Load() {
		// Superseded by a newer load, which now owns the flag and the list.
		return
	}
	f.loading = false

	if err != nil {
		f.notify(LoadFailedMessage)
		return
	}
	f.products = v.([]domain.Product)
}

// Products returns a copy of the most recently loaded list.
func (f *Fetcher) Products() []domain.Product {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out
}

func (f *Fetcher) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}
