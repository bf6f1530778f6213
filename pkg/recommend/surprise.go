package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Picker selects catalog positions uniformly at random. It is safe for
// concurrent use.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker returns a Picker seeded with seed. Equal seeds yield equal
// sequences.
func NewPicker(seed uint64) *Picker {
	return &Picker{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns a position in [0, n).
func (p *Picker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(n)
}

// Surprise picks a random title and recommends topN movies like it. The
// picked title goes through the same first-match lookup as a typed query,
// so a duplicate title resolves to its earliest catalog entry.
func (r *Recommender) Surprise(ctx context.Context, picker *Picker, topN int) (*Result, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be a positive integer, got %d", ErrInvalidArgument, topN)
	}
	if r.catalog.Len() == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrNotFound)
	}

	pos := picker.Pick(r.catalog.Len())
	title := r.catalog.At(pos).PrimaryTitle
	if first, ok := r.catalog.FindTitle(title); ok && title != "" {
		pos = first
	}

	r.logger.Debug("surprise pick", "title", title, "position", pos)
	return r.recommendAt(ctx, title, pos, topN)
}
