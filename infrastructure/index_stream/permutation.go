package index_stream

import (
	"stegano/domain/stego"
	"stegano/infrastructure/random"
)

// Permutation materializes [0, limit) and removes a uniformly chosen element
// per draw. Removal swaps with the tail, so each draw is O(1).
type Permutation struct {
	limit     int
	rng       *random.Seeded
	remaining []int
}

func NewPermutation(limit int, seed uint64) *Permutation {
	remaining := make([]int, limit)
	for i := range remaining {
		remaining[i] = i
	}
	return &Permutation{
		limit:     limit,
		rng:       random.NewSeeded(seed),
		remaining: remaining,
	}
}

func (p *Permutation) Next() (int, error) {
	n := len(p.remaining)
	if n == 0 {
		return 0, stego.ErrAddressSpaceExhausted
	}
	i := p.rng.IntN(n)
	v := p.remaining[i]
	p.remaining[i] = p.remaining[n-1]
	p.remaining = p.remaining[:n-1]
	return v, nil
}

func (p *Permutation) Limit() int {
	return p.limit
}
