package index_stream

import (
	"stegano/domain/stego"
	"stegano/infrastructure/random"
)

// Rejection draws uniform indices and rejects the ones already emitted.
// Memory grows with the number of draws; near exhaustion a draw may need
// O(limit) retries, so it suits payloads that are small relative to the carrier.
type Rejection struct {
	limit   int
	rng     *random.Seeded
	emitted map[int]struct{}
}

func NewRejection(limit int, seed uint64) *Rejection {
	return &Rejection{
		limit:   limit,
		rng:     random.NewSeeded(seed),
		emitted: make(map[int]struct{}),
	}
}

func (r *Rejection) Next() (int, error) {
	if len(r.emitted) >= r.limit {
		return 0, stego.ErrAddressSpaceExhausted
	}
	for {
		v := r.rng.IntN(r.limit)
		if _, used := r.emitted[v]; used {
			continue
		}
		r.emitted[v] = struct{}{}
		return v, nil
	}
}

func (r *Rejection) Limit() int {
	return r.limit
}
