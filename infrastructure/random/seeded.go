package random

import "math/rand/v2"

const streamSalt = 0x9E3779B97F4A7C15

// Seeded is a deterministic generator. Its output must stay identical across
// builds: carriers written today are decoded with a stream rebuilt later.
// PCG's sequence is fixed by definition and the bounded reduction is local,
// so nothing depends on math/rand helper implementations.
type Seeded struct {
	pcg *rand.PCG
}

func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		pcg: rand.NewPCG(seed, seed^streamSalt),
	}
}

func (s *Seeded) Uint64() uint64 {
	return s.pcg.Uint64()
}

// Uint64N returns a uniform value in [0, n). n == 0 yields 0.
func (s *Seeded) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	// 2^64 mod n; values below it would bias the modulo.
	threshold := -n % n
	for {
		v := s.pcg.Uint64()
		if v >= threshold {
			return v % n
		}
	}
}

func (s *Seeded) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Uint64N(uint64(n)))
}
