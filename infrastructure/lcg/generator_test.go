package lcg

import (
	"context"
	"errors"
	"iter"
	"testing"
)

// trialDivisionSource is a slow but obviously-correct prime source.
type trialDivisionSource struct {
	calls int
}

func (s *trialDivisionSource) Primes(_ context.Context, bound uint64) (iter.Seq[uint64], error) {
	s.calls++
	return func(yield func(uint64) bool) {
		for n := uint64(2); n <= bound; n++ {
			prime := true
			for d := uint64(2); d*d <= n; d++ {
				if n%d == 0 {
					prime = false
					break
				}
			}
			if prime && !yield(n) {
				return
			}
		}
	}, nil
}

type failingSource struct{}

func (failingSource) Primes(context.Context, uint64) (iter.Seq[uint64], error) {
	return nil, errors.New("cache offline")
}

func TestGenerator_OrbitIsPermutation(t *testing.T) {
	moduli := []uint32{1, 2, 3, 4, 5, 6, 10, 12, 17, 64, 100, 360, 1024, 9973}
	for _, m := range moduli {
		for seed := uint64(0); seed < 4; seed++ {
			g, err := New[uint32](context.Background(), &trialDivisionSource{}, m, m/3, seed)
			if err != nil {
				t.Fatalf("m=%d seed=%d: unexpected error: %v", m, seed, err)
			}
			seen := make([]bool, m)
			for i, v := range g.Orbit() {
				if v >= m {
					t.Fatalf("m=%d: orbit[%d]=%d out of range", m, i, v)
				}
				if seen[v] {
					t.Fatalf("m=%d seed=%d: value %d repeated at %d (a=%d c=%d)", m, seed, v, i, g.Multiplier(), g.Increment())
				}
				seen[v] = true
			}
		}
	}
}

func TestGenerator_HullDobellParameters(t *testing.T) {
	for _, m := range []uint64{4, 12, 36, 100, 1000, 7919} {
		g, err := New[uint64](context.Background(), &trialDivisionSource{}, m, 0, 99)
		if err != nil {
			t.Fatalf("m=%d: unexpected error: %v", m, err)
		}
		a, c := uint64(g.Multiplier()), uint64(g.Increment())
		if gcd(c, m) != 1 {
			t.Fatalf("m=%d: increment %d not coprime to modulus", m, c)
		}
		for p := uint64(2); p <= m; p++ {
			if m%p == 0 && isPrime(p) && (a+m-1)%p != 0 {
				t.Fatalf("m=%d: a-1 not divisible by prime factor %d (a=%d)", m, p, a)
			}
		}
		if m%4 == 0 && (a+m-1)%4 != 0 {
			t.Fatalf("m=%d: a-1 not divisible by 4 (a=%d)", m, a)
		}
	}
}

func TestGenerator_StartsAtReducedSeedState(t *testing.T) {
	g, err := New[uint32](context.Background(), &trialDivisionSource{}, 10, 23, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := g.Next(); got != 3 {
		t.Fatalf("expected first value 23 mod 10 = 3, got %d", got)
	}
}

func TestGenerator_NextWrapsWithoutSkipping(t *testing.T) {
	const m = 6
	g, err := New[uint32](context.Background(), &trialDivisionSource{}, m, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := make([]uint32, m)
	for i := range first {
		first[i] = g.Next()
	}
	for i := 0; i < m; i++ {
		if got := g.Next(); got != first[i] {
			t.Fatalf("second period diverged at %d: want %d, got %d", i, first[i], got)
		}
	}
	g.Reset()
	if got := g.Next(); got != first[0] {
		t.Fatalf("reset should restart the orbit: want %d, got %d", first[0], got)
	}
}

func TestGenerator_DeterministicForSeed(t *testing.T) {
	a, _ := New[uint32](context.Background(), &trialDivisionSource{}, 997*3, 11, 1234)
	b, _ := New[uint32](context.Background(), &trialDivisionSource{}, 997*3, 11, 1234)
	for i := range a.Orbit() {
		if a.Get(i) != b.Get(i) {
			t.Fatalf("orbits diverged at %d", i)
		}
	}
}

func TestGenerator_Errors(t *testing.T) {
	if _, err := New[uint32](context.Background(), &trialDivisionSource{}, 0, 0, 0); !errors.Is(err, ErrZeroModulus) {
		t.Fatalf("expected ErrZeroModulus, got %v", err)
	}
	if _, err := New[uint32](context.Background(), failingSource{}, 10, 0, 0); err == nil {
		t.Fatal("expected prime source error to propagate")
	}
}

func TestMulAddMod_NoOverflow(t *testing.T) {
	const m = ^uint64(0) - 58 // large prime-ish modulus
	a := m - 1
	x := m - 2
	// (m-1)(m-2) + 5 = m^2 - 3m + 7 ≡ 7 (mod m)
	if got := mulAddMod(a, x, 5, m); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for d := uint64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
