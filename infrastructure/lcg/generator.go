package lcg

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"stegano/application"
	"stegano/infrastructure/random"
)

var (
	ErrZeroModulus     = errors.New("lcg: modulus must be positive")
	ErrModulusTooLarge = errors.New("lcg: modulus does not fit an orbit slice")
)

type Unsigned interface {
	~uint32 | ~uint64
}

// Generator is a full-period linear congruential generator with its whole
// period materialized. Parameters satisfy Hull–Dobell, so Orbit() is a
// permutation of [0, modulus).
// Concurrency: NOT safe.
type Generator[T Unsigned] struct {
	modulus    T
	multiplier T
	increment  T
	orbit      []T
	cursor     int
}

// New builds the generator for modulus m starting at x0 (reduced mod m).
// seed drives the choice of increment among the primes that do not divide m.
func New[T Unsigned](
	ctx context.Context,
	primes application.PrimeSource,
	modulus T,
	x0 T,
	seed uint64,
) (*Generator[T], error) {
	m := uint64(modulus)
	if m == 0 {
		return nil, ErrZeroModulus
	}
	if m > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: %d", ErrModulusTooLarge, m)
	}

	multiplier, increment, paramsErr := parameters(ctx, primes, m, seed)
	if paramsErr != nil {
		return nil, paramsErr
	}

	g := &Generator[T]{
		modulus:    modulus,
		multiplier: T(multiplier),
		increment:  T(increment),
		orbit:      make([]T, m),
	}

	x := uint64(x0) % m
	g.orbit[0] = T(x)
	for i := 1; i < len(g.orbit); i++ {
		x = mulAddMod(multiplier, x, increment, m)
		g.orbit[i] = T(x)
	}

	return g, nil
}

// parameters picks (a, c) for modulus m:
// c is drawn among primes <= m that do not divide m (1 if there are none),
// a-1 is divisible by every prime factor of m, and by 4 when 4 divides m.
func parameters(
	ctx context.Context,
	primes application.PrimeSource,
	m uint64,
	seed uint64,
) (uint64, uint64, error) {
	seq, primesErr := primes.Primes(ctx, m)
	if primesErr != nil {
		return 0, 0, fmt.Errorf("lcg: could not obtain primes up to %d: %w", m, primesErr)
	}

	rng := random.NewSeeded(seed)
	product := uint64(1)
	increment := uint64(1)
	candidates := uint64(0)

	consider := func(p uint64) {
		if m%p == 0 {
			product *= p
			return
		}
		// reservoir sampling keeps memory flat for large m
		candidates++
		if rng.Uint64N(candidates) == 0 {
			increment = p
		}
	}

	for p := range seq {
		consider(p)
	}
	// sentinel 1 divides every modulus, covering prime and unit moduli
	consider(1)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, 0, ctxErr
	}

	var multiplier uint64
	if m%4 == 0 {
		if product%4 == 0 {
			multiplier = mulAddMod(1, product, 1, m)
		} else {
			multiplier = mulAddMod(4, product, 1, m)
		}
	} else {
		multiplier = mulAddMod(1, product, 1, m)
	}

	return multiplier, increment % m, nil
}

// mulAddMod returns (a*x + c) mod m without overflow.
func mulAddMod(a, x, c, m uint64) uint64 {
	hi, lo := bits.Mul64(a, x)
	lo, carry := bits.Add64(lo, c, 0)
	hi += carry
	return bits.Rem64(hi, lo, m)
}

// Next returns the next orbit value, wrapping after a full period.
func (g *Generator[T]) Next() T {
	v := g.orbit[g.cursor]
	g.cursor = (g.cursor + 1) % len(g.orbit)
	return v
}

func (g *Generator[T]) Reset() {
	g.cursor = 0
}

func (g *Generator[T]) Get(i int) T {
	return g.orbit[i]
}

// Orbit exposes the materialized period. Callers must not mutate it.
func (g *Generator[T]) Orbit() []T {
	return g.orbit
}

func (g *Generator[T]) Modulus() T {
	return g.modulus
}

func (g *Generator[T]) Multiplier() T {
	return g.multiplier
}

func (g *Generator[T]) Increment() T {
	return g.increment
}
