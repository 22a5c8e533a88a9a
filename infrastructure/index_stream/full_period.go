package index_stream

import (
	"context"
	"stegano/application"
	"stegano/domain/stego"
	"stegano/infrastructure/lcg"
	"stegano/infrastructure/random"
)

// FullPeriod walks one period of a full-period LCG whose modulus is the unit count.
// The starting state and the increment are both derived from the seed. The
// generator is only read, so several streams may share one orbit.
type FullPeriod[T lcg.Unsigned] struct {
	generator *lcg.Generator[T]
	limit     int
	cursor    int
}

func NewFullPeriod[T lcg.Unsigned](
	ctx context.Context,
	primes application.PrimeSource,
	limit int,
	seed uint64,
) (*FullPeriod[T], error) {
	generator, generatorErr := newGenerator[T](ctx, primes, limit, seed)
	if generatorErr != nil {
		return nil, generatorErr
	}
	return newFullPeriodOver(generator, limit), nil
}

func newGenerator[T lcg.Unsigned](
	ctx context.Context,
	primes application.PrimeSource,
	limit int,
	seed uint64,
) (*lcg.Generator[T], error) {
	x0 := random.NewSeeded(seed).Uint64N(uint64(limit))
	return lcg.New[T](ctx, primes, T(limit), T(x0), seed)
}

func newFullPeriodOver[T lcg.Unsigned](generator *lcg.Generator[T], limit int) *FullPeriod[T] {
	return &FullPeriod[T]{
		generator: generator,
		limit:     limit,
	}
}

func (f *FullPeriod[T]) Next() (int, error) {
	if f.cursor >= f.limit {
		return 0, stego.ErrAddressSpaceExhausted
	}
	v := f.generator.Get(f.cursor % f.limit)
	f.cursor++
	return int(v), nil
}

func (f *FullPeriod[T]) Limit() int {
	return f.limit
}
