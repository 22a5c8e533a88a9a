package index_stream

import (
	"context"
	"fmt"
	"math"
	"stegano/application"
	"stegano/domain/stego"
	"stegano/infrastructure/lcg"

	lru "github.com/hashicorp/golang-lru/v2"
)

// orbitCacheSize bounds how many materialized orbits are kept. An encode
// followed by a decode of the same carrier needs one.
const orbitCacheSize = 4

type orbitKey struct {
	limit int
	seed  uint64
}

type Factory struct {
	primes application.PrimeSource
	orbits *lru.Cache[orbitKey, any]
}

func NewFactory(primes application.PrimeSource) application.IndexStreamFactory {
	// lru.New only fails for a non-positive size
	orbits, _ := lru.New[orbitKey, any](orbitCacheSize)
	return &Factory{
		primes: primes,
		orbits: orbits,
	}
}

func (f *Factory) Create(
	ctx context.Context,
	strategy stego.Strategy,
	limit int,
	seed uint64,
) (application.IndexStream, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: carrier has no units", stego.ErrAddressSpaceExhausted)
	}

	switch strategy {
	case stego.FullPeriod:
		if uint64(limit) <= math.MaxUint32 {
			return fullPeriod[uint32](ctx, f, limit, seed)
		}
		return fullPeriod[uint64](ctx, f, limit, seed)
	case stego.Rejection:
		return NewRejection(limit, seed), nil
	case stego.Permutation:
		return NewPermutation(limit, seed), nil
	case stego.Sequential:
		return NewSequential(limit), nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %s", strategy)
	}
}

// fullPeriod reuses a cached orbit for the same unit count and seed. The
// orbit is kept at 32-bit width whenever the unit count allows.
func fullPeriod[T lcg.Unsigned](
	ctx context.Context,
	f *Factory,
	limit int,
	seed uint64,
) (application.IndexStream, error) {
	key := orbitKey{limit: limit, seed: seed}
	if cached, ok := f.orbits.Get(key); ok {
		if generator, isT := cached.(*lcg.Generator[T]); isT {
			return newFullPeriodOver(generator, limit), nil
		}
	}

	generator, generatorErr := newGenerator[T](ctx, f.primes, limit, seed)
	if generatorErr != nil {
		return nil, generatorErr
	}
	f.orbits.Add(key, generator)
	return newFullPeriodOver(generator, limit), nil
}
