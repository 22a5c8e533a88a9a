package application

import (
	"context"
	"iter"
)

// PrimeSource yields every prime <= bound in ascending order.
type PrimeSource interface {
	Primes(ctx context.Context, bound uint64) (iter.Seq[uint64], error)
}
