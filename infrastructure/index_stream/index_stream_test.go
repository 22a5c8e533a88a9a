package index_stream

import (
	"context"
	"errors"
	"slices"
	"testing"

	"stegano/domain/stego"
	"stegano/infrastructure/primes"
)

var allStrategies = []stego.Strategy{
	stego.FullPeriod,
	stego.Rejection,
	stego.Permutation,
	stego.Sequential,
}

func drain(t *testing.T, s interface{ Next() (int, error) }, n int) []int {
	t.Helper()
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		v, err := s.Next()
		if err != nil {
			t.Fatalf("draw %d: unexpected error: %v", i, err)
		}
		out = append(out, v)
	}
	return out
}

func TestStrategies_CoverRangeWithoutRepeats(t *testing.T) {
	factory := NewFactory(primes.NewSieve(2))
	for _, strategy := range allStrategies {
		for _, limit := range []int{1, 2, 7, 64, 101, 1000} {
			stream, err := factory.Create(context.Background(), strategy, limit, 0xC0FFEE)
			if err != nil {
				t.Fatalf("%s limit=%d: create: %v", strategy, limit, err)
			}
			if stream.Limit() != limit {
				t.Fatalf("%s: Limit() = %d, want %d", strategy, stream.Limit(), limit)
			}
			got := drain(t, stream, limit)
			slices.Sort(got)
			for i, v := range got {
				if v != i {
					t.Fatalf("%s limit=%d: addresses are not a permutation of [0,%d)", strategy, limit, limit)
				}
			}
			if _, err := stream.Next(); !errors.Is(err, stego.ErrAddressSpaceExhausted) {
				t.Fatalf("%s limit=%d: expected ErrAddressSpaceExhausted, got %v", strategy, limit, err)
			}
		}
	}
}

func TestStrategies_DeterministicForSeed(t *testing.T) {
	factory := NewFactory(primes.NewSieve(1))
	for _, strategy := range allStrategies {
		a, _ := factory.Create(context.Background(), strategy, 500, 17)
		b, _ := factory.Create(context.Background(), strategy, 500, 17)
		if !slices.Equal(drain(t, a, 200), drain(t, b, 200)) {
			t.Fatalf("%s: streams with equal seeds diverged", strategy)
		}
	}
}

func TestRandomStrategies_AreNotSequential(t *testing.T) {
	factory := NewFactory(primes.NewSieve(1))
	for _, strategy := range []stego.Strategy{stego.FullPeriod, stego.Rejection, stego.Permutation} {
		stream, _ := factory.Create(context.Background(), strategy, 10_000, 99)
		got := drain(t, stream, 32)
		ordered := true
		for i, v := range got {
			if v != i {
				ordered = false
			}
		}
		if ordered {
			t.Fatalf("%s: expected scrambled addresses, got %v", strategy, got)
		}
	}
}

func TestSequential_Order(t *testing.T) {
	got := drain(t, NewSequential(5), 5)
	if !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestFactory_EmptyCarrier(t *testing.T) {
	factory := NewFactory(primes.NewSieve(1))
	for _, strategy := range allStrategies {
		if _, err := factory.Create(context.Background(), strategy, 0, 1); !errors.Is(err, stego.ErrAddressSpaceExhausted) {
			t.Fatalf("%s: expected ErrAddressSpaceExhausted for empty carrier, got %v", strategy, err)
		}
	}
}

func TestFactory_UnknownStrategy(t *testing.T) {
	factory := NewFactory(primes.NewSieve(1))
	if _, err := factory.Create(context.Background(), stego.Strategy(99), 10, 1); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestFactory_SharesOrbitBetweenStreams(t *testing.T) {
	factory := NewFactory(primes.NewSieve(1)).(*Factory)

	first, _ := factory.Create(context.Background(), stego.FullPeriod, 500, 7)
	half := drain(t, first, 250)

	second, _ := factory.Create(context.Background(), stego.FullPeriod, 500, 7)
	if factory.orbits.Len() != 1 {
		t.Fatalf("expected one cached orbit, got %d", factory.orbits.Len())
	}
	if got := drain(t, second, 250); !slices.Equal(got, half) {
		t.Fatal("expected a fresh stream over a cached orbit to start from the beginning")
	}

	_, _ = factory.Create(context.Background(), stego.FullPeriod, 500, 8)
	if factory.orbits.Len() != 2 {
		t.Fatalf("expected a second orbit for a new seed, got %d", factory.orbits.Len())
	}
}

func TestNewFullPeriod_WideOrbitMatchesNarrow(t *testing.T) {
	ctx := context.Background()
	narrow, err := NewFullPeriod[uint32](ctx, primes.NewSieve(1), 300, 42)
	if err != nil {
		t.Fatalf("uint32: %v", err)
	}
	wide, err := NewFullPeriod[uint64](ctx, primes.NewSieve(1), 300, 42)
	if err != nil {
		t.Fatalf("uint64: %v", err)
	}
	if got, want := drain(t, wide, 300), drain(t, narrow, 300); !slices.Equal(got, want) {
		t.Fatal("expected the orbit not to depend on the integer width")
	}
}
