package primes

import (
	"context"
	"iter"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// bounds below this sieve as a single segment
	smallBoundCutoff = 10_000
	// segments per worker; more segments smooth out uneven marking cost
	segmentsPerWorker = 8
	wordBits          = 64
)

// Sieve is a segmented, odd-only sieve of Eratosthenes.
// The first ("root") segment is sized to hold sqrt(bound) and is sieved serially;
// every other segment is then marked concurrently, each goroutine owning its
// own bitset and reading only the shared, immutable small-prime list.
type Sieve struct {
	workers int
}

func NewSieve(workers int) *Sieve {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Sieve{
		workers: workers,
	}
}

// segment covers odd numbers [toNumber(start), toNumber(start+length-1)].
// A set bit marks a composite.
type segment struct {
	start  uint64
	length uint64
	bits   []uint64
}

func newSegment(start, length uint64) *segment {
	return &segment{
		start:  start,
		length: length,
		bits:   make([]uint64, (length+wordBits-1)/wordBits),
	}
}

func (s *segment) composite(i uint64) bool {
	return s.bits[i/wordBits]&(1<<(i%wordBits)) != 0
}

func (s *segment) mark(i uint64) {
	s.bits[i/wordBits] |= 1 << (i % wordBits)
}

func (s *segment) firstNumber() uint64 {
	return toNumber(s.start)
}

// odd numbers n >= 3 map to index (n-3)/2
func toIndex(n uint64) uint64 {
	return (n - 3) / 2
}

func toNumber(i uint64) uint64 {
	return 2*i + 3
}

// Primes returns every prime <= bound in ascending order. Sieving happens
// eagerly; the returned sequence only walks the finished bitsets.
func (s *Sieve) Primes(ctx context.Context, bound uint64) (iter.Seq[uint64], error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if bound < 3 {
		return func(yield func(uint64) bool) {
			if bound == 2 {
				yield(2)
			}
		}, nil
	}

	segments := s.layout(bound)
	small := sieveRoot(segments[0], bound)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for _, seg := range segments[1:] {
		eg.Go(func() error {
			return markSegment(egCtx, seg, small)
		})
	}
	if waitErr := eg.Wait(); waitErr != nil {
		return nil, waitErr
	}

	return func(yield func(uint64) bool) {
		if !yield(2) {
			return
		}
		for _, seg := range segments {
			for i := uint64(0); i < seg.length; i++ {
				if !seg.composite(i) && !yield(toNumber(seg.start+i)) {
					return
				}
			}
		}
	}, nil
}

// layout splits the odd numbers in [3, bound] into segments.
func (s *Sieve) layout(bound uint64) []*segment {
	oddMax := bound
	if oddMax%2 == 0 {
		oddMax--
	}
	total := toIndex(oddMax) + 1
	rootLength := toIndex(max(isqrt(bound), 3)) + 1

	typical := total
	if bound >= smallBoundCutoff {
		typical = padded(total/uint64(segmentsPerWorker*s.workers) + 1)
	}

	first := max(typical, padded(rootLength))
	if first > total {
		first = total
	}

	segments := []*segment{newSegment(0, first)}
	for start := first; start < total; start += typical {
		length := min(typical, total-start)
		segments = append(segments, newSegment(start, length))
	}
	return segments
}

// sieveRoot sieves the root segment in place and returns the primes <= sqrt(bound).
func sieveRoot(root *segment, bound uint64) []uint64 {
	limit := isqrt(bound)
	small := make([]uint64, 0, 64)
	for i := uint64(0); i < root.length; i++ {
		p := toNumber(i)
		if p > limit {
			break
		}
		if root.composite(i) {
			continue
		}
		small = append(small, p)
		for j := toIndex(p * p); j < root.length; j += p {
			root.mark(j)
		}
	}
	return small
}

func markSegment(ctx context.Context, seg *segment, small []uint64) error {
	lo := seg.firstNumber()
	for _, p := range small {
		if err := ctx.Err(); err != nil {
			return err
		}
		first := max(p*p, (lo+p-1)/p*p)
		if first%2 == 0 {
			first += p
		}
		for j := toIndex(first) - seg.start; j < seg.length; j += p {
			seg.mark(j)
		}
	}
	return nil
}

func padded(length uint64) uint64 {
	if r := length % wordBits; r != 0 {
		return length + wordBits - r
	}
	return length
}

func isqrt(n uint64) uint64 {
	r := min(uint64(math.Sqrt(float64(n))), math.MaxUint32)
	for r*r > n {
		r--
	}
	for r < math.MaxUint32 && (r+1)*(r+1) <= n {
		r++
	}
	return r
}
