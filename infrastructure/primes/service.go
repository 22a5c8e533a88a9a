package primes

import (
	"context"
	"errors"
	"iter"
	"os"
	"slices"
	"sync"
	"stegano/application/logging"
)

var (
	ErrServiceNotStarted = errors.New("prime service is not started")
	ErrServiceStopped    = errors.New("prime service is stopped")
)

const (
	DefaultFlushBatch = 300
	DefaultCeiling    = 1_000_000
	// candidates tested between frontier publications
	publishEvery = 512
)

type ServiceSettings struct {
	// FlushBatch is how many new primes are buffered before appending to the store.
	FlushBatch int
	// Ceiling is the initial upper bound the worker grows the cache to.
	Ceiling uint64
}

// Service is a process-wide, monotonically growing prime cache.
//
// A single worker goroutine extends the list by trial division and publishes
// progress in batches; readers take the same mutex for snapshots. Lookups
// beyond the frontier raise the ceiling, restart the worker if it finished,
// and block until the frontier covers them.
type Service struct {
	store  Store
	logger logging.Logger

	flushBatch int

	mu       sync.Mutex
	primes   []uint64
	pending  []uint64
	frontier uint64 // every prime <= frontier is in primes
	ceiling  uint64
	advanced chan struct{}
	running  bool
	started  bool
	stopped  bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewService creates a stopped service. A nil store keeps the cache in memory only.
func NewService(store Store, settings ServiceSettings, logger logging.Logger) *Service {
	if settings.FlushBatch <= 0 {
		settings.FlushBatch = DefaultFlushBatch
	}
	if settings.Ceiling < 3 {
		settings.Ceiling = DefaultCeiling
	}
	return &Service{
		store:      store,
		logger:     logger,
		flushBatch: settings.FlushBatch,
		ceiling:    settings.Ceiling,
		advanced:   make(chan struct{}),
	}
}

// Start loads the mirror and launches the worker. The worker stops when ctx
// is cancelled or Shutdown is called.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrServiceStopped
	}
	if s.started {
		return nil
	}

	s.primes = s.loadMirror()
	s.frontier = s.primes[len(s.primes)-1]
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.startWorkerLocked()

	return nil
}

func (s *Service) loadMirror() []uint64 {
	seed := []uint64{2, 3}
	if s.store == nil {
		return seed
	}

	values, loadErr := s.store.Load()
	if loadErr == nil {
		s.logger.Printf("prime cache: loaded %d primes", len(values))
		return values
	}

	if !errors.Is(loadErr, os.ErrNotExist) {
		s.logger.Printf("prime cache: discarding mirror: %v", loadErr)
	}
	if resetErr := s.store.Reset(seed); resetErr != nil {
		s.logger.Printf("prime cache: could not reset mirror: %v", resetErr)
	}
	return seed
}

func (s *Service) startWorkerLocked() {
	if s.running || s.frontier >= s.ceiling || s.ctx.Err() != nil {
		return
	}
	s.running = true
	s.wg.Add(1)
	go s.generate(s.ctx, s.frontier, s.ceiling)
}

// generate tests odd candidates above from, up to ceiling. It only reads
// s.primes outside the lock: this goroutine is the sole writer.
func (s *Service) generate(ctx context.Context, from, ceiling uint64) {
	defer s.wg.Done()

	known := s.snapshotAll()
	found := make([]uint64, 0, publishEvery)
	candidate := from + 1
	if candidate%2 == 0 {
		candidate++
	}

	tested := 0
	for ; candidate <= ceiling; candidate += 2 {
		if ctx.Err() != nil {
			s.publish(found, candidate-1, true)
			return
		}
		if isPrimeWith(candidate, known, found) {
			found = append(found, candidate)
		}
		tested++
		if tested == publishEvery {
			known = s.publish(found, candidate+1, false)
			found = found[:0]
			tested = 0
		}
	}

	// the ceiling may have been raised while the last batch ran
	s.publish(found, ceiling, true)
}

// publish appends a batch, advances the frontier and wakes waiters.
// With done set, it also either restarts the worker for a raised ceiling or
// marks it idle. It returns the current list for further trial division.
// Mirror writes happen under the lock so batches from a restarted worker
// can never overtake earlier ones.
func (s *Service) publish(found []uint64, frontier uint64, done bool) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primes = append(s.primes, found...)
	s.pending = append(s.pending, found...)
	if frontier > s.frontier {
		s.frontier = frontier
	}
	if len(s.pending) >= s.flushBatch {
		s.flushLocked()
	}
	close(s.advanced)
	s.advanced = make(chan struct{})
	if done {
		s.running = false
		s.startWorkerLocked()
	}
	return s.primes
}

// flushLocked appends pending primes to the store. On failure generation
// continues in memory and the batch is retried with the next flush.
func (s *Service) flushLocked() {
	if len(s.pending) == 0 || s.store == nil {
		s.pending = nil
		return
	}
	if appendErr := s.store.Append(s.pending); appendErr != nil {
		s.logger.Printf("prime cache: could not persist %d primes: %v", len(s.pending), appendErr)
		return
	}
	s.pending = nil
}

func (s *Service) snapshotAll() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.primes
}

// PrimesUpTo blocks until every prime <= bound is known and returns a snapshot.
func (s *Service) PrimesUpTo(ctx context.Context, bound uint64) ([]uint64, error) {
	logged := false
	for {
		s.mu.Lock()
		if !s.started {
			s.mu.Unlock()
			return nil, ErrServiceNotStarted
		}
		if s.frontier >= bound {
			snapshot := s.snapshotLocked(bound)
			s.mu.Unlock()
			return snapshot, nil
		}
		if s.stopped {
			s.mu.Unlock()
			return nil, ErrServiceStopped
		}
		if bound > s.ceiling {
			s.ceiling = bound
		}
		s.startWorkerLocked()
		frontier := s.frontier
		advanced := s.advanced
		serviceDone := s.ctx.Done()
		s.mu.Unlock()

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !logged {
			s.logger.Printf("prime cache: frontier %d, waiting for %d", frontier, bound)
			logged = true
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-serviceDone:
			return nil, ErrServiceStopped
		case <-advanced:
		}
	}
}

// TryPrimesUpTo is the non-blocking variant of PrimesUpTo. It reports false
// when the frontier does not yet cover bound.
func (s *Service) TryPrimesUpTo(bound uint64) ([]uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.frontier < bound {
		return nil, false
	}
	return s.snapshotLocked(bound), true
}

func (s *Service) snapshotLocked(bound uint64) []uint64 {
	n, found := slices.BinarySearch(s.primes, bound)
	if found {
		n++
	}
	return slices.Clone(s.primes[:n])
}

// Primes satisfies application.PrimeSource.
func (s *Service) Primes(ctx context.Context, bound uint64) (iter.Seq[uint64], error) {
	snapshot, err := s.PrimesUpTo(ctx, bound)
	if err != nil {
		return nil, err
	}
	return slices.Values(snapshot), nil
}

func (s *Service) Frontier() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frontier
}

// Shutdown stops the worker and flushes buffered primes. It is idempotent.
func (s *Service) Shutdown() {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.stopped = true
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

func isPrimeWith(n uint64, known, found []uint64) bool {
	for _, list := range [][]uint64{known, found} {
		for _, p := range list {
			if p*p > n {
				return true
			}
			if n%p == 0 {
				return false
			}
		}
	}
	return true
}
