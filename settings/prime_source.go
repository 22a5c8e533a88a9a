package settings

import (
	"encoding/json"
	"errors"
	"strings"
)

// PrimeSource selects where full-period generators get their primes.
type PrimeSource int

const (
	// Sieve computes primes per request with the parallel sieve.
	Sieve PrimeSource = iota
	// Cache serves primes from the persistent incremental cache.
	Cache
)

var ErrInvalidPrimeSource = errors.New("invalid prime source")

func (p PrimeSource) String() string {
	switch p {
	case Sieve:
		return "sieve"
	case Cache:
		return "cache"
	default:
		return "unknown"
	}
}

func ParsePrimeSource(s string) (PrimeSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sieve", "":
		return Sieve, nil
	case "cache":
		return Cache, nil
	default:
		return Sieve, ErrInvalidPrimeSource
	}
}

func (p PrimeSource) MarshalJSON() ([]byte, error) {
	switch p {
	case Sieve, Cache:
		return json.Marshal(p.String())
	default:
		return nil, ErrInvalidPrimeSource
	}
}

func (p *PrimeSource) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, parseErr := ParsePrimeSource(s)
	if parseErr != nil {
		return parseErr
	}
	*p = parsed
	return nil
}
