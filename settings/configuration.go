package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"stegano/domain/stego"
	"stegano/infrastructure/primes"
)

type Configuration struct {
	// PrimeCachePath is the mirror file of the prime cache. Empty means the
	// user cache directory.
	PrimeCachePath  string         `json:"PrimeCachePath"`
	PrimeFlushBatch int            `json:"PrimeFlushBatch"`
	PrimeCeiling    uint64         `json:"PrimeCeiling"`
	PrimeSource     PrimeSource    `json:"PrimeSource"`
	SieveWorkers    int            `json:"SieveWorkers"`
	Strategy        stego.Strategy `json:"Strategy"`
}

func NewDefaultConfiguration() Configuration {
	return Configuration{
		PrimeCachePath:  "",
		PrimeFlushBatch: primes.DefaultFlushBatch,
		PrimeCeiling:    primes.DefaultCeiling,
		PrimeSource:     Sieve,
		SieveWorkers:    0,
		Strategy:        stego.DefaultStrategy,
	}
}

// ResolvedPrimeCachePath returns PrimeCachePath, falling back to
// <user cache dir>/stegano/primes.txt.
func (c Configuration) ResolvedPrimeCachePath() (string, error) {
	if c.PrimeCachePath != "" {
		return c.PrimeCachePath, nil
	}
	cacheDir, cacheDirErr := os.UserCacheDir()
	if cacheDirErr != nil {
		return "", fmt.Errorf("failed to resolve prime cache path: %w", cacheDirErr)
	}
	return filepath.Join(cacheDir, "stegano", "primes.txt"), nil
}
