package stego

import (
	"fmt"
	"strings"
)

// Strategy selects how carrier units are addressed.
type Strategy int

const (
	// FullPeriod walks a full-period LCG orbit over the unit range.
	FullPeriod Strategy = iota
	// Rejection draws uniform indices and rejects the ones already used.
	Rejection
	// Permutation removes uniformly chosen indices from a materialized range.
	Permutation
	// Sequential addresses units 0, 1, 2, ...
	Sequential
)

const DefaultStrategy = FullPeriod

func (s Strategy) String() string {
	switch s {
	case FullPeriod:
		return "full-period"
	case Rejection:
		return "rejection"
	case Permutation:
		return "permutation"
	case Sequential:
		return "sequential"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func (s Strategy) IsValid() bool {
	return s >= FullPeriod && s <= Sequential
}

// ParseStrategy accepts canonical names and the historical mode names
// ("random", "legacy", "method2", "linear").
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "full-period", "fullperiod", "random":
		return FullPeriod, nil
	case "rejection", "legacy":
		return Rejection, nil
	case "permutation", "method2":
		return Permutation, nil
	case "sequential", "linear":
		return Sequential, nil
	default:
		return FullPeriod, fmt.Errorf("%s is not a valid strategy", name)
	}
}

// MarshalText lets strategies round-trip through JSON configuration.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%s is not a valid strategy", s)
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, parseErr := ParseStrategy(string(text))
	if parseErr != nil {
		return parseErr
	}
	*s = parsed
	return nil
}
