package index_stream

import "stegano/domain/stego"

// Sequential addresses units 0, 1, 2, ... with no randomization.
type Sequential struct {
	limit int
	next  int
}

func NewSequential(limit int) *Sequential {
	return &Sequential{
		limit: limit,
	}
}

func (s *Sequential) Next() (int, error) {
	if s.next >= s.limit {
		return 0, stego.ErrAddressSpaceExhausted
	}
	v := s.next
	s.next++
	return v, nil
}

func (s *Sequential) Limit() int {
	return s.limit
}
