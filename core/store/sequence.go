package store

import "sync/atomic"

// Sequence issues strictly increasing ids starting at 1. It is safe for
// concurrent use and never fails.
type Sequence struct {
	last atomic.Int64
}

func NewSequence() *Sequence {
	return &Sequence{}
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Peek reports the value the next call to Next will return.
func (s *Sequence) Peek() int64 {
	return s.last.Load() + 1
}
