package trie

import (
	"sync/atomic"
)

// Counter hands out trie identifiers for one mining session. Identifiers
// start at 1, strictly increase and are never reused.
type Counter struct {
	last uint64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Next() uint64 {
	return atomic.AddUint64(&c.last, 1)
}

// Issued is the number of identifiers handed out so far.
func (c *Counter) Issued() uint64 {
	return atomic.LoadUint64(&c.last)
}
