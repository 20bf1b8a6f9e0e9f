package reporters

import (
	"io"
	"os"
	"runtime/pprof"
)

import (
	"github.com/timtadh/closeq/trie"
)

// HeapProfile writes a heap profile every `every` reports once `after`
// reports have gone by.
type HeapProfile struct {
	f     io.WriteCloser
	every int
	after int
	count int
}

func NewHeapProfile(path string, every, after int) (*HeapProfile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if every <= 0 {
		every = 1
	}
	hp := &HeapProfile{f: f, every: every, after: after}
	return hp, nil
}

func (hp *HeapProfile) Report(e *trie.Entry) error {
	hp.count++
	if hp.count <= hp.after || (hp.count-hp.after)%hp.every != 0 {
		return nil
	}
	return pprof.WriteHeapProfile(hp.f)
}

func (hp *HeapProfile) Close() error {
	return hp.f.Close()
}
