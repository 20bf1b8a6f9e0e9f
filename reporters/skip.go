package reporters

import ()

import (
	"github.com/timtadh/closeq/closure"
	"github.com/timtadh/closeq/trie"
)

// Skip passes on every nth pattern.
type Skip struct {
	Skip     int
	Reporter closure.Reporter
	count    int
}

func NewSkip(n int, rptr closure.Reporter) *Skip {
	if n <= 0 {
		n = 1
	}
	return &Skip{
		Skip:     n,
		Reporter: rptr,
	}
}

func (r *Skip) Report(e *trie.Entry) error {
	r.count++
	if r.count%r.Skip == 0 {
		return r.Reporter.Report(e)
	}
	return nil
}

func (r *Skip) Close() error {
	return r.Reporter.Close()
}
