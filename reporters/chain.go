package reporters

import ()

import (
	"github.com/timtadh/closeq/closure"
	"github.com/timtadh/closeq/trie"
)

type Chain struct {
	Reporters []closure.Reporter
}

func (r *Chain) Report(e *trie.Entry) error {
	for _, rpt := range r.Reporters {
		err := rpt.Report(e)
		if err != nil {
			return err
		}
	}
	return nil
}

// Close closes every reporter in the chain, even after a failure, and
// returns the first error.
func (r *Chain) Close() (err error) {
	for _, rpt := range r.Reporters {
		if e := rpt.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
