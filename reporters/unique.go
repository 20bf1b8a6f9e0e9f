package reporters

import (
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/closeq/closure"
	"github.com/timtadh/closeq/trie"
)

type Unique struct {
	Seen     *set.SortedSet
	Reporter closure.Reporter
}

func NewUnique(reporter closure.Reporter) *Unique {
	return &Unique{
		Seen:     set.NewSortedSet(10),
		Reporter: reporter,
	}
}

func (r *Unique) Report(e *trie.Entry) error {
	label := types.ByteSlice(e.Pattern.Label())
	if r.Seen.Has(label) {
		return nil
	}
	if err := r.Seen.Add(label); err != nil {
		return err
	}
	return r.Reporter.Report(e)
}

func (r *Unique) Close() error {
	return r.Reporter.Close()
}
