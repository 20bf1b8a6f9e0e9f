package closure

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/set"
	"github.com/timtadh/data-structures/types"
)

import (
	"github.com/timtadh/closeq/config"
	"github.com/timtadh/closeq/pattern"
	"github.com/timtadh/closeq/stores/sumidx"
	"github.com/timtadh/closeq/trie"
)

// Reporter receives the closed patterns.
type Reporter interface {
	Report(*trie.Entry) error
	Close() error
}

// Closer finds the patterns of a trie which have a strict superpattern with
// the same support. A pattern is contained in each of its superpatterns'
// occurrences, so equal support means equal occurrence sets and the smaller
// pattern is not closed. Candidates are bucketed on (support, sum of ids) in
// an fs2 index so only plausible pairs are compared.
type Closer struct {
	config    *config.Config
	index     sumidx.MultiMap
	nonClosed *set.SortedSet
	compared  int
}

func New(conf *config.Config) (*Closer, error) {
	index, err := conf.SumIndex("closure")
	if err != nil {
		return nil, err
	}
	c := &Closer{
		config:    conf,
		index:     index,
		nonClosed: set.NewSortedSet(10),
	}
	return c, nil
}

func key(t *trie.Trie) sumidx.Key {
	return sumidx.Key{
		Support: int32(t.Support()),
		Sum:     int64(t.SumOfIDs()),
	}
}

func usable(e *trie.Entry) bool {
	return e.Trie != nil && !e.Trie.Pruned() && e.Trie.IDList() != nil
}

func (c *Closer) markNonClosed(label []byte) error {
	l := types.ByteSlice(label)
	if c.nonClosed.Has(l) {
		return nil
	}
	return c.nonClosed.Add(l)
}

func (c *Closer) mark(e *trie.Entry) error {
	k := key(e.Trie)
	label := e.Pattern.Label()
	err := c.index.DoFind(k, func(_ sumidx.Key, other []byte) error {
		q, err := pattern.FromLabel(other)
		if err != nil {
			return err
		}
		c.compared++
		if q.StrictSubpattern(e.Pattern) {
			return c.markNonClosed(other)
		} else if e.Pattern.StrictSubpattern(q) {
			return c.markNonClosed(label)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return c.index.Add(k, label)
}

// Mark walks the trie and records every non-closed pattern.
func (c *Closer) Mark(root *trie.Trie) error {
	return trie.Do(root.Preorder(pattern.Empty), func(e *trie.Entry) error {
		if !usable(e) {
			if e.Trie == nil {
				errors.Logf("WARN", "pattern %v has no id-list, it can't be checked", e.Pattern)
			}
			return nil
		}
		return c.mark(e)
	})
}

func (c *Closer) Closed(p *pattern.Pattern) bool {
	return !c.nonClosed.Has(types.ByteSlice(p.Label()))
}

func (c *Closer) NonClosed() int {
	return c.nonClosed.Size()
}

// Compared is the number of candidate pairs which needed a subpattern test.
func (c *Closer) Compared() int {
	return c.compared
}

// Prune tears down every subtree of root which holds no closed pattern. It
// returns the number of subtrees removed.
func (c *Closer) Prune(root *trie.Trie) int {
	removed := 0
	var walk func(t *trie.Trie, prefix *pattern.Pattern) bool
	walk = func(t *trie.Trie, prefix *pattern.Pattern) bool {
		closed := false
		for i := 0; i < t.Len(); i++ {
			n := t.Node(i)
			kid := n.Child()
			if kid == nil || kid.Pruned() {
				continue
			}
			p := pattern.Concat(prefix, n.Pair())
			below := walk(kid, p)
			if kid.IDList() != nil && c.Closed(p) {
				closed = true
			} else if !below {
				if t.Remove(i) {
					removed++
				}
				continue
			}
			closed = closed || below
		}
		return closed
	}
	walk(root, pattern.Empty)
	return removed
}

// Report hands every closed pattern left in the trie to rptr.
func (c *Closer) Report(root *trie.Trie, rptr Reporter) error {
	return trie.Do(root.Preorder(pattern.Empty), func(e *trie.Entry) error {
		if !usable(e) || !c.Closed(e.Pattern) {
			return nil
		}
		return rptr.Report(e)
	})
}

func (c *Closer) Close() error {
	return c.index.Delete()
}

// MergeAll merges the staged collection of every trie below root into its
// primary collection.
func MergeAll(root *trie.Trie) {
	if root.Pruned() {
		return
	}
	root.MergeStaged()
	for i := 0; i < root.Len(); i++ {
		if kid := root.Child(i); kid != nil {
			MergeAll(kid)
		}
	}
}

// Run merges the staged nodes, marks and prunes the non-closed patterns and
// reports the closed ones. The reporter is closed before Run returns.
func Run(conf *config.Config, root *trie.Trie, rptr Reporter) (err error) {
	c, err := New(conf)
	if err != nil {
		return err
	}
	defer func() {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
		if e := rptr.Close(); e != nil && err == nil {
			err = e
		}
	}()
	MergeAll(root)
	errors.Logf("DEBUG", "staged nodes merged, marking non-closed patterns")
	if err := c.Mark(root); err != nil {
		return err
	}
	errors.Logf("INFO", "%d non-closed patterns (%d comparisons)", c.NonClosed(), c.Compared())
	removed := c.Prune(root)
	errors.Logf("INFO", "pruned %d subtrees", removed)
	return c.Report(root, rptr)
}
