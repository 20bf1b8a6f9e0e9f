package trie

import (
	"fmt"
)

import (
	"github.com/timtadh/closeq/pattern"
)

// Entry pairs a pattern with the trie holding its id-list.
type Entry struct {
	Pattern *pattern.Pattern
	Trie    *Trie
}

func (e *Entry) String() string {
	if e.Trie == nil || e.Trie.pruned || e.Trie.ids == nil {
		return fmt.Sprintf("<Entry %v>", e.Pattern)
	}
	return fmt.Sprintf("<Entry %v #SUP: %d>", e.Pattern, e.Trie.Support())
}

type Iterator func() (*Entry, Iterator)

// Do runs do on every entry left in it.
func Do(it Iterator, do func(*Entry) error) error {
	for e, next := it(); next != nil; e, next = next() {
		if err := do(e); err != nil {
			return err
		}
	}
	return nil
}

type frame struct {
	t      *Trie
	prefix *pattern.Pattern
	i      int
}

func (f *frame) next() *Node {
	n := len(f.t.nodes)
	if f.i < n {
		f.i++
		return f.t.nodes[f.i-1]
	} else if f.i-n < len(f.t.staged) {
		f.i++
		return f.t.staged[f.i-1-n]
	}
	return nil
}

// Preorder walks the trie depth first, every node before its children. The
// primary collection of a trie is walked before its staged collection. Each
// step yields the prefix extended by the node's pair and the node's child.
// The iterator is lazy and can be consumed once.
func (t *Trie) Preorder(prefix *pattern.Pattern) (it Iterator) {
	if prefix == nil {
		prefix = pattern.Empty
	}
	stack := make([]*frame, 0, 10)
	if !t.pruned {
		stack = append(stack, &frame{t: t, prefix: prefix})
	}
	it = func() (*Entry, Iterator) {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			n := top.next()
			if n == nil {
				stack = stack[:len(stack)-1]
				continue
			}
			e := &Entry{
				Pattern: pattern.Concat(top.prefix, n.pair),
				Trie:    n.child,
			}
			if n.child != nil && !n.child.pruned {
				stack = append(stack, &frame{t: n.child, prefix: e.Pattern})
			}
			return e, it
		}
		return nil, nil
	}
	return it
}

// Entries collects the preorder walk into a slice.
func (t *Trie) Entries(prefix *pattern.Pattern) []*Entry {
	entries := make([]*Entry, 0, 10)
	for e, next := t.Preorder(prefix)(); next != nil; e, next = next() {
		entries = append(entries, e)
	}
	return entries
}
