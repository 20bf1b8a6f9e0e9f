package trie

import (
	"fmt"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/closeq/idlist"
	"github.com/timtadh/closeq/pattern"
)

// Trie stores the patterns found while mining. The pattern of a trie is the
// path of pairs from the root down to it, so it is never stored. Each trie
// owns the id-list of its pattern and caches the support and the sum of the
// sequence ids computed from it.
//
// Children live in two collections. The primary collection receives the
// extensions of the normal pass. The staged collection receives extensions
// found out of band; they stay apart until MergeStaged is called.
type Trie struct {
	id      uint64
	nodes   []*Node
	staged  []*Node
	ids     *idlist.IDList
	support int
	hasSup  bool
	sum     int
	hasSum  bool
	pruned  bool
}

func New(c *Counter, ids *idlist.IDList) *Trie {
	return &Trie{
		id:  c.Next(),
		ids: ids,
	}
}

func (t *Trie) live() {
	if t.pruned {
		panic(errors.Errorf("trie %d has been pruned", t.id))
	}
}

func (t *Trie) checkIndex(i int) {
	if i < 0 || i >= len(t.nodes) {
		panic(errors.Errorf("index %d out of range [0, %d) for trie %d", i, len(t.nodes), t.id))
	}
}

func (t *Trie) ID() uint64 {
	return t.id
}

func (t *Trie) Pruned() bool {
	return t.pruned
}

// Leaf is true when no extension was inserted below the trie.
func (t *Trie) Leaf() bool {
	return len(t.nodes) == 0 && len(t.staged) == 0
}

func (t *Trie) IDList() *idlist.IDList {
	t.live()
	return t.ids
}

func (t *Trie) SetIDList(ids *idlist.IDList) {
	t.live()
	t.ids = ids
	t.ResetAggregates()
}

func (t *Trie) ResetAggregates() {
	t.hasSup = false
	t.hasSum = false
}

func (t *Trie) mustIDs() *idlist.IDList {
	t.live()
	if t.ids == nil {
		panic(errors.Errorf("trie %d has no id-list", t.id))
	}
	return t.ids
}

func (t *Trie) Support() int {
	if !t.hasSup {
		t.support = t.mustIDs().Cardinality()
		t.hasSup = true
	}
	return t.support
}

func (t *Trie) SumOfIDs() int {
	if !t.hasSum {
		t.sum = t.mustIDs().Sum()
		t.hasSum = true
	}
	return t.sum
}

func (t *Trie) Insert(n *Node) {
	t.live()
	if t.nodes == nil {
		t.nodes = make([]*Node, 0, 1)
	}
	t.nodes = append(t.nodes, n)
}

func (t *Trie) InsertStaged(n *Node) {
	t.live()
	if t.staged == nil {
		t.staged = make([]*Node, 0, 1)
	}
	t.staged = append(t.staged, n)
}

// Sort orders each collection by pair. The collections are not merged.
func (t *Trie) Sort() {
	t.live()
	sort.Sort(nodes(t.nodes))
	sort.Sort(nodes(t.staged))
}

// MergeStaged moves the staged nodes into the primary collection and sorts
// it.
func (t *Trie) MergeStaged() {
	t.live()
	if len(t.staged) == 0 {
		return
	}
	t.nodes = append(t.nodes, t.staged...)
	t.staged = nil
	sort.Sort(nodes(t.nodes))
}

func (t *Trie) Len() int {
	return len(t.nodes)
}

func (t *Trie) StagedLen() int {
	return len(t.staged)
}

func (t *Trie) Node(i int) *Node {
	t.live()
	t.checkIndex(i)
	return t.nodes[i]
}

func (t *Trie) SetNode(i int, n *Node) {
	t.live()
	t.checkIndex(i)
	t.nodes[i] = n
}

func (t *Trie) StagedNode(i int) *Node {
	t.live()
	if i < 0 || i >= len(t.staged) {
		panic(errors.Errorf("staged index %d out of range [0, %d) for trie %d", i, len(t.staged), t.id))
	}
	return t.staged[i]
}

func (t *Trie) Child(i int) *Trie {
	return t.Node(i).child
}

func (t *Trie) SetChild(i int, child *Trie) {
	t.Node(i).child = child
}

func (t *Trie) Pair(i int) pattern.Pair {
	return t.Node(i).pair
}

// Remove tears down the subtree below the i'th primary node. The node keeps
// its place so the other indices stay valid. It returns false when there is
// no such node.
func (t *Trie) Remove(i int) bool {
	if t.pruned || len(t.nodes) == 0 || i < 0 || i >= len(t.nodes) {
		return false
	}
	if child := t.nodes[i].child; child != nil {
		child.RemoveAll()
	}
	return true
}

// RemoveAll tears down the whole trie, children first. A leaf is torn down
// too: its id-list is cleared and it is marked pruned. Calling it on a trie
// which was already torn down does nothing.
func (t *Trie) RemoveAll() {
	if t.pruned {
		return
	}
	for _, collection := range [][]*Node{t.nodes, t.staged} {
		for _, n := range collection {
			if n.child != nil {
				n.child.RemoveAll()
			}
			n.clear()
		}
	}
	if t.ids != nil {
		t.ids.Clear()
	}
	t.ids = nil
	t.nodes = nil
	t.staged = nil
	t.ResetAggregates()
	t.pruned = true
}

// Compare orders tries by construction. It says nothing about the patterns.
func (t *Trie) Compare(o *Trie) int {
	if t.id < o.id {
		return -1
	} else if t.id > o.id {
		return 1
	}
	return 0
}

func (t *Trie) String() string {
	if t.pruned {
		return fmt.Sprintf("ID=%d<pruned>", t.id)
	}
	list := func(ns []*Node) string {
		if len(ns) == 0 {
			return "NULL"
		}
		pairs := make([]string, 0, len(ns))
		for _, n := range ns {
			pairs = append(pairs, n.pair.String())
		}
		return strings.Join(pairs, ",")
	}
	return fmt.Sprintf("ID=%d[%s], [%s]", t.id, list(t.nodes), list(t.staged))
}
