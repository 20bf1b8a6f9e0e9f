package trie

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/closeq/idlist"
	"github.com/timtadh/closeq/pattern"
)

var (
	A = pattern.Pair{Item: 1, Abs: pattern.After}
	B = pattern.Pair{Item: 2, Abs: pattern.After}
	C = pattern.Pair{Item: 3, Abs: pattern.After}
	D = pattern.Pair{Item: 3, Abs: pattern.Equal}
)

func leaf(c *Counter, ids ...int) *Trie {
	return New(c, idlist.New(ids...))
}

func pairs(entries []*Entry) []string {
	strs := make([]string, 0, len(entries))
	for _, e := range entries {
		strs = append(strs, e.Pattern.String())
	}
	return strs
}

func TestSupportAndSum(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	tr := leaf(c, 0, 3, 5, 9)
	t.Equal(4, tr.Support())
	t.Equal(17, tr.SumOfIDs())
	t.Equal(4, tr.Support())
	t.Equal(17, tr.SumOfIDs())
	empty := leaf(c)
	t.Equal(0, empty.Support())
	t.Equal(0, empty.SumOfIDs())
}

func TestAggregatesCachedUntilReset(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	ids := idlist.New(1, 2)
	tr := New(c, ids)
	t.Equal(2, tr.Support())
	t.Equal(3, tr.SumOfIDs())
	ids.Add(7)
	t.Equal(2, tr.Support(), "the trie keeps its cached support")
	t.Equal(3, tr.SumOfIDs())
	tr.ResetAggregates()
	t.Equal(3, tr.Support())
	t.Equal(10, tr.SumOfIDs())
	tr.SetIDList(idlist.New(4))
	t.Equal(1, tr.Support())
	t.Equal(4, tr.SumOfIDs())
}

func TestMissingIDListPanics(x *testing.T) {
	t := assert.New(x)
	tr := New(NewCounter(), nil)
	t.Panics(func() { tr.Support() })
	t.Panics(func() { tr.SumOfIDs() })
}

func TestInsertionOrderThenSort(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	t.True(root.Leaf())
	t.Equal(0, root.Len())
	for _, p := range []pattern.Pair{C, A, B} {
		root.Insert(NewNode(p, leaf(c)))
	}
	t.False(root.Leaf())
	t.Equal(3, root.Len())
	t.Equal([]pattern.Pair{C, A, B}, []pattern.Pair{root.Pair(0), root.Pair(1), root.Pair(2)})
	root.Sort()
	t.Equal([]pattern.Pair{A, B, C}, []pattern.Pair{root.Pair(0), root.Pair(1), root.Pair(2)})
}

func TestSortKeepsCollectionsApart(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	root.Insert(NewNode(C, nil))
	root.Insert(NewNode(B, nil))
	root.InsertStaged(NewNode(D, nil))
	root.InsertStaged(NewNode(A, nil))
	root.Sort()
	t.Equal(2, root.Len())
	t.Equal(2, root.StagedLen())
	t.Equal(B, root.Pair(0))
	t.Equal(C, root.Pair(1))
	t.Equal(A, root.StagedNode(0).Pair())
	t.Equal(D, root.StagedNode(1).Pair())
	root.MergeStaged()
	t.Equal(0, root.StagedLen())
	t.Equal([]pattern.Pair{A, B, C, D},
		[]pattern.Pair{root.Pair(0), root.Pair(1), root.Pair(2), root.Pair(3)})
}

func TestPositionalAccess(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	kid := leaf(c, 1)
	root.Insert(NewNode(A, kid))
	t.Equal(kid, root.Child(0))
	t.Equal(A, root.Node(0).Pair())
	other := leaf(c, 2)
	root.SetChild(0, other)
	t.Equal(other, root.Child(0))
	root.SetNode(0, NewNode(B, kid))
	t.Equal(B, root.Pair(0))
	t.Equal(kid, root.Child(0))
	t.Panics(func() { root.Child(1) })
	t.Panics(func() { root.Pair(-1) })
	t.Panics(func() { root.Node(5) })
	t.Panics(func() { root.SetNode(1, NewNode(C, nil)) })
	t.Panics(func() { root.StagedNode(0) })
}

func TestPreorderOrder(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	leafA := leaf(c, 1)
	subB := leaf(c, 1, 2)
	leafC := leaf(c, 2)
	root.Insert(NewNode(A, leafA))
	root.Insert(NewNode(B, subB))
	subB.InsertStaged(NewNode(C, leafC))

	entries := root.Entries(pattern.Empty)
	t.Equal([]string{"1 -1", "2 -1", "2 -1 3 -1"}, pairs(entries))
	t.Equal(leafA, entries[0].Trie)
	t.Equal(subB, entries[1].Trie)
	t.Equal(leafC, entries[2].Trie)
}

func TestPreorderPrimaryBeforeStaged(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	a := leaf(c)
	a.Insert(NewNode(D, nil))
	root.InsertStaged(NewNode(C, nil))
	root.Insert(NewNode(B, nil))
	root.Insert(NewNode(A, a))
	t.Equal([]string{"2 -1", "1 -1", "1 3 -1", "3 -1"}, pairs(root.Entries(nil)))
}

func TestPreorderPrefix(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	root.Insert(NewNode(D, nil))
	prefix := pattern.FromItemsets([]int32{9})
	entries := root.Entries(prefix)
	t.Equal([]string{"9 3 -1"}, pairs(entries))
	t.Nil(entries[0].Trie)
	t.Equal("9 -1", prefix.String())
}

func TestPreorderEmptyAndLazy(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	e, next := root.Preorder(nil)()
	t.Nil(e)
	t.Nil(next)

	root.Insert(NewNode(A, nil))
	root.Insert(NewNode(B, nil))
	it := root.Preorder(nil)
	e, it = it()
	t.Equal("1 -1", e.Pattern.String())
	root.Insert(NewNode(C, nil))
	count := 1
	err := Do(it, func(*Entry) error {
		count++
		return nil
	})
	t.Nil(err)
	t.Equal(3, count, "the walk reads the collections as it goes")
}

func TestRemoveAllIdempotent(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c, 1, 2)
	kid := leaf(c, 1)
	grandkid := leaf(c, 1)
	staged := leaf(c, 2)
	root.Insert(NewNode(A, kid))
	kid.Insert(NewNode(B, grandkid))
	root.InsertStaged(NewNode(C, staged))
	node := root.Node(0)

	root.RemoveAll()
	t.True(root.Pruned())
	t.True(kid.Pruned())
	t.True(grandkid.Pruned())
	t.True(staged.Pruned())
	t.Equal(0, root.Len())
	t.Equal(0, root.StagedLen())
	t.Nil(node.Child())
	t.Equal(pattern.Pair{}, node.Pair())
	t.Panics(func() { root.Support() })
	t.Panics(func() { root.Insert(NewNode(A, nil)) })
	t.NotPanics(func() { root.RemoveAll() })
	t.Equal(0, root.Len())
	t.Equal(0, len(root.Entries(nil)))
}

func TestRemoveAllLeaf(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	l := leaf(c, 4, 5)
	ids := l.IDList()
	t.Equal(2, l.Support())
	t.True(l.Leaf())
	l.RemoveAll()
	t.True(l.Pruned())
	t.True(ids.Empty())
	t.Panics(func() { l.Support() })
	t.Panics(func() { l.IDList() })
}

func TestRemoveIsolatesSubtree(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c, 1, 2, 3)
	a := leaf(c, 1, 2)
	b := leaf(c, 2, 3)
	bb := leaf(c, 3)
	root.Insert(NewNode(A, a))
	root.Insert(NewNode(B, b))
	b.Insert(NewNode(C, bb))

	t.False(root.Remove(2))
	t.False(root.Remove(-1))
	t.False(leaf(c).Remove(0))

	t.True(root.Remove(1))
	t.True(b.Pruned())
	t.True(bb.Pruned())
	t.False(a.Pruned())
	t.Equal(2, a.Support())
	t.Equal(3, a.SumOfIDs())
	t.Equal(3, root.Support())
	t.Equal(2, root.Len())
	t.Equal(B, root.Pair(1))

	entries := root.Entries(nil)
	t.Equal([]string{"1 -1", "2 -1"}, pairs(entries))
	t.True(entries[1].Trie.Pruned())
}

func TestRemoveNilChild(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	root.Insert(NewNode(A, nil))
	t.True(root.Remove(0))
}

func TestIdentifiers(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	last := uint64(0)
	tries := make([]*Trie, 0, 100)
	for i := 0; i < 100; i++ {
		tr := leaf(c)
		t.True(tr.ID() > last)
		last = tr.ID()
		tries = append(tries, tr)
		if i%10 == 0 {
			tr.RemoveAll()
		}
	}
	t.Equal(uint64(100), c.Issued())
	t.Equal(-1, tries[0].Compare(tries[1]))
	t.Equal(1, tries[5].Compare(tries[4]))
	t.Equal(0, tries[3].Compare(tries[3]))

	other := NewCounter()
	t.Equal(uint64(1), leaf(other).ID(), "sessions do not share identifiers")
	t.Equal(uint64(101), leaf(c).ID())
}

func TestString(x *testing.T) {
	t := assert.New(x)
	c := NewCounter()
	root := leaf(c)
	t.Equal("ID=1[NULL], [NULL]", root.String())
	root.Insert(NewNode(A, nil))
	root.InsertStaged(NewNode(D, nil))
	t.Equal("ID=1[<1], [=3]", root.String())
	root.RemoveAll()
	t.Equal("ID=1<pruned>", root.String())
}
