package pattern

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/timtadh/data-structures/hashtable"
)

func TestConcatLeavesPrefix(x *testing.T) {
	t := assert.New(x)
	a := Concat(Empty, Pair{1, After})
	ab := Concat(a, Pair{2, Equal})
	ac := Concat(a, Pair{3, After})
	t.Equal(1, a.Len())
	t.Equal(2, ab.Len())
	t.Equal(2, ac.Len())
	t.Equal(Pair{2, Equal}, ab.Last())
	t.Equal(Pair{3, After}, ac.Last())
	t.Equal([]Pair{{1, After}}, a.Pairs())
	t.Equal(0, Empty.Len())
}

func TestConcatFirstPair(x *testing.T) {
	t := assert.New(x)
	t.Panics(func() { Concat(Empty, Pair{1, Equal}) })
	t.Panics(func() { New(Pair{1, Equal}) })
	t.NotPanics(func() { Concat(nil, Pair{1, After}) })
}

func TestPrefixDoesNotAlias(x *testing.T) {
	t := assert.New(x)
	abc := FromItemsets([]int32{1, 2}, []int32{3})
	ab := abc.Prefix()
	abd := Concat(ab, Pair{4, After})
	t.Equal("1 2 -1 3 -1", abc.String())
	t.Equal("1 2 -1 4 -1", abd.String())
}

func TestPairOrder(x *testing.T) {
	t := assert.New(x)
	t.True(Pair{1, Equal}.Less(Pair{2, After}))
	t.True(Pair{1, After}.Less(Pair{1, Equal}))
	t.Equal(0, Pair{3, Equal}.Compare(Pair{3, Equal}))
	t.Equal(1, Pair{4, After}.Compare(Pair{3, Equal}))
}

func TestItemsets(x *testing.T) {
	t := assert.New(x)
	p := New(Pair{1, After}, Pair{2, Equal}, Pair{3, After}, Pair{1, After}, Pair{5, Equal})
	t.Equal([][]int32{{1, 2}, {3}, {1, 5}}, p.Itemsets())
	t.Equal([][]int32{}, Empty.Itemsets())
}

func TestSubpattern(x *testing.T) {
	t := assert.New(x)
	q := FromItemsets([]int32{1, 2}, []int32{3}, []int32{1, 5})
	t.True(FromItemsets([]int32{1}).Subpattern(q))
	t.True(FromItemsets([]int32{1}, []int32{1}).Subpattern(q))
	t.True(FromItemsets([]int32{2}, []int32{5}).Subpattern(q))
	t.True(FromItemsets([]int32{1, 2}, []int32{1, 5}).Subpattern(q))
	t.True(q.Subpattern(q))
	t.False(q.StrictSubpattern(q))
	t.True(Empty.Subpattern(q))
	t.False(FromItemsets([]int32{1, 3}).Subpattern(q), "3 and 1 are never in one itemset")
	t.False(FromItemsets([]int32{3}, []int32{2}).Subpattern(q), "order matters")
	t.False(FromItemsets([]int32{1}, []int32{1}, []int32{1}).Subpattern(q))
	t.True(FromItemsets([]int32{3}, []int32{5}).StrictSubpattern(q))
}

func TestLabelRoundTrip(x *testing.T) {
	t := assert.New(x)
	p := FromItemsets([]int32{7, 1}, []int32{300000})
	q, err := FromLabel(p.Label())
	t.Nil(err)
	t.True(p.Equals(q))
	t.Equal(p.Hash(), q.Hash())
	_, err = FromLabel([]byte{0, 0})
	t.NotNil(err)
	_, err = FromLabel([]byte{0, 0, 0, 2, 0, 0, 0, 1, 0})
	t.NotNil(err)
	bad := p.Label()
	bad[8] = byte(Equal)
	_, err = FromLabel(bad)
	t.NotNil(err)
}

func TestHashable(x *testing.T) {
	t := assert.New(x)
	table := hashtable.NewLinearHash()
	p := FromItemsets([]int32{1}, []int32{2})
	t.Nil(table.Put(p, 5))
	t.True(table.Has(FromItemsets([]int32{1}, []int32{2})))
	t.False(table.Has(FromItemsets([]int32{1, 2})))
	v, err := table.Get(FromItemsets([]int32{1}, []int32{2}))
	t.Nil(err)
	t.Equal(5, v)
}

func TestParse(x *testing.T) {
	t := assert.New(x)
	p, err := Parse("1 2 -1 3 -1 -2")
	t.Nil(err)
	t.Equal(FromItemsets([]int32{1, 2}, []int32{3}).Pairs(), p.Pairs())
	t.Equal("1 2 -1 3 -1", p.String())
	p, err = Parse("4 5")
	t.Nil(err)
	t.Equal("4 5 -1", p.String())
	_, err = Parse("1 -1 -1")
	t.NotNil(err)
	_, err = Parse("1 x -1")
	t.NotNil(err)
	_, err = Parse("1 -7")
	t.NotNil(err)
	p, err = Parse("")
	t.Nil(err)
	t.Equal(0, p.Len())
	t.Equal("", p.String())
}
