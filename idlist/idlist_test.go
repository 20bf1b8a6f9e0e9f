package idlist

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"github.com/RoaringBitmap/roaring"
)

func TestEmpty(x *testing.T) {
	t := assert.New(x)
	l := New()
	t.True(l.Empty())
	t.Equal(0, l.Cardinality())
	t.Equal(0, l.Sum())
	t.Equal([]int{}, l.Items())
}

func TestCardinalitySum(x *testing.T) {
	t := assert.New(x)
	l := New(4, 1, 9, 1, 100000)
	t.Equal(4, l.Cardinality())
	t.Equal(1+4+9+100000, l.Sum())
	t.Equal(4, l.Cardinality(), "cached value is stable")
	t.Equal(1+4+9+100000, l.Sum(), "cached value is stable")
	t.Equal([]int{1, 4, 9, 100000}, l.Items())
}

func TestMutationInvalidates(x *testing.T) {
	t := assert.New(x)
	l := New(1, 2, 3)
	t.Equal(3, l.Cardinality())
	t.Equal(6, l.Sum())
	l.Add(10)
	t.Equal(4, l.Cardinality())
	t.Equal(16, l.Sum())
	l.Add(10)
	t.Equal(4, l.Cardinality())
	l.Remove(2)
	t.Equal(3, l.Cardinality())
	t.Equal(14, l.Sum())
	t.False(l.Has(2))
	t.True(l.Has(10))
	l.Clear()
	t.Equal(0, l.Cardinality())
	t.Equal(0, l.Sum())
}

func TestNegativeIdPanics(x *testing.T) {
	t := assert.New(x)
	l := New()
	t.Panics(func() { l.Add(-1) })
	t.False(l.Has(-1))
	l.Remove(-1)
	t.Equal(0, l.Cardinality())
}

func TestIdRange(x *testing.T) {
	t := assert.New(x)
	l := New(0, MaxID)
	t.Equal(2, l.Cardinality())
	t.Equal(MaxID, l.Sum())
	t.True(l.Has(MaxID))
	t.Panics(func() { l.Add(MaxID + 1) })
	t.Panics(func() { New(1 << 32) })
	t.False(l.Has(MaxID + 1))
	t.True(l.Has(0), "an id past the range must not alias a small one")
	l.Remove(1 << 32)
	t.True(l.Has(0))
	t.Equal([]int{0, MaxID}, l.Items())
	t.True(Valid(MaxID))
	t.False(Valid(MaxID + 1))
	t.False(Valid(-1))
}

func TestAndOr(x *testing.T) {
	t := assert.New(x)
	a := New(1, 2, 3, 7)
	b := New(2, 3, 8)
	t.Equal([]int{2, 3}, a.And(b).Items())
	t.Equal([]int{1, 2, 3, 7, 8}, a.Or(b).Items())
	t.Equal([]int{1, 2, 3, 7}, a.Items(), "operands are untouched")
}

func TestEquals(x *testing.T) {
	t := assert.New(x)
	a := New(1, 4)
	b := New(2, 3)
	t.Equal(a.Cardinality(), b.Cardinality())
	t.Equal(a.Sum(), b.Sum())
	t.False(a.Equals(b), "equal sum and cardinality is not equality")
	t.True(a.Equals(New(4, 1)))
	t.True(a.Equals(a.Copy()))
	t.False(a.Equals(nil))
}

func TestFromBitmap(x *testing.T) {
	t := assert.New(x)
	l := FromBitmap(roaring.BitmapOf(5, 6))
	t.Equal(2, l.Cardinality())
	t.Equal(11, l.Sum())
	t.Equal("{5, 6}", l.String())
	t.Equal(0, FromBitmap(nil).Cardinality())
}
