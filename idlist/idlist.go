package idlist

import (
	"fmt"
	"math"
	"strings"
)

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/timtadh/data-structures/errors"
)

// IDList is the set of sequence ids a pattern occurs in. The cardinality of
// the set is the support of the pattern. Cardinality and Sum are computed on
// demand and cached until the membership changes.
type IDList struct {
	bits    *roaring.Bitmap
	card    int
	hasCard bool
	sum     int
	hasSum  bool
}

func New(ids ...int) *IDList {
	l := &IDList{bits: roaring.New()}
	for _, id := range ids {
		l.Add(id)
	}
	return l
}

// FromBitmap takes ownership of b.
func FromBitmap(b *roaring.Bitmap) *IDList {
	if b == nil {
		b = roaring.New()
	}
	return &IDList{bits: b}
}

// MaxID is the largest sequence id a list can hold.
const MaxID = math.MaxUint32

// Valid is true for the ids a list can hold.
func Valid(id int) bool {
	return id >= 0 && uint64(id) <= MaxID
}

func check(id int) uint32 {
	if id < 0 {
		panic(errors.Errorf("sequence ids must be non-negative, got %d", id))
	} else if !Valid(id) {
		panic(errors.Errorf("sequence id %d is larger than %d", id, uint64(MaxID)))
	}
	return uint32(id)
}

func (l *IDList) invalidate() {
	l.hasCard = false
	l.hasSum = false
}

func (l *IDList) Add(id int) {
	if l.bits.CheckedAdd(check(id)) {
		l.invalidate()
	}
}

func (l *IDList) Remove(id int) {
	if !Valid(id) {
		return
	}
	if l.bits.CheckedRemove(uint32(id)) {
		l.invalidate()
	}
}

func (l *IDList) Has(id int) bool {
	if !Valid(id) {
		return false
	}
	return l.bits.Contains(uint32(id))
}

func (l *IDList) Clear() {
	l.bits.Clear()
	l.invalidate()
}

func (l *IDList) Empty() bool {
	return l.bits.IsEmpty()
}

func (l *IDList) Cardinality() int {
	if !l.hasCard {
		l.card = int(l.bits.GetCardinality())
		l.hasCard = true
	}
	return l.card
}

// Sum is the sum of every member id. Two lists of equal cardinality and equal
// sum may be equal; lists that differ in either are not.
func (l *IDList) Sum() int {
	if !l.hasSum {
		sum := 0
		l.bits.Iterate(func(x uint32) bool {
			sum += int(x)
			return true
		})
		l.sum = sum
		l.hasSum = true
	}
	return l.sum
}

func (l *IDList) Do(do func(id int) bool) {
	l.bits.Iterate(func(x uint32) bool {
		return do(int(x))
	})
}

// Items returns the ids in ascending order.
func (l *IDList) Items() []int {
	items := make([]int, 0, l.Cardinality())
	l.Do(func(id int) bool {
		items = append(items, id)
		return true
	})
	return items
}

func (l *IDList) And(o *IDList) *IDList {
	return FromBitmap(roaring.And(l.bits, o.bits))
}

func (l *IDList) Or(o *IDList) *IDList {
	return FromBitmap(roaring.Or(l.bits, o.bits))
}

func (l *IDList) Copy() *IDList {
	return FromBitmap(l.bits.Clone())
}

func (l *IDList) Equals(o *IDList) bool {
	if l == o {
		return true
	} else if l == nil || o == nil {
		return false
	}
	if l.Cardinality() != o.Cardinality() || l.Sum() != o.Sum() {
		return false
	}
	return l.bits.Equals(o.bits)
}

func (l *IDList) String() string {
	ids := make([]string, 0, l.Cardinality())
	l.Do(func(id int) bool {
		ids = append(ids, fmt.Sprint(id))
		return true
	})
	return "{" + strings.Join(ids, ", ") + "}"
}
