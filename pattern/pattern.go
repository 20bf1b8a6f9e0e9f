package pattern

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/types"
)

// Abstraction relates an item to the item before it in a pattern.
type Abstraction uint8

const (
	// After starts a new itemset, strictly later than the previous one.
	After Abstraction = iota
	// Equal puts the item in the same itemset as the previous item.
	Equal
)

func (a Abstraction) String() string {
	switch a {
	case After:
		return "<"
	case Equal:
		return "="
	default:
		return fmt.Sprintf("abs(%d)", uint8(a))
	}
}

type Pair struct {
	Item int32
	Abs  Abstraction
}

func (p Pair) Compare(o Pair) int {
	if p.Item < o.Item {
		return -1
	} else if p.Item > o.Item {
		return 1
	} else if p.Abs < o.Abs {
		return -1
	} else if p.Abs > o.Abs {
		return 1
	}
	return 0
}

func (p Pair) Less(o Pair) bool {
	return p.Compare(o) < 0
}

func (p Pair) String() string {
	return fmt.Sprintf("%v%d", p.Abs, p.Item)
}

// Pattern is an immutable sequence of pairs. The only way to grow one is
// Concat, which never touches the prefix.
type Pattern struct {
	pairs []Pair
}

var Empty = &Pattern{}

func New(pairs ...Pair) *Pattern {
	if len(pairs) > 0 && pairs[0].Abs != After {
		panic(errors.Errorf("the first pair of a pattern must start an itemset, got %v", pairs[0]))
	}
	p := &Pattern{pairs: make([]Pair, len(pairs))}
	copy(p.pairs, pairs)
	return p
}

// FromItemsets builds the pattern for a list of itemsets.
func FromItemsets(itemsets ...[]int32) *Pattern {
	p := &Pattern{pairs: make([]Pair, 0, 10)}
	for _, set := range itemsets {
		for i, item := range set {
			abs := Equal
			if i == 0 {
				abs = After
			}
			p.pairs = append(p.pairs, Pair{item, abs})
		}
	}
	return p
}

func Concat(prefix *Pattern, pair Pair) *Pattern {
	if prefix == nil {
		prefix = Empty
	}
	if len(prefix.pairs) == 0 && pair.Abs != After {
		panic(errors.Errorf("the first pair of a pattern must start an itemset, got %v", pair))
	}
	pairs := make([]Pair, len(prefix.pairs)+1)
	copy(pairs, prefix.pairs)
	pairs[len(prefix.pairs)] = pair
	return &Pattern{pairs: pairs}
}

func (p *Pattern) Len() int {
	return len(p.pairs)
}

func (p *Pattern) Level() int {
	return len(p.pairs)
}

func (p *Pattern) At(i int) Pair {
	return p.pairs[i]
}

func (p *Pattern) Last() Pair {
	if len(p.pairs) == 0 {
		panic(errors.Errorf("the empty pattern has no last pair"))
	}
	return p.pairs[len(p.pairs)-1]
}

// Prefix drops the last pair.
func (p *Pattern) Prefix() *Pattern {
	if len(p.pairs) == 0 {
		panic(errors.Errorf("the empty pattern has no prefix"))
	}
	return &Pattern{pairs: p.pairs[:len(p.pairs)-1:len(p.pairs)-1]}
}

func (p *Pattern) Pairs() []Pair {
	pairs := make([]Pair, len(p.pairs))
	copy(pairs, p.pairs)
	return pairs
}

func (p *Pattern) Itemsets() [][]int32 {
	sets := make([][]int32, 0, len(p.pairs))
	for _, pair := range p.pairs {
		if pair.Abs == After || len(sets) == 0 {
			sets = append(sets, make([]int32, 0, 4))
		}
		sets[len(sets)-1] = append(sets[len(sets)-1], pair.Item)
	}
	return sets
}

func contains(set []int32, items []int32) bool {
outer:
	for _, item := range items {
		for _, x := range set {
			if x == item {
				continue outer
			}
		}
		return false
	}
	return true
}

// Subpattern is true when every itemset of p is contained, in order, in a
// distinct itemset of q. Every pattern is a subpattern of itself.
func (p *Pattern) Subpattern(q *Pattern) bool {
	if p.Len() > q.Len() {
		return false
	}
	mine := p.Itemsets()
	theirs := q.Itemsets()
	j := 0
	for _, set := range mine {
		for j < len(theirs) && !contains(theirs[j], set) {
			j++
		}
		if j >= len(theirs) {
			return false
		}
		j++
	}
	return true
}

// StrictSubpattern is Subpattern excluding equality.
func (p *Pattern) StrictSubpattern(q *Pattern) bool {
	return p.Len() < q.Len() && p.Subpattern(q)
}

func (p *Pattern) Label() []byte {
	size := uint32(len(p.pairs))
	bytes := make([]byte, 4+5*size)
	binary.BigEndian.PutUint32(bytes[0:4], size)
	s := 4
	for _, pair := range p.pairs {
		binary.BigEndian.PutUint32(bytes[s : s+4], uint32(pair.Item))
		bytes[s+4] = byte(pair.Abs)
		s += 5
	}
	return bytes
}

func FromLabel(bytes []byte) (*Pattern, error) {
	if len(bytes) < 4 {
		return nil, errors.Errorf("bytes was too small %v < 4", len(bytes))
	}
	size := int(binary.BigEndian.Uint32(bytes[0:4]))
	expected := 4 + 5*size
	if len(bytes) < expected {
		return nil, errors.Errorf("bytes was too small %v < %v", len(bytes), expected)
	}
	p := &Pattern{pairs: make([]Pair, 0, size)}
	s := 4
	for i := 0; i < size; i++ {
		item := int32(binary.BigEndian.Uint32(bytes[s : s+4]))
		abs := Abstraction(bytes[s+4])
		if abs != After && abs != Equal {
			return nil, errors.Errorf("unknown abstraction %d at pair %d", abs, i)
		} else if i == 0 && abs != After {
			return nil, errors.Errorf("the first pair of a pattern must start an itemset")
		}
		p.pairs = append(p.pairs, Pair{item, abs})
		s += 5
	}
	return p, nil
}

func (p *Pattern) Equals(o types.Equatable) bool {
	a := types.ByteSlice(p.Label())
	switch b := o.(type) {
	case *Pattern:
		return a.Equals(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (p *Pattern) Less(o types.Sortable) bool {
	a := types.ByteSlice(p.Label())
	switch b := o.(type) {
	case *Pattern:
		return a.Less(types.ByteSlice(b.Label()))
	default:
		return false
	}
}

func (p *Pattern) Hash() int {
	return types.ByteSlice(p.Label()).Hash()
}

// String renders the pattern in SPMF itemset notation: items separated by
// spaces and every itemset terminated by -1.
func (p *Pattern) String() string {
	parts := make([]string, 0, 2*len(p.pairs))
	for i, pair := range p.pairs {
		if i > 0 && pair.Abs == After {
			parts = append(parts, "-1")
		}
		parts = append(parts, strconv.Itoa(int(pair.Item)))
	}
	if len(parts) > 0 {
		parts = append(parts, "-1")
	}
	return strings.Join(parts, " ")
}

// Parse reads SPMF itemset notation. A trailing itemset without its -1 is
// accepted, as is a -2 end of sequence marker.
func Parse(text string) (*Pattern, error) {
	itemsets := make([][]int32, 0, 10)
	cur := make([]int32, 0, 4)
	for _, col := range strings.Fields(text) {
		n, err := strconv.ParseInt(col, 10, 32)
		if err != nil {
			return nil, errors.Errorf("expected an item got '%v'", col)
		}
		switch {
		case n == -1:
			if len(cur) == 0 {
				return nil, errors.Errorf("empty itemset in '%v'", text)
			}
			itemsets = append(itemsets, cur)
			cur = make([]int32, 0, 4)
		case n == -2:
		case n < 0:
			return nil, errors.Errorf("items must be non-negative got %v", n)
		default:
			cur = append(cur, int32(n))
		}
	}
	if len(cur) > 0 {
		itemsets = append(itemsets, cur)
	}
	return FromItemsets(itemsets...), nil
}
