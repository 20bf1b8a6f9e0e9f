package trie

import (
	"fmt"
)

import (
	"github.com/timtadh/closeq/pattern"
)

// Node is one edge of a trie: the pair labelling the edge and the trie it
// leads to. A nil child means nothing is known below the edge.
type Node struct {
	pair  pattern.Pair
	child *Trie
}

func NewNode(pair pattern.Pair, child *Trie) *Node {
	return &Node{pair: pair, child: child}
}

func (n *Node) Pair() pattern.Pair {
	return n.pair
}

func (n *Node) SetPair(pair pattern.Pair) {
	n.pair = pair
}

func (n *Node) Child() *Trie {
	return n.child
}

func (n *Node) SetChild(child *Trie) {
	n.child = child
}

func (n *Node) Less(o *Node) bool {
	return n.pair.Less(o.pair)
}

func (n *Node) clear() {
	n.child = nil
	n.pair = pattern.Pair{}
}

func (n *Node) String() string {
	if n.child == nil {
		return fmt.Sprintf("<Node %v>", n.pair)
	}
	return fmt.Sprintf("<Node %v -> %d>", n.pair, n.child.id)
}

type nodes []*Node

func (ns nodes) Len() int {
	return len(ns)
}

func (ns nodes) Less(i, j int) bool {
	return ns[i].Less(ns[j])
}

func (ns nodes) Swap(i, j int) {
	ns[i], ns[j] = ns[j], ns[i]
}
