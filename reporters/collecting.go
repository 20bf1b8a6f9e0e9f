package reporters

import ()

import (
	"github.com/timtadh/closeq/trie"
)

type Collector struct {
	Entries []*trie.Entry
	Closed  bool
}

func (c *Collector) Report(e *trie.Entry) error {
	c.Entries = append(c.Entries, e)
	return nil
}

func (c *Collector) Close() error {
	c.Closed = true
	return nil
}

func (c *Collector) Patterns() []string {
	strs := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		strs = append(strs, e.Pattern.String())
	}
	return strs
}
