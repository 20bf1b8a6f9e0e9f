package reporters

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/closeq/trie"
)

// FormatEntry writes one closed pattern as an SPMF line:
//
//	1 -1 2 3 -1 #SUP: 4 #SID: 0 3 7 9
func FormatEntry(w io.Writer, e *trie.Entry, sids bool) error {
	ids := e.Trie.IDList()
	if !sids {
		_, err := fmt.Fprintf(w, "%v #SUP: %d\n", e.Pattern, ids.Cardinality())
		return err
	}
	cols := make([]string, 0, ids.Cardinality())
	ids.Do(func(id int) bool {
		cols = append(cols, strconv.Itoa(id))
		return true
	})
	_, err := fmt.Fprintf(w, "%v #SUP: %d #SID: %s\n", e.Pattern, ids.Cardinality(), strings.Join(cols, " "))
	return err
}
