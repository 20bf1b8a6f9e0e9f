package loader

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/data-structures/hashtable"
)

import (
	"github.com/timtadh/closeq/config"
	"github.com/timtadh/closeq/idlist"
	"github.com/timtadh/closeq/pattern"
	"github.com/timtadh/closeq/trie"
)

type Input func() (reader io.Reader, closer func())

// Record is one enumerated pattern and the ids of the sequences it occurs in.
type Record struct {
	Line    int
	Pattern *pattern.Pattern
	IDs     *idlist.IDList
}

// Loader builds a trie out of the patterns written by a sequential pattern
// miner, one per line:
//
//	1 2 -1 3 -1 #SUP: 2 #SID: 0 4
//
// The #SID: column is required. #SUP: is checked against it when present.
type Loader struct {
	config  *config.Config
	counter *trie.Counter
	Staged  int
	Skipped int
}

func NewLoader(conf *config.Config, counter *trie.Counter) *Loader {
	return &Loader{
		config:  conf,
		counter: counter,
	}
}

func ParseLine(line string) (p *pattern.Pattern, ids *idlist.IDList, err error) {
	body := line
	support := -1
	sids := ""
	hasSids := false
	if i := strings.Index(line, "#"); i >= 0 {
		body = line[:i]
		for _, field := range strings.Split(line[i+1:], "#") {
			field = strings.TrimSpace(field)
			switch {
			case strings.HasPrefix(field, "SUP:"):
				support, err = strconv.Atoi(strings.TrimSpace(field[len("SUP:"):]))
				if err != nil {
					return nil, nil, errors.Errorf("bad support '%v'", field)
				}
			case strings.HasPrefix(field, "SID:"):
				sids = field[len("SID:"):]
				hasSids = true
			default:
				errors.Logf("DEBUG", "ignoring column '%v'", field)
			}
		}
	}
	if !hasSids {
		return nil, nil, errors.Errorf("line has no #SID: column")
	}
	p, err = pattern.Parse(body)
	if err != nil {
		return nil, nil, err
	}
	if p.Len() == 0 {
		return nil, nil, errors.Errorf("line has an empty pattern")
	}
	ids = idlist.New()
	for _, col := range strings.Fields(sids) {
		id, err := strconv.Atoi(col)
		if err != nil || !idlist.Valid(id) {
			return nil, nil, errors.Errorf("bad sequence id '%v'", col)
		}
		ids.Add(id)
	}
	if support >= 0 && support != ids.Cardinality() {
		return nil, nil, errors.Errorf("#SUP: %d but %d sequence ids", support, ids.Cardinality())
	}
	return p, ids, nil
}

func (l *Loader) Records(input Input) ([]*Record, error) {
	in, closer := input()
	defer closer()
	records := make([]*Record, 0, 100)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '@' || line[0] == '%' {
			continue
		}
		p, ids, err := ParseLine(line)
		if err != nil {
			return nil, errors.Errorf("line %d: %v", lineNo, err)
		}
		if ids.Cardinality() < l.config.Support {
			errors.Logf("DEBUG", "line %d: %v is below the minimum support", lineNo, p)
			l.Skipped++
			continue
		}
		records = append(records, &Record{Line: lineNo, Pattern: p, IDs: ids})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Build inserts the records shortest first so every parent is in place
// before its children. Records which arrive out of canonical order among
// their siblings go to the parent's staged collection.
func (l *Loader) Build(records []*Record) (*trie.Trie, error) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Pattern.Len() < records[j].Pattern.Len()
	})
	root := trie.New(l.counter, idlist.New())
	tries := hashtable.NewLinearHash()
	if err := tries.Put(pattern.Empty, root); err != nil {
		return nil, err
	}
	all := idlist.New()
	for _, r := range records {
		if tries.Has(r.Pattern) {
			return nil, errors.Errorf("line %d: duplicate pattern %v", r.Line, r.Pattern)
		}
		prefix := r.Pattern.Prefix()
		if !tries.Has(prefix) {
			return nil, errors.Errorf("line %d: the prefix %v of %v is missing", r.Line, prefix, r.Pattern)
		}
		obj, err := tries.Get(prefix)
		if err != nil {
			return nil, err
		}
		parent := obj.(*trie.Trie)
		kid := trie.New(l.counter, r.IDs)
		n := trie.NewNode(r.Pattern.Last(), kid)
		if parent.Len() == 0 || parent.Pair(parent.Len()-1).Less(n.Pair()) {
			parent.Insert(n)
		} else {
			parent.InsertStaged(n)
			l.Staged++
		}
		if err := tries.Put(r.Pattern, kid); err != nil {
			return nil, err
		}
		if r.Pattern.Len() == 1 {
			all = all.Or(r.IDs)
		}
	}
	root.SetIDList(all)
	errors.Logf("INFO", "built trie of %d patterns (%d staged, %d below support)", len(records), l.Staged, l.Skipped)
	return root, nil
}

func (l *Loader) Load(input Input) (*trie.Trie, error) {
	records, err := l.Records(input)
	if err != nil {
		return nil, err
	}
	return l.Build(records)
}
