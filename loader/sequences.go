package loader

import (
	"bufio"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/closeq/idlist"
	"github.com/timtadh/closeq/pattern"
)

// Sequences reads a sequence database in SPMF notation. Sequence ids are
// assigned in file order starting at 0, skipping comment and blank lines.
func Sequences(input Input, do func(sid int, seq *pattern.Pattern) error) error {
	in, closer := input()
	defer closer()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	sid := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '@' || line[0] == '%' {
			continue
		}
		seq, err := pattern.Parse(line)
		if err != nil {
			return errors.Errorf("line %d: %v", lineNo, err)
		}
		if err := do(sid, seq); err != nil {
			return err
		}
		sid++
	}
	return scanner.Err()
}

// Occurrences is the id-list of the sequences p occurs in.
func Occurrences(input Input, p *pattern.Pattern) (*idlist.IDList, error) {
	ids := idlist.New()
	err := Sequences(input, func(sid int, seq *pattern.Pattern) error {
		if p.Subpattern(seq) {
			ids.Add(sid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
