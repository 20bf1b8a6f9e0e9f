package reporters

import (
	"bufio"
	"io"
	"os"
)

import (
	"github.com/timtadh/closeq/config"
	"github.com/timtadh/closeq/trie"
)

type File struct {
	config   *config.Config
	file     io.WriteCloser
	patterns *bufio.Writer
	count    int
}

func NewFile(c *config.Config, filename string) (*File, error) {
	if filename == "" {
		filename = "closed.txt"
	}
	f, err := os.Create(c.OutputFile(filename))
	if err != nil {
		return nil, err
	}
	r := &File{
		config:   c,
		file:     f,
		patterns: bufio.NewWriter(f),
	}
	return r, nil
}

func (r *File) Report(e *trie.Entry) error {
	r.count++
	return FormatEntry(r.patterns, e, r.config.Sids)
}

func (r *File) Close() error {
	err := r.patterns.Flush()
	cerr := r.file.Close()
	if err != nil {
		return err
	}
	return cerr
}
