package config

import (
	"math/rand"
	"path/filepath"
)

import (
	"github.com/timtadh/closeq/stores/sumidx"
)

type Config struct {
	Cache   string
	Output  string
	Support int
	Sids    bool
}

func (c *Config) Copy() *Config {
	return &Config{
		Cache:   c.Cache,
		Output:  c.Output,
		Support: c.Support,
		Sids:    c.Sids,
	}
}

func (c *Config) Randstr() string {
	runes := make([]rune, 0, 10)
	for i := 0; i < 10; i++ {
		runes = append(runes, rune(97+rand.Intn(26)))
	}
	return string(runes)
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

func (c *Config) SumIndex(name string) (sumidx.MultiMap, error) {
	if c.Cache == "" {
		return sumidx.AnonBpTree()
	} else {
		return sumidx.NewBpTree(c.CacheFile(name + "-" + c.Randstr() + ".bptree"))
	}
}
