package sumidx

import (
	"encoding/binary"
	"sync"
)

import (
	"github.com/timtadh/fs2"
	"github.com/timtadh/fs2/bptree"
	"github.com/timtadh/fs2/fmap"
)

// Key buckets patterns which may share an occurrence set: equal support and
// equal sum of sequence ids.
type Key struct {
	Support int32
	Sum     int64
}

const keySize = 12

func SerializeKey(k Key) []byte {
	bytes := make([]byte, keySize)
	binary.BigEndian.PutUint32(bytes[0:4], uint32(k.Support))
	binary.BigEndian.PutUint64(bytes[4:12], uint64(k.Sum))
	return bytes
}

func DeserializeKey(bytes []byte) Key {
	return Key{
		Support: int32(binary.BigEndian.Uint32(bytes[0:4])),
		Sum:     int64(binary.BigEndian.Uint64(bytes[4:12])),
	}
}

type MultiMap interface {
	Keys() (KeyIterator, error)
	Iterate() (Iterator, error)
	Find(key Key) (Iterator, error)
	DoFind(key Key, do func(Key, []byte) error) error
	Has(key Key) (bool, error)
	Count(key Key) (int, error)
	Add(key Key, label []byte) error
	Remove(key Key, where func([]byte) bool) error
	Size() int
	Close() error
	Delete() error
}

type Iterator func() (Key, []byte, error, Iterator)
type KeyIterator func() (Key, error, KeyIterator)

func Do(run func() (Iterator, error), do func(key Key, label []byte) error) error {
	kvi, err := run()
	if err != nil {
		return err
	}
	var key Key
	var label []byte
	for key, label, err, kvi = kvi(); kvi != nil; key, label, err, kvi = kvi() {
		e := do(key, label)
		if e != nil {
			return e
		}
	}
	return err
}

func DoKey(run func() (KeyIterator, error), do func(Key) error) error {
	it, err := run()
	if err != nil {
		return err
	}
	var key Key
	for key, err, it = it(); it != nil; key, err, it = it() {
		e := do(key)
		if e != nil {
			return e
		}
	}
	return err
}

// BpTree keeps the labels on an fs2 B+tree, either in an anonymous mapping or
// in a file.
type BpTree struct {
	bf    *fmap.BlockFile
	bpt   *bptree.BpTree
	mutex sync.Mutex
}

func AnonBpTree() (*BpTree, error) {
	bf, err := fmap.Anonymous(fmap.BLOCKSIZE)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func NewBpTree(path string) (*BpTree, error) {
	bf, err := fmap.CreateBlockFile(path)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func newBpTree(bf *fmap.BlockFile) (*BpTree, error) {
	bpt, err := bptree.New(bf, keySize, -1)
	if err != nil {
		return nil, err
	}
	b := &BpTree{
		bf:  bf,
		bpt: bpt,
	}
	return b, nil
}

func (b *BpTree) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bf.Close()
}

func (b *BpTree) Delete() error {
	err := b.Close()
	if err != nil {
		return err
	}
	if b.bf.Path() != "" {
		return b.bf.Remove()
	}
	return nil
}

func (b *BpTree) Size() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Size()
}

func (b *BpTree) Add(key Key, label []byte) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Add(SerializeKey(key), label)
}

func (b *BpTree) Count(key Key) (int, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Count(SerializeKey(key))
}

func (b *BpTree) Has(key Key) (bool, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Has(SerializeKey(key))
}

func (b *BpTree) kvIter(kvi fs2.Iterator) (it Iterator) {
	it = func() (key Key, label []byte, err error, _ Iterator) {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		var k, v []byte
		k, v, err, kvi = kvi()
		if err != nil {
			return Key{}, nil, err, nil
		}
		if kvi == nil {
			return Key{}, nil, nil, nil
		}
		key = DeserializeKey(k)
		label = make([]byte, len(v))
		copy(label, v)
		return key, label, nil, it
	}
	return it
}

func (b *BpTree) keyIter(raw fs2.ItemIterator) (it KeyIterator) {
	it = func() (key Key, err error, _ KeyIterator) {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		var k []byte
		k, err, raw = raw()
		if err != nil {
			return Key{}, err, nil
		}
		if raw == nil {
			return Key{}, nil, nil
		}
		return DeserializeKey(k), nil, it
	}
	return it
}

func (b *BpTree) Keys() (it KeyIterator, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	raw, err := b.bpt.Keys()
	if err != nil {
		return nil, err
	}
	return b.keyIter(raw), nil
}

func (b *BpTree) Iterate() (it Iterator, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	raw, err := b.bpt.Iterate()
	if err != nil {
		return nil, err
	}
	return b.kvIter(raw), nil
}

func (b *BpTree) Find(key Key) (it Iterator, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	raw, err := b.bpt.Find(SerializeKey(key))
	if err != nil {
		return nil, err
	}
	return b.kvIter(raw), nil
}

func (b *BpTree) DoFind(key Key, do func(Key, []byte) error) error {
	return Do(func() (Iterator, error) { return b.Find(key) }, do)
}

func (b *BpTree) Remove(key Key, where func([]byte) bool) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Remove(SerializeKey(key), where)
}
