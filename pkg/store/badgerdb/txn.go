package badgerdb

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/store"
)

var (
	nodesPrefix = []byte("n/")
	pathsPrefix = []byte("p/")
)

func nodeKey(id uuid.UUID) []byte {
	return append(append(make([]byte, 0, len(nodesPrefix)+len(id)), nodesPrefix...), id[:]...)
}

func pathKey(k []byte) []byte {
	return append(append(make([]byte, 0, len(pathsPrefix)+len(k)), pathsPrefix...), k...)
}

type txn struct {
	tx *badger.Txn
}

func (t txn) Scan(scope mpath.Path, desc bool, f func(mpath.Path, uuid.UUID) bool) error {
	lo, hi := store.ScopeKey(scope)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = pathsPrefix
	opts.Reverse = desc

	it := t.tx.NewIterator(opts)
	defer it.Close()

	switch {
	case !desc:
		it.Seek(pathKey(lo))
	case hi == nil:
		it.Seek(pathKey([]byte{0xff}))
	default:
		it.Seek(pathKey(hi))
	}

	for ; it.ValidForPrefix(pathsPrefix); it.Next() {
		item := it.Item()
		k := item.KeyCopy(nil)[len(pathsPrefix):]
		if !store.InScope(k, scope) {
			break
		}

		v, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read node ID indexed at %q: %w", k, err)
		}
		id, err := uuid.FromBytes(v)
		if err != nil {
			return fmt.Errorf("invalid node ID indexed at %q: %w", k, err)
		}
		if !f(store.KeyPath(k), id) {
			break
		}
	}
	return nil
}

func (t txn) Node(id uuid.UUID) (store.Node, error) {
	item, err := t.tx.Get(nodeKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.Node{}, store.ErrNodeNotFound
		}
		return store.Node{}, err
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return store.Node{}, err
	}
	return store.UnmarshalRecord(data)
}

func (t txn) Owner(p mpath.Path) (uuid.UUID, bool, error) {
	item, err := t.tx.Get(pathKey(store.PathKey(p)))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return uuid.UUID{}, false, nil
		}
		return uuid.UUID{}, false, err
	}

	v, err := item.ValueCopy(nil)
	if err != nil {
		return uuid.UUID{}, false, err
	}
	id, err := uuid.FromBytes(v)
	if err != nil {
		return uuid.UUID{}, false, fmt.Errorf("invalid node ID indexed at %q: %w", p, err)
	}
	return id, true, nil
}

func (t txn) Save(n store.Node) error {
	data, err := store.MarshalRecord(n)
	if err != nil {
		return err
	}
	if err := t.tx.Set(nodeKey(n.ID), data); err != nil {
		return err
	}
	return t.tx.Set(pathKey(store.PathKey(n.Path)), append([]byte(nil), n.ID[:]...))
}

func (t txn) Unindex(p mpath.Path) error {
	return t.tx.Delete(pathKey(store.PathKey(p)))
}

func (t txn) Remove(id uuid.UUID) error {
	return t.tx.Delete(nodeKey(id))
}
