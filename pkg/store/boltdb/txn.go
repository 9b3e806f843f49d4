package boltdb

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.etcd.io/bbolt"
)

type txn struct {
	nodes *bbolt.Bucket
	paths *bbolt.Bucket
}

func newTxn(tx *bbolt.Tx) txn {
	return txn{
		nodes: tx.Bucket(nodesBucket),
		paths: tx.Bucket(pathsBucket),
	}
}

func (t txn) Scan(scope mpath.Path, desc bool, f func(mpath.Path, uuid.UUID) bool) error {
	lo, hi := store.ScopeKey(scope)
	c := t.paths.Cursor()

	var k, v []byte
	switch {
	case !desc && lo == nil:
		k, v = c.First()
	case !desc:
		k, v = c.Seek(lo)
	case hi == nil:
		k, v = c.Last()
	default:
		if k, _ = c.Seek(hi); k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
	}

	for ; k != nil && store.InScope(k, scope); k, v = step(c, desc) {
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

func step(c *bbolt.Cursor, desc bool) ([]byte, []byte) {
	if desc {
		return c.Prev()
	}
	return c.Next()
}

func (t txn) Node(id uuid.UUID) (store.Node, error) {
	data := t.nodes.Get(id[:])
	if data == nil {
		return store.Node{}, store.ErrNodeNotFound
	}
	return store.UnmarshalRecord(data)
}

func (t txn) Owner(p mpath.Path) (uuid.UUID, bool, error) {
	v := t.paths.Get(store.PathKey(p))
	if v == nil {
		return uuid.UUID{}, false, nil
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
	if err := t.nodes.Put(n.ID[:], data); err != nil {
		return err
	}
	return t.paths.Put(store.PathKey(n.Path), n.ID[:])
}

func (t txn) Unindex(p mpath.Path) error {
	return t.paths.Delete(store.PathKey(p))
}

func (t txn) Remove(id uuid.UUID) error {
	return t.nodes.Delete(id[:])
}
