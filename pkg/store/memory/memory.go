// Package memory implements an in-memory tree store. It is intended for
// tests and short-living tools: nothing is persisted.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// Store is an in-memory store.Storage. Every batch is applied to a copy of
// the state which replaces the current one on success.
type Store struct {
	*cfg

	mtx sync.RWMutex
	st  *state
}

var _ store.Storage = (*Store)(nil)

// Option is an option of Store constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.L(),
	}
}

// WithLogger returns option to specify Store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "memory tree store"))
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	c := defaultCfg()
	for i := range opts {
		opts[i](c)
	}

	return &Store{
		cfg: c,
		st:  newState(),
	}
}

// Open implements store.Storage.
func (s *Store) Open() error { return nil }

// Init implements store.Storage.
func (s *Store) Init() error { return nil }

// Close implements store.Storage.
func (s *Store) Close() error { return nil }

// Get implements store.Reader.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (store.Node, error) {
	if err := ctx.Err(); err != nil {
		return store.Node{}, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return (*txn)(s.st).Node(id)
}

// Select implements store.Reader.
func (s *Store) Select(ctx context.Context, q store.Query) ([]store.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return store.Select((*txn)(s.st), q)
}

// Apply implements store.Writer.
func (s *Store) Apply(ctx context.Context, b store.Batch) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	start := time.Now()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	next := s.st.clone()
	n, err := store.ApplyBatch((*txn)(next), b)
	if err != nil {
		return 0, err
	}
	s.st = next

	s.log.Debug("batch applied",
		zap.Int("rewrites", len(b.Rewrites)),
		zap.Int("puts", len(b.Put)),
		zap.Int("moved", n),
		zap.Duration("elapsed", time.Since(start)))

	return n, nil
}

// Delete implements store.Writer.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	next := s.st.clone()
	n, err := store.DeleteSubtree((*txn)(next), id)
	if err != nil {
		return 0, err
	}
	s.st = next
	return n, nil
}

type state struct {
	nodes map[uuid.UUID]store.Node
	paths map[string]uuid.UUID
	// keys holds index keys of paths in ascending order.
	keys []string
}

func newState() *state {
	return &state{
		nodes: make(map[uuid.UUID]store.Node),
		paths: make(map[string]uuid.UUID),
	}
}

func (s *state) clone() *state {
	return &state{
		nodes: maps.Clone(s.nodes),
		paths: maps.Clone(s.paths),
		keys:  slices.Clone(s.keys),
	}
}

type txn state

func (t *txn) Scan(scope mpath.Path, desc bool, f func(mpath.Path, uuid.UUID) bool) error {
	lo, hi := store.ScopeKey(scope)

	if !desc {
		i, _ := slices.BinarySearch(t.keys, string(lo))
		for ; i < len(t.keys); i++ {
			k := t.keys[i]
			if !store.InScope([]byte(k), scope) {
				break
			}
			if !f(store.KeyPath([]byte(k)), t.paths[k]) {
				break
			}
		}
		return nil
	}

	i := len(t.keys)
	if hi != nil {
		i, _ = slices.BinarySearch(t.keys, string(hi))
	}
	for i--; i >= 0; i-- {
		k := t.keys[i]
		if !store.InScope([]byte(k), scope) {
			break
		}
		if !f(store.KeyPath([]byte(k)), t.paths[k]) {
			break
		}
	}
	return nil
}

func (t *txn) Node(id uuid.UUID) (store.Node, error) {
	n, ok := t.nodes[id]
	if !ok {
		return store.Node{}, store.ErrNodeNotFound
	}
	return n.Clone(), nil
}

func (t *txn) Owner(p mpath.Path) (uuid.UUID, bool, error) {
	id, ok := t.paths[p.String()]
	return id, ok, nil
}

func (t *txn) Save(n store.Node) error {
	n = n.Clone()
	t.nodes[n.ID] = n

	k := n.Path.String()
	if _, ok := t.paths[k]; !ok {
		i, _ := slices.BinarySearch(t.keys, k)
		t.keys = slices.Insert(t.keys, i, k)
	}
	t.paths[k] = n.ID
	return nil
}

func (t *txn) Unindex(p mpath.Path) error {
	k := p.String()
	if _, ok := t.paths[k]; !ok {
		return nil
	}
	delete(t.paths, k)

	if i, ok := slices.BinarySearch(t.keys, k); ok {
		t.keys = slices.Delete(t.keys, i, i+1)
	}
	return nil
}

func (t *txn) Remove(id uuid.UUID) error {
	delete(t.nodes, id)
	return nil
}
