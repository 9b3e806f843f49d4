// Package tree implements the tree manager: it creates, moves, reads and
// deletes nodes of a tree collection kept in a store.Store, translating
// relative positions into materialized paths.
package tree

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nspcc-dev/ltree/pkg/mover"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/planner"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// Tree is a tree collection manager.
//
// Write operations of a single Tree are serialized. Several Tree instances
// over the same store must be coordinated by the caller.
type Tree struct {
	*cfg

	mtx sync.Mutex

	st       store.Store
	resolver position.Resolver
	planner  *planner.Planner
	mover    *mover.Mover
}

// Option is an option of Tree constructor.
type Option func(*cfg)

type cfg struct {
	factory *mpath.Factory
	ord     planner.Ordering
	compact bool

	log     *zap.Logger
	metrics MetricRegister
}

func defaultCfg() *cfg {
	return &cfg{
		factory: mpath.NewFactory(mpath.DefaultCodec()),
		log:     zap.L(),
		metrics: noopMetrics{},
	}
}

// New returns Tree over st.
func New(st store.Store, opts ...Option) *Tree {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	t := &Tree{
		cfg:   c,
		st:    st,
		mover: mover.New(st, mover.WithLogger(c.log)),
		planner: planner.New(c.factory, st,
			planner.WithOrdering(c.ord),
			planner.WithCompaction(c.compact),
			planner.WithLogger(c.log),
		),
	}

	if len(c.ord) != 0 {
		t.resolver = position.Sorted{}
	} else {
		t.resolver = position.NewExplicit(c.factory)
	}

	return t
}

// WithFactory returns option to specify the label alphabet and length.
func WithFactory(f *mpath.Factory) Option {
	return func(c *cfg) {
		c.factory = f
	}
}

// WithOrdering returns option to keep siblings sorted by node
// attributes. Positions of requests only choose the parent then.
func WithOrdering(o planner.Ordering) Option {
	return func(c *cfg) {
		c.ord = o
	}
}

// WithCompaction returns option to lay out the whole sibling list on every
// placement, closing gaps.
func WithCompaction(compact bool) Option {
	return func(c *cfg) {
		c.compact = compact
	}
}

// WithLogger returns option to specify Tree's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "tree"))
	}
}

// WithMetrics returns option to specify the metrics collector.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// Factory returns the path factory of the tree.
func (t *Tree) Factory() *mpath.Factory {
	return t.factory
}

func (t *Tree) observe(method string, start time.Time, err error) {
	t.metrics.AddMethodDuration(method, time.Since(start))
	if err != nil {
		t.metrics.IncErrors(method)
	}
}

func (t *Tree) exists(ctx context.Context, p mpath.Path) (bool, error) {
	_, ok, err := store.First(ctx, t.st, store.Where(store.Equal(p)))
	return ok, err
}

// checkReference makes sure the node the request refers to is stored.
func (t *Tree) checkReference(ctx context.Context, req position.Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.Kind() == position.KindRoot {
		return nil
	}

	ok, err := t.exists(ctx, req.Reference())
	if err != nil {
		return fmt.Errorf("check reference %s: %w", req.Reference(), err)
	}
	if ok {
		return nil
	}

	switch req.Kind() {
	case position.KindChildOf, position.KindLastChildOf, position.KindFirstChildOf:
		return fmt.Errorf("%w: %s", ErrParentNotFound, req.Reference())
	default:
		return fmt.Errorf("%w: %s", ErrReferenceNotFound, req.Reference())
	}
}

// place resolves the request and plans the placement of node.
func (t *Tree) place(ctx context.Context, req position.Request, node store.Node) (planner.Placement, error) {
	if err := t.checkReference(ctx, req); err != nil {
		return planner.Placement{}, err
	}

	target, err := t.resolver.Resolve(req)
	if err != nil {
		return planner.Placement{}, err
	}

	return t.planner.Plan(ctx, target, node)
}
