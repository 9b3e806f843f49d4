// Package planner computes where a node goes among its siblings and which
// siblings have to be relocated to make room for it.
package planner

import (
	"context"
	"fmt"
	"iter"

	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// Planner plans placements against the current state of the store. Each
// plan is computed from a single read and is pure otherwise, it is up to
// the caller to apply it.
type Planner struct {
	*cfg

	f *mpath.Factory
	r store.Reader
}

// Option is an option of Planner constructor.
type Option func(*cfg)

type cfg struct {
	ord     Ordering
	compact bool
	log     *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.L(),
	}
}

// New returns Planner reading siblings from r.
func New(f *mpath.Factory, r store.Reader, opts ...Option) *Planner {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Planner{cfg: c, f: f, r: r}
}

// WithOrdering returns option to keep siblings sorted by the given keys.
// Positions of the requests only choose the parent then.
func WithOrdering(o Ordering) Option {
	return func(c *cfg) {
		c.ord = o
	}
}

// WithCompaction returns option to always lay the whole sibling list out
// again, closing gaps left by deletions and moves.
func WithCompaction(compact bool) Option {
	return func(c *cfg) {
		c.compact = compact
	}
}

// WithLogger returns option to specify Planner's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// Ordering returns the configured sibling ordering.
func (p *Planner) Ordering() Ordering {
	return p.ord
}

// Plan places node at t. node.Path is empty for new nodes and holds the
// current path for moved ones.
func (p *Planner) Plan(ctx context.Context, t position.Target, node store.Node) (Placement, error) {
	if err := checkDescendant(node, t.Parent); err != nil {
		return Placement{}, err
	}

	var (
		res Placement
		err error
	)
	switch {
	case len(p.ord) != 0 || p.compact:
		res, err = p.Full(ctx, t, node)
	case t.Append:
		res, err = p.Append(ctx, t.Parent, node)
	default:
		res, err = p.ShiftRight(ctx, t, node)
	}
	if err != nil {
		return Placement{}, err
	}

	p.log.Debug("placement planned",
		zap.Stringer("node", node.ID),
		zap.Stringer("target", t),
		zap.Stringer("path", res.Path),
		zap.Int("relocations", len(res.Relocations)))

	return res, nil
}

// Full places node with Diff over all current children of t.Parent.
func (p *Planner) Full(ctx context.Context, t position.Target, node store.Node) (Placement, error) {
	siblings, err := p.r.Select(ctx, store.Where(store.ChildOf(t.Parent)))
	if err != nil {
		return Placement{}, fmt.Errorf("read children of %s: %w", t.Parent, err)
	}
	return Diff(p.f, t, siblings, node, p.ord)
}

// Append places node after the last child of parent. It never relocates
// anything.
func (p *Planner) Append(ctx context.Context, parent mpath.Path, node store.Node) (Placement, error) {
	if err := checkDescendant(node, parent); err != nil {
		return Placement{}, err
	}

	last, ok, err := store.First(ctx, p.r, store.Where(store.ChildOf(parent)).Desc())
	if err != nil {
		return Placement{}, fmt.Errorf("read last child of %s: %w", parent, err)
	}

	switch {
	case !ok:
		res, err := p.f.NthChild(parent, 0)
		return Placement{Path: res}, err
	case last.ID == node.ID:
		return Placement{Path: last.Path}, nil
	}

	idx, err := p.f.Index(last.Path)
	if err != nil {
		return Placement{}, fmt.Errorf("last child of %s: %w", parent, err)
	}
	res, err := p.f.NthChild(parent, idx+1)
	return Placement{Path: res}, err
}

// ShiftRight places node exactly at t. If the slot is taken, the run of
// consecutive siblings starting at it is shifted one step to the right.
// Other siblings are not read.
func (p *Planner) ShiftRight(ctx context.Context, t position.Target, node store.Node) (Placement, error) {
	if err := checkDescendant(node, t.Parent); err != nil {
		return Placement{}, err
	}

	slot, err := p.f.NthChild(t.Parent, t.Index)
	if err != nil {
		return Placement{}, err
	}

	occupant, ok, err := store.First(ctx, p.r, store.Where(store.Equal(slot)))
	if err != nil {
		return Placement{}, fmt.Errorf("check slot %s: %w", slot, err)
	}
	if !ok || occupant.ID == node.ID {
		return Placement{Path: slot}, nil
	}

	tail, err := p.r.Select(ctx, store.Where(store.ChildOf(t.Parent), store.GreaterOrEqual(slot)))
	if err != nil {
		return Placement{}, fmt.Errorf("read siblings after %s: %w", slot, err)
	}

	seq, err := p.f.NextSiblings(slot)
	if err != nil {
		return Placement{}, err
	}
	next, stop := iter.Pull(seq)
	defer stop()

	res := Placement{Path: slot}
	cur := slot
	for i := range tail {
		// The node leaves its own slot free, so the run ends there.
		if !tail[i].Path.Equal(cur) || tail[i].ID == node.ID {
			break
		}

		to, ok := next()
		if !ok {
			return Placement{}, fmt.Errorf("%w: no slot after %s", mpath.ErrOverflow, cur)
		}
		res.Relocations = append(res.Relocations, mpath.Relocation{From: tail[i].Path, To: to})
		cur = to
	}
	return res, nil
}
