// Package mover applies subtree relocations to the store in one atomic
// batch.
package mover

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// Compile converts relocations to the rewrites of a single batch. Every
// relocation moves the node at From together with its descendants. No-op
// relocations are dropped.
//
// If one From is a descendant of another, the deeper relocation takes
// precedence for its subtree: rewrites are ordered deepest first and the
// store applies the first matching one.
func Compile(rs []mpath.Relocation) []store.Rewrite {
	sorted := slices.DeleteFunc(slices.Clone(rs), mpath.Relocation.Noop)
	slices.SortStableFunc(sorted, func(a, b mpath.Relocation) int {
		return cmp.Compare(len(b.From), len(a.From))
	})

	res := make([]store.Rewrite, 0, len(sorted))
	for _, r := range sorted {
		res = append(res, store.Rewrite{
			Match:  store.SubtreeOf(r.From),
			Prefix: r.To,
			Strip:  len(r.From),
		})
	}
	return res
}

// Mover submits relocations to the store.
type Mover struct {
	*cfg

	w store.Writer
}

// Option is an option of Mover constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.L(),
	}
}

// New returns Mover writing to w.
func New(w store.Writer, opts ...Option) *Mover {
	c := defaultCfg()

	for i := range opts {
		opts[i](c)
	}

	return &Mover{cfg: c, w: w}
}

// WithLogger returns option to specify Mover's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// Move applies relocations and stores put nodes in one batch. Put nodes
// are stored as given, relocations are evaluated against the state before
// the batch. Returns the number of relocated rows.
func (m *Mover) Move(ctx context.Context, rs []mpath.Relocation, put ...store.Node) (int, error) {
	b := store.Batch{
		Rewrites: Compile(rs),
		Put:      put,
	}
	if b.Empty() {
		return 0, nil
	}

	start := time.Now()

	n, err := m.w.Apply(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("apply %d relocations: %w", len(b.Rewrites), err)
	}

	m.log.Debug("relocations applied",
		zap.Int("relocations", len(b.Rewrites)),
		zap.Int("puts", len(put)),
		zap.Int("rows", n),
		zap.Duration("elapsed", time.Since(start)))

	return n, nil
}
