package tree

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/planner"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// Delete removes the node with all of its descendants and returns the
// number of removed nodes. Siblings keep their paths.
func (t *Tree) Delete(ctx context.Context, id uuid.UUID) (n int, err error) {
	start := time.Now()
	defer func() { t.observe("Delete", start, err) }()

	t.mtx.Lock()
	defer t.mtx.Unlock()

	n, err = t.st.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete node %s: %w", id, err)
	}

	t.log.Debug("subtree deleted", zap.Stringer("id", id), zap.Int("nodes", n))
	return n, nil
}

// Compact renumbers children of parent consecutively, in the order of the
// tree ordering if it is set, and returns the number of rewritten rows.
// The empty parent means roots.
func (t *Tree) Compact(ctx context.Context, parent mpath.Path) (n int, err error) {
	start := time.Now()
	defer func() { t.observe("Compact", start, err) }()

	t.mtx.Lock()
	defer t.mtx.Unlock()

	if len(parent) != 0 {
		ok, err := t.exists(ctx, parent)
		if err != nil {
			return 0, fmt.Errorf("check parent %s: %w", parent, err)
		}
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrParentNotFound, parent)
		}
	}

	siblings, err := t.st.Select(ctx, store.Where(store.ChildOf(parent)))
	if err != nil {
		return 0, fmt.Errorf("read children of %s: %w", parent, err)
	}

	rs, err := planner.Rearrange(t.factory, parent, siblings, t.ord)
	if err != nil {
		return 0, err
	}

	n, err = t.mover.Move(ctx, rs)
	if err != nil {
		return 0, err
	}

	t.metrics.AddRelocations("Compact", n)
	t.log.Debug("children compacted",
		zap.Stringer("parent", parent),
		zap.Int("relocations", len(rs)),
		zap.Int("relocated", n))

	return n, nil
}
