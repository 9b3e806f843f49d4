package tree

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// MovePrm groups the parameters of Move operation.
type MovePrm struct {
	id  uuid.UUID
	pos position.Request
}

// MoveRes groups the resulting values of Move operation.
type MoveRes struct {
	node      store.Node
	relocated int
}

// SetID sets the ID of the node to move.
func (p *MovePrm) SetID(id uuid.UUID) {
	p.id = id
}

// SetPosition sets the new relative position of the node.
func (p *MovePrm) SetPosition(req position.Request) {
	p.pos = req
}

// Node returns the moved node with its new path.
func (r MoveRes) Node() store.Node {
	return r.node
}

// Relocated returns the number of rewritten rows, the moved subtree
// included.
func (r MoveRes) Relocated() int {
	return r.relocated
}

// Move places the node with all of its descendants at the requested
// position.
//
// Returns store.ErrNodeNotFound for unknown IDs and
// planner.ErrSelfDescendant for positions inside the moved subtree.
func (t *Tree) Move(ctx context.Context, prm MovePrm) (res MoveRes, err error) {
	start := time.Now()
	defer func() { t.observe("Move", start, err) }()

	t.mtx.Lock()
	defer t.mtx.Unlock()

	node, err := t.st.Get(ctx, prm.id)
	if err != nil {
		return MoveRes{}, fmt.Errorf("read node %s: %w", prm.id, err)
	}

	pl, err := t.place(ctx, prm.pos, node)
	if err != nil {
		return MoveRes{}, err
	}

	rs := append(pl.Relocations, mpath.Relocation{From: node.Path, To: pl.Path})
	n, err := t.mover.Move(ctx, rs)
	if err != nil {
		return MoveRes{}, err
	}

	t.metrics.AddRelocations("Move", n)
	t.log.Debug("node moved",
		zap.Stringer("id", node.ID),
		zap.Stringer("position", prm.pos),
		zap.Stringer("from", node.Path),
		zap.Stringer("to", pl.Path),
		zap.Int("relocated", n))

	node.Path = pl.Path
	return MoveRes{node: node, relocated: n}, nil
}
