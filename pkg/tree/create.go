package tree

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// CreatePrm groups the parameters of Create operation.
type CreatePrm struct {
	id    uuid.UUID
	attrs map[string]any
	pos   position.Request
	path  mpath.Path
}

// CreateRes groups the resulting values of Create operation.
type CreateRes struct {
	node      store.Node
	relocated int
}

// SetID sets the ID of the new node. A random ID is used if not set.
func (p *CreatePrm) SetID(id uuid.UUID) {
	p.id = id
}

// SetAttributes sets the attributes of the new node.
func (p *CreatePrm) SetAttributes(attrs map[string]any) {
	p.attrs = attrs
}

// SetPosition sets the relative position of the new node.
func (p *CreatePrm) SetPosition(req position.Request) {
	p.pos = req
}

// SetPath sets the exact path of the new node. It conflicts with
// SetPosition.
func (p *CreatePrm) SetPath(path mpath.Path) {
	p.path = path
}

// Node returns the stored node.
func (r CreateRes) Node() store.Node {
	return r.node
}

// Relocated returns the number of existing nodes moved to make room.
func (r CreateRes) Relocated() int {
	return r.relocated
}

// Create stores a new node at the requested position.
//
// Returns ErrReservedField if both path and position are set,
// position.ErrInvalidRequest for incomplete positions, ErrParentNotFound or
// ErrReferenceNotFound for dangling references and ErrNodeExists if the ID
// is taken.
func (t *Tree) Create(ctx context.Context, prm CreatePrm) (res CreateRes, err error) {
	start := time.Now()
	defer func() { t.observe("Create", start, err) }()

	t.mtx.Lock()
	defer t.mtx.Unlock()

	if prm.path != nil && !prm.pos.IsZero() {
		return CreateRes{}, ErrReservedField
	}

	node := store.Node{ID: prm.id, Attributes: maps.Clone(prm.attrs)}
	if node.ID == uuid.Nil {
		node.ID = uuid.New()
	} else if err := t.checkFree(ctx, node.ID); err != nil {
		return CreateRes{}, err
	}

	if prm.path != nil {
		node.Path, err = t.checkPath(ctx, prm.path)
		if err != nil {
			return CreateRes{}, err
		}
		if _, err := t.mover.Move(ctx, nil, node); err != nil {
			return CreateRes{}, err
		}
		return CreateRes{node: node}, nil
	}

	pl, err := t.place(ctx, prm.pos, node)
	if err != nil {
		return CreateRes{}, err
	}
	node.Path = pl.Path

	n, err := t.mover.Move(ctx, pl.Relocations, node)
	if err != nil {
		return CreateRes{}, err
	}

	t.metrics.AddRelocations("Create", n)
	t.log.Debug("node created",
		zap.Stringer("id", node.ID),
		zap.Stringer("position", prm.pos),
		zap.Stringer("path", node.Path),
		zap.Int("relocated", n))

	return CreateRes{node: node, relocated: n}, nil
}

func (t *Tree) checkFree(ctx context.Context, id uuid.UUID) error {
	_, err := t.st.Get(ctx, id)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrNodeExists, id)
	case errors.Is(err, store.ErrNodeNotFound):
		return nil
	default:
		return fmt.Errorf("check node %s: %w", id, err)
	}
}

// checkPath validates an explicitly given path and its parent.
func (t *Tree) checkPath(ctx context.Context, p mpath.Path) (mpath.Path, error) {
	if len(p) == 0 {
		return nil, mpath.ErrEmptyPath
	}
	if err := t.factory.Validate(p); err != nil {
		return nil, err
	}
	if p.Depth() > 1 {
		ok, err := t.exists(ctx, p.Parent())
		if err != nil {
			return nil, fmt.Errorf("check parent of %s: %w", p, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, p.Parent())
		}
	}
	return p.Clone(), nil
}

// Blueprint describes a node to create together with its descendants.
type Blueprint struct {
	// ID of the node, random if not set.
	ID         uuid.UUID
	Attributes map[string]any
	Children   []Blueprint
}

// BulkCreatePrm groups the parameters of BulkCreate operation.
type BulkCreatePrm struct {
	branch Blueprint
	pos    position.Request
}

// BulkCreateRes groups the resulting values of BulkCreate operation.
type BulkCreateRes struct {
	nodes     []store.Node
	relocated int
}

// SetBranch sets the branch to create.
func (p *BulkCreatePrm) SetBranch(b Blueprint) {
	p.branch = b
}

// SetPosition sets the relative position of the branch root.
func (p *BulkCreatePrm) SetPosition(req position.Request) {
	p.pos = req
}

// Nodes returns the created nodes in path order.
func (r BulkCreateRes) Nodes() []store.Node {
	return r.nodes
}

// Relocated returns the number of existing nodes moved to make room.
func (r BulkCreateRes) Relocated() int {
	return r.relocated
}

// BulkCreate stores the whole branch in one batch. The branch root is
// placed like in Create, children are numbered consecutively in the given
// order or sorted by the ordering of the tree.
func (t *Tree) BulkCreate(ctx context.Context, prm BulkCreatePrm) (res BulkCreateRes, err error) {
	start := time.Now()
	defer func() { t.observe("BulkCreate", start, err) }()

	t.mtx.Lock()
	defer t.mtx.Unlock()

	b := assignIDs(prm.branch)
	if err := t.checkBlueprint(ctx, b, make(map[uuid.UUID]struct{})); err != nil {
		return BulkCreateRes{}, err
	}

	root := store.Node{ID: b.ID, Attributes: maps.Clone(b.Attributes)}
	pl, err := t.place(ctx, prm.pos, root)
	if err != nil {
		return BulkCreateRes{}, err
	}
	root.Path = pl.Path

	nodes := []store.Node{root}
	if err := t.layoutChildren(root.Path, b.Children, &nodes); err != nil {
		return BulkCreateRes{}, err
	}

	n, err := t.mover.Move(ctx, pl.Relocations, nodes...)
	if err != nil {
		return BulkCreateRes{}, err
	}

	t.metrics.AddRelocations("BulkCreate", n)
	t.log.Debug("branch created",
		zap.Stringer("root", root.ID),
		zap.Stringer("position", prm.pos),
		zap.Stringer("path", root.Path),
		zap.Int("nodes", len(nodes)),
		zap.Int("relocated", n))

	return BulkCreateRes{nodes: nodes, relocated: n}, nil
}

func assignIDs(b Blueprint) Blueprint {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	children := make([]Blueprint, len(b.Children))
	for i := range b.Children {
		children[i] = assignIDs(b.Children[i])
	}
	b.Children = children
	return b
}

func (t *Tree) checkBlueprint(ctx context.Context, b Blueprint, seen map[uuid.UUID]struct{}) error {
	if _, ok := seen[b.ID]; ok {
		return fmt.Errorf("%w: %s is repeated in the branch", ErrNodeExists, b.ID)
	}
	seen[b.ID] = struct{}{}

	if err := t.checkFree(ctx, b.ID); err != nil {
		return err
	}
	for i := range b.Children {
		if err := t.checkBlueprint(ctx, b.Children[i], seen); err != nil {
			return err
		}
	}
	return nil
}

// layoutChildren assigns paths to the children under parent and appends
// them to out in pre-order.
func (t *Tree) layoutChildren(parent mpath.Path, children []Blueprint, out *[]store.Node) error {
	if len(children) == 0 {
		return nil
	}

	nodes := make([]store.Node, len(children))
	byID := make(map[uuid.UUID]Blueprint, len(children))
	for i := range children {
		nodes[i] = store.Node{ID: children[i].ID, Attributes: maps.Clone(children[i].Attributes)}
		byID[children[i].ID] = children[i]
	}
	t.ord.Sort(nodes)

	i := 0
	for slot := range t.factory.Children(parent) {
		if i == len(nodes) {
			break
		}
		nodes[i].Path = slot
		*out = append(*out, nodes[i])
		if err := t.layoutChildren(slot, byID[nodes[i].ID].Children, out); err != nil {
			return err
		}
		i++
	}
	if i < len(nodes) {
		return fmt.Errorf("%w: %d children under %s", mpath.ErrOverflow, len(nodes), parent)
	}
	return nil
}
