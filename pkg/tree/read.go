package tree

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/assemble"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
)

// Branch is a stored node with its descendants.
type Branch = assemble.Branch[store.Node]

// Get returns the node by ID.
func (t *Tree) Get(ctx context.Context, id uuid.UUID) (store.Node, error) {
	return t.st.Get(ctx, id)
}

// Select returns nodes matching the query.
func (t *Tree) Select(ctx context.Context, q store.Query) ([]store.Node, error) {
	return t.st.Select(ctx, q)
}

// Roots returns all the trees of the collection.
func (t *Tree) Roots(ctx context.Context) ([]Branch, error) {
	nodes, err := t.st.Select(ctx, store.Where())
	if err != nil {
		return nil, err
	}
	return slices.Collect(assemble.Assemble(slices.Values(nodes), store.Node.TreePath)), nil
}

// Subtree returns the node with all of its descendants.
func (t *Tree) Subtree(ctx context.Context, id uuid.UUID) (Branch, error) {
	node, err := t.st.Get(ctx, id)
	if err != nil {
		return Branch{}, err
	}

	nodes, err := t.st.Select(ctx, store.Where(store.SubtreeOf(node.Path)))
	if err != nil {
		return Branch{}, fmt.Errorf("read subtree of %s: %w", node.Path, err)
	}

	for b := range assemble.Assemble(slices.Values(nodes), store.Node.TreePath) {
		return b, nil
	}
	return Branch{}, fmt.Errorf("%w: %s is not indexed", store.ErrNodeNotFound, id)
}

// Describe returns the position the node occupies, in the form suitable to
// put it back: left of its next sibling, last child of its parent or root.
func (t *Tree) Describe(ctx context.Context, id uuid.UUID) (position.Request, error) {
	node, err := t.st.Get(ctx, id)
	if err != nil {
		return position.Request{}, err
	}
	return position.Describe(ctx, t.st, node.Path)
}

// MoveCandidates returns nodes the node can be moved next to or under,
// i.e. all nodes outside of its subtree.
func (t *Tree) MoveCandidates(ctx context.Context, id uuid.UUID) ([]store.Node, error) {
	node, err := t.st.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	all, err := t.st.Select(ctx, store.Where())
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(all, func(n store.Node) bool {
		return n.Path.HasPrefix(node.Path)
	}), nil
}
