package common

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"github.com/spf13/cobra"
)

// ResolveNode finds the node referenced either by its ID or by its path.
func ResolveNode(ctx context.Context, tr *tree.Tree, ref string) (store.Node, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return tr.Get(ctx, id)
	}

	p, err := tr.Factory().Parse(ref)
	if err != nil {
		return store.Node{}, err
	}
	if len(p) == 0 {
		return store.Node{}, fmt.Errorf("%w: empty reference", store.ErrNodeNotFound)
	}

	n, ok, err := store.First(ctx, tr, store.Where(store.Equal(p)))
	if err != nil {
		return store.Node{}, err
	}
	if !ok {
		return store.Node{}, fmt.Errorf("%w: %s", store.ErrNodeNotFound, p)
	}
	return n, nil
}

// ResolvePath returns the path referenced by ref. Paths are returned as is,
// IDs are looked up.
func ResolvePath(ctx context.Context, tr *tree.Tree, ref string) (mpath.Path, error) {
	if _, err := uuid.Parse(ref); err != nil {
		return tr.Factory().Parse(ref)
	}

	n, err := ResolveNode(ctx, tr, ref)
	if err != nil {
		return nil, err
	}
	return n.Path, nil
}

const (
	rootFlag         = "root"
	childOfFlag      = "child-of"
	lastChildOfFlag  = "last-child-of"
	firstChildOfFlag = "first-child-of"
	leftOfFlag       = "left-of"
	rightOfFlag      = "right-of"
)

// PositionFlags is a set of mutually exclusive command line flags
// describing a relative position.
type PositionFlags struct {
	cmd *cobra.Command

	root bool
	refs map[string]*string
}

// AddPositionFlags adds position flags to the command.
func AddPositionFlags(cmd *cobra.Command) *PositionFlags {
	x := &PositionFlags{
		cmd:  cmd,
		refs: make(map[string]*string),
	}

	ff := cmd.Flags()
	ff.BoolVar(&x.root, rootFlag, false, "Place the node as a new root")
	for name, usage := range map[string]string{
		childOfFlag:      "Append the node to children of the referenced node",
		lastChildOfFlag:  "Append the node to children of the referenced node",
		firstChildOfFlag: "Place the node before all children of the referenced node",
		leftOfFlag:       "Place the node just before the referenced node",
		rightOfFlag:      "Place the node just after the referenced node",
	} {
		x.refs[name] = ff.String(name, "", usage+" (ID or path)")
	}

	cmd.MarkFlagsMutuallyExclusive(rootFlag, childOfFlag, lastChildOfFlag,
		firstChildOfFlag, leftOfFlag, rightOfFlag)

	return x
}

// Request resolves flag values into a position request.
func (x *PositionFlags) Request(ctx context.Context, tr *tree.Tree) (position.Request, error) {
	spec := position.Spec{Root: x.root}

	for name, dst := range map[string]*position.Referent{
		childOfFlag:      &spec.ChildOf,
		lastChildOfFlag:  &spec.LastChildOf,
		firstChildOfFlag: &spec.FirstChildOf,
		leftOfFlag:       &spec.LeftOf,
		rightOfFlag:      &spec.RightOf,
	} {
		if !x.cmd.Flags().Changed(name) {
			continue
		}

		p, err := ResolvePath(ctx, tr, *x.refs[name])
		if err != nil {
			return position.Request{}, fmt.Errorf("--%s: %w", name, err)
		}
		*dst = p
	}

	return spec.Request()
}
