package position

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/store"
)

// Describe returns relative position of the node placed at p: left of its
// next sibling if there is one, otherwise the last child of its parent or
// the root.
func Describe(ctx context.Context, r store.Reader, p mpath.Path) (Request, error) {
	if len(p) == 0 {
		return Request{}, mpath.ErrEmptyPath
	}

	next, ok, err := store.First(ctx, r, store.Where(store.SiblingOf(p), store.Greater(p)))
	if err != nil {
		return Request{}, fmt.Errorf("look for the next sibling of %s: %w", p, err)
	}
	if ok {
		return LeftOf(next), nil
	}

	if p.Depth() > 1 {
		return LastChildOf(p.Parent()), nil
	}
	return Root(), nil
}
