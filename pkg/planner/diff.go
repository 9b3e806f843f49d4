package planner

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/position"
	"github.com/nspcc-dev/ltree/pkg/store"
)

// Placement is the result of planning: the path for the placed node and
// relocations of other nodes freeing it. Relocations never include the
// placed node itself.
type Placement struct {
	Path        mpath.Path
	Relocations []mpath.Relocation
}

// Diff places node at t among siblings, the current children of t.Parent
// in path order. The whole sibling list is laid out again, so gaps are
// closed and the ordering, if any, is restored. node may be one of the
// siblings, it is matched by ID.
func Diff(f *mpath.Factory, t position.Target, siblings []store.Node, node store.Node, ord Ordering) (Placement, error) {
	if err := checkDescendant(node, t.Parent); err != nil {
		return Placement{}, err
	}

	list, err := insert(f, t, siblings, node)
	if err != nil {
		return Placement{}, err
	}

	ord.Sort(list)

	return layout(f, t.Parent, list, node.ID)
}

// Rearrange lays siblings of parent out again without placing anything.
func Rearrange(f *mpath.Factory, parent mpath.Path, siblings []store.Node, ord Ordering) ([]mpath.Relocation, error) {
	list := slices.Clone(siblings)
	ord.Sort(list)

	pl, err := layout(f, parent, list, uuid.Nil)
	return pl.Relocations, err
}

func checkDescendant(node store.Node, parent mpath.Path) error {
	if len(node.Path) != 0 && parent.HasPrefix(node.Path) {
		return fmt.Errorf("%w: %s under %s", ErrSelfDescendant, node.Path, parent)
	}
	return nil
}

// insert returns siblings with node inserted at the requested position.
func insert(f *mpath.Factory, t position.Target, siblings []store.Node, node store.Node) ([]store.Node, error) {
	removed := slices.IndexFunc(siblings, func(n store.Node) bool { return n.ID == node.ID })

	pos := len(siblings)
	if !t.Append {
		for i := range siblings {
			idx, err := f.Index(siblings[i].Path)
			if err != nil {
				return nil, fmt.Errorf("sibling %s: %w", siblings[i].ID, err)
			}
			if idx >= t.Index {
				pos = i
				break
			}
		}
	}

	list := make([]store.Node, 0, len(siblings)+1)
	list = append(list, siblings...)
	if removed >= 0 {
		list = slices.Delete(list, removed, removed+1)
		if removed < pos {
			pos--
		}
	}
	return slices.Insert(list, pos, node), nil
}

func layout(f *mpath.Factory, parent mpath.Path, list []store.Node, placed uuid.UUID) (Placement, error) {
	var (
		res Placement
		i   int
	)
	for slot := range f.Children(parent) {
		if i == len(list) {
			break
		}

		n := list[i]
		switch {
		case placed != uuid.Nil && n.ID == placed:
			res.Path = slot
		case !n.Path.Equal(slot):
			res.Relocations = append(res.Relocations, mpath.Relocation{From: n.Path, To: slot})
		}
		i++
	}

	if i < len(list) {
		return Placement{}, fmt.Errorf("%w: %d children under %s", mpath.ErrOverflow, len(list), parent)
	}
	return res, nil
}
