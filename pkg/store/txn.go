package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Txn is the view of a single storage transaction the shared algorithms
// work with. Every provider implements it over its native transaction.
type Txn interface {
	// Scan calls f for every indexed path within the scope subtree in path
	// order until f returns false.
	Scan(scope mpath.Path, desc bool, f func(mpath.Path, uuid.UUID) bool) error
	// Node returns the stored record or ErrNodeNotFound.
	Node(id uuid.UUID) (Node, error)
	// Owner returns the ID of the node indexed at p.
	Owner(p mpath.Path) (uuid.UUID, bool, error)
	// Save writes the record and indexes its path. Old index entries of
	// the node are not touched.
	Save(n Node) error
	// Unindex removes the index entry of p.
	Unindex(p mpath.Path) error
	// Remove removes the record of the node, not its index entry.
	Remove(id uuid.UUID) error
}

// Select runs the query inside the transaction.
func Select(tx Txn, q Query) ([]Node, error) {
	scope, ok := q.Scope()
	if !ok {
		return nil, nil
	}

	var (
		res  []Node
		rErr error
	)
	err := tx.Scan(scope, q.Descending, func(p mpath.Path, id uuid.UUID) bool {
		if !q.Match(p) {
			return true
		}

		var n Node
		n, rErr = tx.Node(id)
		if rErr != nil {
			rErr = fmt.Errorf("read node %s indexed at %q: %w", id, p, rErr)
			return false
		}

		res = append(res, n)
		return q.Limit <= 0 || len(res) < q.Limit
	})
	if err == nil {
		err = rErr
	}
	return res, err
}

type staged struct {
	node Node
	from mpath.Path
}

// ApplyBatch stages the batch inside the transaction. It returns the number
// of rewritten nodes. On error the caller must roll the transaction back.
func ApplyBatch(tx Txn, b Batch) (int, error) {
	var (
		moved  []staged
		seen   = make(map[uuid.UUID]int)
		rErr   error
		scoped = make(map[string]struct{})
	)

	for i := range b.Rewrites {
		scope, ok := Where(b.Rewrites[i].Match).Scope()
		if !ok {
			continue
		}
		if _, ok := scoped[scope.String()]; ok {
			continue
		}
		scoped[scope.String()] = struct{}{}

		err := tx.Scan(scope, false, func(p mpath.Path, id uuid.UUID) bool {
			if _, ok := seen[id]; ok {
				return true
			}

			to, ok := b.Target(p)
			if !ok {
				return true
			}

			var n Node
			n, rErr = tx.Node(id)
			if rErr != nil {
				rErr = fmt.Errorf("read node %s indexed at %q: %w", id, p, rErr)
				return false
			}

			n.Path = to
			seen[id] = len(moved)
			moved = append(moved, staged{node: n, from: p.Clone()})
			return true
		})
		if err == nil {
			err = rErr
		}
		if err != nil {
			return 0, err
		}
	}

	rewritten := len(moved)

	for i := range b.Put {
		n := b.Put[i].Clone()
		if j, ok := seen[n.ID]; ok {
			moved[j].node = n
			continue
		}

		old, err := tx.Node(n.ID)
		switch {
		case err == nil:
			seen[n.ID] = len(moved)
			moved = append(moved, staged{node: n, from: old.Path})
		case errors.Is(err, ErrNodeNotFound):
			seen[n.ID] = len(moved)
			moved = append(moved, staged{node: n})
		default:
			return 0, fmt.Errorf("read node %s: %w", n.ID, err)
		}
	}

	for i := range moved {
		if moved[i].from == nil {
			continue
		}
		if err := tx.Unindex(moved[i].from); err != nil {
			return 0, fmt.Errorf("unindex %q: %w", moved[i].from, err)
		}
	}

	taken := make(map[string]uuid.UUID, len(moved))
	for i := range moved {
		n := moved[i].node
		k := n.Path.String()
		if other, ok := taken[k]; ok {
			return 0, fmt.Errorf("%w: %q by %s and %s", ErrPathConflict, k, other, n.ID)
		}
		taken[k] = n.ID

		owner, ok, err := tx.Owner(n.Path)
		if err != nil {
			return 0, fmt.Errorf("check owner of %q: %w", k, err)
		}
		if ok && owner != n.ID {
			return 0, fmt.Errorf("%w: %q by %s", ErrPathConflict, k, owner)
		}
	}

	for i := range moved {
		if err := tx.Save(moved[i].node); err != nil {
			return 0, fmt.Errorf("save node %s: %w", moved[i].node.ID, err)
		}
	}

	return rewritten, nil
}

// DeleteSubtree removes the node and all its descendants inside the
// transaction. Returns the number of removed nodes.
func DeleteSubtree(tx Txn, id uuid.UUID) (int, error) {
	n, err := tx.Node(id)
	if err != nil {
		return 0, err
	}

	type entry struct {
		p  mpath.Path
		id uuid.UUID
	}
	var victims []entry
	err = tx.Scan(n.Path, false, func(p mpath.Path, id uuid.UUID) bool {
		victims = append(victims, entry{p: p.Clone(), id: id})
		return true
	})
	if err != nil {
		return 0, err
	}

	for i := range victims {
		if err := tx.Unindex(victims[i].p); err != nil {
			return 0, fmt.Errorf("unindex %q: %w", victims[i].p, err)
		}
		if err := tx.Remove(victims[i].id); err != nil {
			return 0, fmt.Errorf("remove node %s: %w", victims[i].id, err)
		}
	}
	return len(victims), nil
}
