// Package assemble restores parent/children nesting from a flat sequence
// of nodes sorted by path.
package assemble

import (
	"iter"
	"slices"

	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Branch is a node with all of its descendants in pre-order.
type Branch[T any] struct {
	Node        T
	Descendants []T

	path func(T) mpath.Path
}

// Children returns direct children of the branch, each with its own
// descendants.
func (b Branch[T]) Children() iter.Seq[Branch[T]] {
	return Assemble(slices.Values(b.Descendants), b.path)
}

// Assemble groups a path-ordered sequence into branches of its top-level
// nodes. A node starts a new branch unless it is deeper than the current
// one. seq is read once, lazily.
func Assemble[T any](seq iter.Seq[T], path func(T) mpath.Path) iter.Seq[Branch[T]] {
	return func(yield func(Branch[T]) bool) {
		next, stop := iter.Pull(seq)
		defer stop()

		c := cursor[T]{next: next}
		for {
			root, ok := c.read()
			if !ok {
				return
			}

			b := Branch[T]{Node: root, path: path}
			depth := len(path(root))
			for {
				n, ok := c.read()
				if !ok {
					break
				}
				if len(path(n)) <= depth {
					c.unread(n)
					break
				}
				b.Descendants = append(b.Descendants, n)
			}

			if !yield(b) {
				return
			}
		}
	}
}

// cursor is a pull iterator able to hold one element read ahead.
type cursor[T any] struct {
	next   func() (T, bool)
	peeked T
	ok     bool
}

func (c *cursor[T]) read() (T, bool) {
	if c.ok {
		c.ok = false
		return c.peeked, true
	}
	return c.next()
}

func (c *cursor[T]) unread(v T) {
	c.peeked, c.ok = v, true
}
