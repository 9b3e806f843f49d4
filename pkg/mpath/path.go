package mpath

import (
	"slices"
	"strings"
)

// Separator joins labels in the textual (ltree) form of a path.
const Separator = "."

// Path is a materialized position of a tree node: an ordered sequence of
// fixed-width labels, one per level. Root nodes have paths of length 1,
// the empty path denotes the (virtual) parent of all roots.
//
// Two paths compare label by label, a strict prefix is less than any of
// its extensions. Since all labels produced by a Codec share the same
// width, this order is both the sibling order and the pre-order of the
// tree.
type Path []string

// Relocation describes a rewrite of a subtree: the node at From and all of
// its descendants are moved under To.
type Relocation struct {
	From Path
	To   Path
}

// Noop reports whether r does not change anything.
func (r Relocation) Noop() bool {
	return r.From.Equal(r.To)
}

// Depth returns the number of labels in p.
func (p Path) Depth() int {
	return len(p)
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// String returns ltree text form of the path, e.g. "0000.0001".
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// TreePath returns p itself, so raw paths can be used wherever a node
// reference is expected.
func (p Path) TreePath() Path {
	return p
}

// Clone returns a copy of p which does not share memory with it.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return slices.Clone(p)
}

// Parent returns the path of the direct parent. The parent of a root node
// and of the empty path is the empty path.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return slices.Clone(p[:len(p)-1])
}

// Last returns the last label of p or an empty string for the empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Equal reports whether p and q consist of the same labels.
func (p Path) Equal(q Path) bool {
	return slices.Equal(p, q)
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && slices.Equal(p[:len(prefix)], prefix)
}

// IsAncestorOf reports whether p is a strict prefix of q.
func (p Path) IsAncestorOf(q Path) bool {
	return len(p) < len(q) && q.HasPrefix(p)
}

// IsDescendantOf reports whether q is a strict prefix of p.
func (p Path) IsDescendantOf(q Path) bool {
	return q.IsAncestorOf(p)
}

// IsParentOf reports whether p is the direct parent of q.
func (p Path) IsParentOf(q Path) bool {
	return len(p)+1 == len(q) && q.HasPrefix(p)
}

// IsSiblingOf reports whether p and q have the same parent. A path is a
// sibling of itself.
func (p Path) IsSiblingOf(q Path) bool {
	return len(p) > 0 && len(p) == len(q) && slices.Equal(p[:len(p)-1], q[:len(q)-1])
}

// Rebase replaces the from prefix of p with to. The result does not share
// memory with any of the arguments. Rebase panics if from is not a prefix
// of p.
func (p Path) Rebase(from, to Path) Path {
	if !p.HasPrefix(from) {
		panic("mpath: rebase of a path outside of the prefix")
	}
	res := make(Path, 0, len(to)+len(p)-len(from))
	res = append(res, to...)
	return append(res, p[len(from):]...)
}

// Join returns a new path consisting of p followed by labels.
func Join(p Path, labels ...string) Path {
	res := make(Path, 0, len(p)+len(labels))
	res = append(res, p...)
	return append(res, labels...)
}

// Compare compares paths label by label and returns -1, 0 or +1.
func Compare(a, b Path) int {
	return slices.Compare(a, b)
}
