package store

import (
	"fmt"

	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Op is a kind of path predicate.
type Op uint8

const (
	_ Op = iota
	// OpEqual matches the reference path itself.
	OpEqual
	// OpLess matches paths before the reference in pre-order.
	OpLess
	// OpLessOrEqual is OpLess plus the reference itself.
	OpLessOrEqual
	// OpGreater matches paths after the reference in pre-order.
	OpGreater
	// OpGreaterOrEqual is OpGreater plus the reference itself.
	OpGreaterOrEqual
	// OpDescendantOf matches strict descendants of the reference.
	OpDescendantOf
	// OpSubtreeOf is OpDescendantOf plus the reference itself.
	OpSubtreeOf
	// OpAncestorOf matches strict ancestors of the reference.
	OpAncestorOf
	// OpParentOf matches the direct parent of the reference.
	OpParentOf
	// OpChildOf matches direct children of the reference.
	OpChildOf
	// OpSiblingOf matches nodes sharing the parent with the reference,
	// including the reference itself.
	OpSiblingOf
)

var opNames = map[Op]string{
	OpEqual:          "=",
	OpLess:           "<",
	OpLessOrEqual:    "<=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
	OpDescendantOf:   "descendant_of",
	OpSubtreeOf:      "subtree_of",
	OpAncestorOf:     "ancestor_of",
	OpParentOf:       "parent_of",
	OpChildOf:        "child_of",
	OpSiblingOf:      "sibling_of",
}

// String implements fmt.Stringer.
func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Predicate is a condition on the path of a node.
type Predicate struct {
	op  Op
	ref mpath.Path
}

// Equal matches the node at p.
func Equal(p mpath.Path) Predicate { return Predicate{op: OpEqual, ref: p} }

// Less matches nodes preceding p.
func Less(p mpath.Path) Predicate { return Predicate{op: OpLess, ref: p} }

// LessOrEqual matches nodes preceding p and p itself.
func LessOrEqual(p mpath.Path) Predicate { return Predicate{op: OpLessOrEqual, ref: p} }

// Greater matches nodes following p.
func Greater(p mpath.Path) Predicate { return Predicate{op: OpGreater, ref: p} }

// GreaterOrEqual matches nodes following p and p itself.
func GreaterOrEqual(p mpath.Path) Predicate { return Predicate{op: OpGreaterOrEqual, ref: p} }

// DescendantOf matches strict descendants of p.
func DescendantOf(p mpath.Path) Predicate { return Predicate{op: OpDescendantOf, ref: p} }

// SubtreeOf matches p and all of its descendants.
func SubtreeOf(p mpath.Path) Predicate { return Predicate{op: OpSubtreeOf, ref: p} }

// AncestorOf matches strict ancestors of p.
func AncestorOf(p mpath.Path) Predicate { return Predicate{op: OpAncestorOf, ref: p} }

// ParentOf matches the direct parent of p.
func ParentOf(p mpath.Path) Predicate { return Predicate{op: OpParentOf, ref: p} }

// ChildOf matches direct children of p.
func ChildOf(p mpath.Path) Predicate { return Predicate{op: OpChildOf, ref: p} }

// SiblingOf matches nodes with the same parent as p, p included.
func SiblingOf(p mpath.Path) Predicate { return Predicate{op: OpSiblingOf, ref: p} }

// Op returns the kind of the predicate.
func (x Predicate) Op() Op { return x.op }

// Reference returns the path the predicate is relative to.
func (x Predicate) Reference() mpath.Path { return x.ref }

// String implements fmt.Stringer.
func (x Predicate) String() string {
	return fmt.Sprintf("%s %q", x.op, x.ref.String())
}

// Match reports whether p satisfies the predicate.
func (x Predicate) Match(p mpath.Path) bool {
	switch x.op {
	case OpEqual:
		return p.Equal(x.ref)
	case OpLess:
		return mpath.Compare(p, x.ref) < 0
	case OpLessOrEqual:
		return mpath.Compare(p, x.ref) <= 0
	case OpGreater:
		return mpath.Compare(p, x.ref) > 0
	case OpGreaterOrEqual:
		return mpath.Compare(p, x.ref) >= 0
	case OpDescendantOf:
		return p.IsDescendantOf(x.ref)
	case OpSubtreeOf:
		return p.HasPrefix(x.ref)
	case OpAncestorOf:
		return p.IsAncestorOf(x.ref)
	case OpParentOf:
		return p.IsParentOf(x.ref)
	case OpChildOf:
		return x.ref.IsParentOf(p)
	case OpSiblingOf:
		return p.IsSiblingOf(x.ref)
	default:
		return false
	}
}

// scope returns the subtree every matching path belongs to. The empty
// path means the whole collection.
func (x Predicate) scope() mpath.Path {
	switch x.op {
	case OpEqual, OpSubtreeOf, OpDescendantOf, OpChildOf:
		return x.ref
	case OpSiblingOf:
		if len(x.ref) > 1 {
			return x.ref[:len(x.ref)-1]
		}
	}
	return mpath.Path{}
}
