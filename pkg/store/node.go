package store

import (
	"maps"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/mpath"
)

// Node is a single record of the tree collection.
type Node struct {
	ID   uuid.UUID
	Path mpath.Path
	// Attributes are arbitrary named values. Some of them may be used as
	// sort keys of the sorted tree mode.
	Attributes map[string]any
}

// TreePath returns the path of the node.
func (n Node) TreePath() mpath.Path {
	return n.Path
}

// Depth returns the depth of the node, roots have depth 1.
func (n Node) Depth() int {
	return len(n.Path)
}

// Attribute returns the named attribute value. Missing attributes and
// attributes holding nil are reported as absent.
func (n Node) Attribute(name string) (any, bool) {
	v, ok := n.Attributes[name]
	return v, ok && v != nil
}

// Clone returns a deep copy of the node's path and a shallow copy of its
// attribute map.
func (n Node) Clone() Node {
	return Node{
		ID:         n.ID,
		Path:       n.Path.Clone(),
		Attributes: maps.Clone(n.Attributes),
	}
}
