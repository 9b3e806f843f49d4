package tree

import "github.com/nspcc-dev/ltree/pkg/util/logicerr"

var (
	// ErrReservedField is returned when a node path is given together with
	// a relative position.
	ErrReservedField = logicerr.New("path can't be set together with position")

	// ErrParentNotFound is returned when the parent a node is placed under
	// does not exist.
	ErrParentNotFound = logicerr.New("parent node not found")

	// ErrReferenceNotFound is returned when the sibling a node is placed
	// next to does not exist.
	ErrReferenceNotFound = logicerr.New("reference node not found")

	// ErrNodeExists is returned on attempts to create a node with an ID
	// already in use.
	ErrNodeExists = logicerr.New("node already exists")
)
