package planner

import "github.com/nspcc-dev/ltree/pkg/util/logicerr"

// ErrSelfDescendant is returned on attempts to move a node under itself.
var ErrSelfDescendant = logicerr.New("node can't become its own descendant")
