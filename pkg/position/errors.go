package position

import "github.com/nspcc-dev/ltree/pkg/util/logicerr"

// ErrInvalidRequest is returned for position requests with zero or more
// than one kind, or without a required reference.
var ErrInvalidRequest = logicerr.New("invalid position request")
