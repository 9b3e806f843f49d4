package store

import (
	"errors"

	"github.com/nspcc-dev/ltree/pkg/util/logicerr"
)

var (
	// ErrNodeNotFound is returned when the requested node is missing.
	ErrNodeNotFound = logicerr.New("node not found")

	// ErrPathConflict is returned when a batch would leave two nodes
	// with the same path. The batch is rolled back entirely.
	ErrPathConflict = logicerr.New("path is already taken")

	// ErrReadOnly is returned by write operations of a storage opened in
	// read-only mode.
	ErrReadOnly = errors.New("storage is read-only")
)
