package mpath

import "github.com/nspcc-dev/ltree/pkg/util/logicerr"

var (
	// ErrOverflow is returned when an index does not fit into a label of
	// the configured length.
	ErrOverflow = logicerr.New("index does not fit into label")

	// ErrNegativeIndex is returned on attempts to encode a negative index.
	ErrNegativeIndex = logicerr.New("negative index")

	// ErrEmptyPath is returned when an operation requires at least one label.
	ErrEmptyPath = logicerr.New("empty path")

	// ErrInvalidLabel is returned for labels of a wrong width or with
	// symbols outside of the alphabet.
	ErrInvalidLabel = logicerr.New("invalid label")

	// ErrInvalidAlphabet is returned by NewCodec for unusable alphabets.
	ErrInvalidAlphabet = logicerr.New("invalid alphabet")
)
