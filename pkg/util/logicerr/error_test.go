package logicerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	base := errors.New("some failure")
	err := Wrap(base)

	require.ErrorIs(t, err, base)
	require.True(t, Is(err))
	require.True(t, Is(fmt.Errorf("context: %w", err)))
	require.False(t, Is(base))
}

func TestNew(t *testing.T) {
	err := New("broken request")
	require.True(t, Is(err))
	require.Contains(t, err.Error(), "broken request")
}
