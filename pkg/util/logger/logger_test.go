package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	var p Prm
	require.NoError(t, p.SetLevelString("debug"))
	require.NoError(t, p.SetEncoding("JSON"))

	l, err := NewLogger(p)
	require.NoError(t, err)
	require.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = NewLogger(Prm{})
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zap.DebugLevel))
	require.True(t, l.Core().Enabled(zap.InfoLevel))

	require.Error(t, p.SetLevelString("verbose"))
	require.Error(t, p.SetEncoding("xml"))
}
