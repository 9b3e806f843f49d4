package misc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInfo(t *testing.T) {
	s := BuildInfo("LTree")

	require.Contains(t, s, "LTree\n")
	require.Contains(t, s, "Version: "+Version)
	require.Contains(t, s, "Build: "+Build)
}
