package treeconfig_test

import (
	"testing"

	"github.com/nspcc-dev/ltree/cmd/ltree/config"
	treeconfig "github.com/nspcc-dev/ltree/cmd/ltree/config/tree"
	configtest "github.com/nspcc-dev/ltree/cmd/ltree/config/test"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/stretchr/testify/require"
)

func TestTreeSection(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tc := treeconfig.Tree(configtest.EmptyConfig(t))

		require.Equal(t, mpath.DefaultAlphabet, tc.Alphabet())
		require.Equal(t, treeconfig.LabelLengthDefault, tc.LabelLength())
		require.Empty(t, tc.Ordering())
		require.False(t, tc.Compact())
	})

	const path = "../../../../config/example/ltree"

	configtest.ForEachFileType(t, path, func(c *config.Config) {
		tc := treeconfig.Tree(c)

		require.Equal(t, "0123456789abcdef", tc.Alphabet())
		require.Equal(t, 6, tc.LabelLength())
		require.Equal(t, []string{"-priority", "name"}, tc.Ordering())
		require.True(t, tc.Compact())
	})
}
