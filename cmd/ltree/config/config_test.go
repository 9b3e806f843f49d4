package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/ltree/cmd/ltree/config"
	configtest "github.com/nspcc-dev/ltree/cmd/ltree/config/test"
	"github.com/stretchr/testify/require"
)

func TestConfig_Sub(t *testing.T) {
	configtest.ForEachFileType(t, "test/config", func(c *config.Config) {
		require.Equal(t, "deep", config.String(c.Sub("section").Sub("inner"), "value"))
		require.Nil(t, c.Sub("section").Value("missing"))
		require.Nil(t, c.Sub("missing").Sub("inner").Value("value"))
	})
}

func TestConfig_Env(t *testing.T) {
	t.Setenv("LTREE_SECTION_INNER_VALUE", "from env")
	t.Setenv("LTREE_EXTRA_VALUE", "only env")

	configtest.ForEachFileType(t, "test/config", func(c *config.Config) {
		require.Equal(t, "from env", config.String(c.Sub("section").Sub("inner"), "value"))
		require.Equal(t, "only env", config.String(c.Sub("extra"), "value"))
	})
}

func TestNew(t *testing.T) {
	var p config.Prm

	_, err := config.New(p, config.WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)

	c := configtest.EmptyConfig(t)
	require.Nil(t, c.Value("anything"))
}

func TestConfig_Validate(t *testing.T) {
	configtest.ForEachFileType(t, "../../../config/example/ltree", func(c *config.Config) {
		require.NoError(t, c.Validate())
	})

	require.NoError(t, configtest.EmptyConfig(t).Validate())

	for name, body := range map[string]string{
		"unknown section": "storage:\n  path: /tmp\n",
		"unknown field":   "tree:\n  label_len: 4\n",
		"wrong type":      "tree:\n  label_length: four\n",
		"not a section":   "store: bolt\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ltree.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			require.Error(t, configtest.FromFile(t, path).Validate())
		})
	}
}
