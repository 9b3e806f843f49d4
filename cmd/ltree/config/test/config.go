package configtest

import (
	"testing"

	"github.com/nspcc-dev/ltree/cmd/ltree/config"
	"github.com/stretchr/testify/require"
)

// FromFile reads the config from the file failing the test on errors.
func FromFile(t testing.TB, path string) *config.Config {
	var p config.Prm

	c, err := config.New(p,
		config.WithConfigFile(path),
	)
	require.NoError(t, err)
	return c
}

// ForEachFileType passes configs read from next files:
//   - `<pref>.yaml`;
//   - `<pref>.json`.
func ForEachFileType(t testing.TB, pref string, f func(*config.Config)) {
	for _, path := range []string{
		pref + ".yaml",
		pref + ".json",
	} {
		f(FromFile(t, path))
	}
}

// EmptyConfig returns config without any values and sections.
func EmptyConfig(t testing.TB) *config.Config {
	var p config.Prm

	c, err := config.New(p)
	require.NoError(t, err)
	return c
}
