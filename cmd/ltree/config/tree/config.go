package treeconfig

import (
	"github.com/nspcc-dev/ltree/cmd/ltree/config"
	"github.com/nspcc-dev/ltree/pkg/mpath"
)

const (
	subsection = "tree"

	// LabelLengthDefault is a default number of symbols in a path label.
	LabelLengthDefault = mpath.DefaultLabelLength
)

// TreeConfig is a wrapper over "tree" config section
// which provides access to the path encoding and sibling order settings.
type TreeConfig struct {
	cfg *config.Config
}

// Tree returns structure that provides access to a "tree"
// configuration subsection.
func Tree(c *config.Config) TreeConfig {
	return TreeConfig{
		c.Sub(subsection),
	}
}

// Alphabet returns the value of "alphabet" config parameter
// from the "tree" section.
//
// Returns mpath.DefaultAlphabet if config value is not specified.
func (c TreeConfig) Alphabet() string {
	v := config.StringSafe(c.cfg, "alphabet")
	if v != "" {
		return v
	}

	return mpath.DefaultAlphabet
}

// LabelLength returns the value of "label_length" config parameter
// from the "tree" section.
//
// Returns LabelLengthDefault if config value is not specified.
func (c TreeConfig) LabelLength() int {
	v := config.UintSafe(c.cfg, "label_length")
	if v != 0 {
		return int(v)
	}

	return LabelLengthDefault
}

// Ordering returns the value of "ordering" config parameter
// from the "tree" section: attribute names, '-' prefix for
// descending order.
//
// Returns nil if config value is not specified.
func (c TreeConfig) Ordering() []string {
	return config.StringSliceSafe(c.cfg, "ordering")
}

// Compact returns the value of "compact" config parameter
// from the "tree" section.
//
// Returns false if config value is not specified.
func (c TreeConfig) Compact() bool {
	return config.BoolSafe(c.cfg, "compact")
}
