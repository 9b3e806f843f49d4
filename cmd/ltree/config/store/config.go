package storeconfig

import (
	"time"

	"github.com/nspcc-dev/ltree/cmd/ltree/config"
)

const (
	subsection = "store"

	// BackendMemory keeps the tree in memory.
	BackendMemory = "memory"
	// BackendBolt keeps the tree in a BoltDB file.
	BackendBolt = "bolt"
	// BackendBadger keeps the tree in a BadgerDB directory.
	BackendBadger = "badger"

	// BackendDefault is a default store backend.
	BackendDefault = BackendBolt

	// PathDefault is a default store path.
	PathDefault = "ltree.db"

	// OpenTimeoutDefault is a default BoltDB file lock timeout.
	OpenTimeoutDefault = 100 * time.Millisecond
)

// StoreConfig is a wrapper over "store" config section
// which provides access to the backend settings.
type StoreConfig struct {
	cfg *config.Config
}

// Store returns structure that provides access to a "store"
// configuration subsection.
func Store(c *config.Config) StoreConfig {
	return StoreConfig{
		c.Sub(subsection),
	}
}

// Backend returns the value of "backend" config parameter
// from the "store" section.
//
// Returns BackendDefault if config value is not specified.
func (c StoreConfig) Backend() string {
	v := config.StringSafe(c.cfg, "backend")
	if v != "" {
		return v
	}

	return BackendDefault
}

// Path returns the value of "path" config parameter
// from the "store" section.
//
// Returns PathDefault if config value is not specified.
func (c StoreConfig) Path() string {
	v := config.StringSafe(c.cfg, "path")
	if v != "" {
		return v
	}

	return PathDefault
}

// BoltOpenTimeout returns the value of "open_timeout" config parameter
// from the "store.bolt" section.
//
// Returns OpenTimeoutDefault if config value is not specified.
func (c StoreConfig) BoltOpenTimeout() time.Duration {
	v := config.DurationSafe(c.cfg.Sub("bolt"), "open_timeout")
	if v > 0 {
		return v
	}

	return OpenTimeoutDefault
}

// BadgerSyncWrites returns the value of "sync_writes" config parameter
// from the "store.badger" section.
//
// Returns true if config value is not specified.
func (c StoreConfig) BadgerSyncWrites() bool {
	sub := c.cfg.Sub("badger")
	if sub.Value("sync_writes") == nil {
		return true
	}

	return config.BoolSafe(sub, "sync_writes")
}
