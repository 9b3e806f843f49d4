package common

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/ltree/cmd/ltree/config"
	loggerconfig "github.com/nspcc-dev/ltree/cmd/ltree/config/logger"
	storeconfig "github.com/nspcc-dev/ltree/cmd/ltree/config/store"
	treeconfig "github.com/nspcc-dev/ltree/cmd/ltree/config/tree"
	"github.com/nspcc-dev/ltree/misc"
	"github.com/nspcc-dev/ltree/pkg/metrics"
	"github.com/nspcc-dev/ltree/pkg/mpath"
	"github.com/nspcc-dev/ltree/pkg/planner"
	"github.com/nspcc-dev/ltree/pkg/store"
	"github.com/nspcc-dev/ltree/pkg/store/badgerdb"
	"github.com/nspcc-dev/ltree/pkg/store/boltdb"
	"github.com/nspcc-dev/ltree/pkg/store/memory"
	"github.com/nspcc-dev/ltree/pkg/tree"
	"github.com/nspcc-dev/ltree/pkg/util/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Env is an opened tree together with its storage.
type Env struct {
	Tree *tree.Tree
	Log  *zap.Logger

	storage store.Storage
}

// Close releases the storage.
func (e *Env) Close() error {
	err := e.storage.Close()
	_ = e.Log.Sync()
	return err
}

// Open reads the configuration file passed through ConfigFlag and opens
// the tree it describes.
func Open(cmd *cobra.Command, readOnly bool) (*Env, error) {
	path, _ := cmd.Flags().GetString(ConfigFlag)

	var opts []config.Option
	if path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, config.WithConfigFile(path))
	}

	c, err := config.New(config.Prm{}, opts...)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return OpenConfig(c, readOnly, tree.WithMetrics(treeMetrics()))
}

var treeMetrics = sync.OnceValue(func() *metrics.TreeMetrics {
	return metrics.NewTreeMetrics(misc.Version)
})

// OpenConfig opens the tree described by c. Options are applied after the
// configured ones.
func OpenConfig(c *config.Config, readOnly bool, extra ...tree.Option) (*Env, error) {
	log, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	st, err := newStorage(c, log, readOnly)
	if err != nil {
		return nil, err
	}

	opts, err := treeOptions(c)
	if err != nil {
		return nil, err
	}

	if err := st.Open(); err != nil {
		return nil, fmt.Errorf("open tree store: %w", err)
	}
	if err := st.Init(); err != nil {
		return nil, errors.Join(fmt.Errorf("init tree store: %w", err), st.Close())
	}

	opts = append(opts, tree.WithLogger(log))
	opts = append(opts, extra...)

	return &Env{
		Tree:    tree.New(st, opts...),
		Log:     log,
		storage: st,
	}, nil
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	var prm logger.Prm

	err := prm.SetLevelString(loggerconfig.Level(c))
	if err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	err = prm.SetEncoding(loggerconfig.Encoding(c))
	if err != nil {
		return nil, err
	}

	return logger.NewLogger(prm)
}

func newStorage(c *config.Config, log *zap.Logger, readOnly bool) (store.Storage, error) {
	sc := storeconfig.Store(c)

	if sc.Backend() == storeconfig.BackendMemory {
		return memory.New(memory.WithLogger(log)), nil
	}

	path, err := homedir.Expand(sc.Path())
	if err != nil {
		return nil, fmt.Errorf("invalid store path: %w", err)
	}

	switch b := sc.Backend(); b {
	case storeconfig.BackendBolt:
		return boltdb.New(path,
			boltdb.WithOpenTimeout(sc.BoltOpenTimeout()),
			boltdb.WithReadOnly(readOnly),
			boltdb.WithLogger(log),
		), nil
	case storeconfig.BackendBadger:
		return badgerdb.New(path,
			badgerdb.WithSyncWrites(sc.BadgerSyncWrites()),
			badgerdb.WithReadOnly(readOnly),
			badgerdb.WithLogger(log),
		), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", b)
	}
}

func treeOptions(c *config.Config) ([]tree.Option, error) {
	tc := treeconfig.Tree(c)

	codec, err := mpath.NewCodec(tc.Alphabet(), tc.LabelLength())
	if err != nil {
		return nil, err
	}

	ord, err := planner.ParseOrdering(tc.Ordering())
	if err != nil {
		return nil, fmt.Errorf("invalid tree ordering: %w", err)
	}

	return []tree.Option{
		tree.WithFactory(mpath.NewFactory(codec)),
		tree.WithOrdering(ord),
		tree.WithCompaction(tc.Compact()),
	}, nil
}
