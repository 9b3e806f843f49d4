// Package boltdb implements a persistent tree store on top of BoltDB.
//
// Layout: bucket "nodes" maps binary node IDs to JSON records, bucket
// "paths" maps ltree text form of paths to binary node IDs. BoltDB keeps
// keys sorted bytewise, which for fixed-width labels is exactly the
// pre-order of the tree, so prefix scans over "paths" serve all the path
// predicates.
package boltdb

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	nodesBucket = []byte("nodes")
	pathsBucket = []byte("paths")
)

// Store is store.Storage persisted in a single BoltDB file.
type Store struct {
	*cfg

	db *bbolt.DB
}

var _ store.Storage = (*Store)(nil)

// Option is an option of Store constructor.
type Option func(*cfg)

type cfg struct {
	path     string
	perm     fs.FileMode
	readOnly bool
	noSync   bool
	timeout  time.Duration

	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		perm:    0o640,
		timeout: 100 * time.Millisecond,
		log:     zap.L(),
	}
}

// New creates Store working with the file at path. The file is opened
// by Open.
func New(path string, opts ...Option) *Store {
	c := defaultCfg()
	c.path = path

	for i := range opts {
		opts[i](c)
	}

	return &Store{cfg: c}
}

// WithPermissions returns option to specify permission bits of the
// database file.
func WithPermissions(perm fs.FileMode) Option {
	return func(c *cfg) {
		c.perm = perm
	}
}

// WithReadOnly returns option to open the database in read-only mode.
func WithReadOnly(ro bool) Option {
	return func(c *cfg) {
		c.readOnly = ro
	}
}

// WithNoSync returns option to skip fsync after every commit.
func WithNoSync(noSync bool) Option {
	return func(c *cfg) {
		c.noSync = noSync
	}
}

// WithOpenTimeout returns option to limit waiting for the file lock.
func WithOpenTimeout(d time.Duration) Option {
	return func(c *cfg) {
		c.timeout = d
	}
}

// WithLogger returns option to specify Store's logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "bolt tree store"))
	}
}

// Open opens the database file, creating it together with its directory
// if needed.
func (s *Store) Open() error {
	if !s.readOnly {
		err := os.MkdirAll(filepath.Dir(s.path), s.perm|0o110)
		if err != nil {
			return fmt.Errorf("can't create dir %s for tree store: %w", s.path, err)
		}
	}

	s.log.Debug("opening BoltDB",
		zap.String("path", s.path),
		zap.Stringer("permissions", s.perm),
		zap.Bool("read-only", s.readOnly))

	db, err := bbolt.Open(s.path, s.perm, &bbolt.Options{
		Timeout:  s.timeout,
		ReadOnly: s.readOnly,
		NoSync:   s.noSync,
	})
	if err != nil {
		return fmt.Errorf("can't open BoltDB database: %w", err)
	}

	s.db = db
	return nil
}

// Init creates the buckets. It does nothing for initialized databases.
func (s *Store) Init() error {
	if s.readOnly {
		return s.db.View(func(tx *bbolt.Tx) error {
			if tx.Bucket(nodesBucket) == nil || tx.Bucket(pathsBucket) == nil {
				return fmt.Errorf("tree store %s is not initialized", s.path)
			}
			return nil
		})
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{nodesBucket, pathsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("could not create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

// Close closes the database.
func (s *Store) Close() error {
	s.log.Debug("closing BoltDB", zap.String("path", s.path))
	return s.db.Close()
}

// Get implements store.Reader.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (store.Node, error) {
	if err := ctx.Err(); err != nil {
		return store.Node{}, err
	}

	var n store.Node
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		n, err = newTxn(tx).Node(id)
		return err
	})
	return n, err
}

// Select implements store.Reader.
func (s *Store) Select(ctx context.Context, q store.Query) ([]store.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var res []store.Node
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		res, err = store.Select(newTxn(tx), q)
		return err
	})
	return res, err
}

// Apply implements store.Writer.
func (s *Store) Apply(ctx context.Context, b store.Batch) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.readOnly {
		return 0, store.ErrReadOnly
	}

	start := time.Now()

	var n int
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		n, err = store.ApplyBatch(newTxn(tx), b)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug("batch applied",
		zap.Int("rewrites", len(b.Rewrites)),
		zap.Int("puts", len(b.Put)),
		zap.Int("moved", n),
		zap.Duration("elapsed", time.Since(start)))

	return n, nil
}

// Delete implements store.Writer.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.readOnly {
		return 0, store.ErrReadOnly
	}

	var n int
	err := s.db.Update(func(tx *bbolt.Tx) error {
		var err error
		n, err = store.DeleteSubtree(newTxn(tx), id)
		return err
	})
	return n, err
}
