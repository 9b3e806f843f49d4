// Package badgerdb implements a persistent tree store on top of BadgerDB.
//
// Keys with "n/" prefix map binary node IDs to JSON records, keys with
// "p/" prefix map ltree text form of paths to binary node IDs.
package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/nspcc-dev/ltree/pkg/store"
	"go.uber.org/zap"
)

// Store is store.Storage persisted in a BadgerDB directory.
type Store struct {
	*cfg

	db *badger.DB
}

var _ store.Storage = (*Store)(nil)

// Option is an option of Store constructor.
type Option func(*cfg)

type cfg struct {
	path       string
	inMemory   bool
	syncWrites bool
	readOnly   bool

	log *zap.Logger
}

func defaultCfg() *cfg {
	return &cfg{
		syncWrites: true,
		log:        zap.L(),
	}
}

// New creates Store working with the directory at path. The database is
// opened by Open.
func New(path string, opts ...Option) *Store {
	c := defaultCfg()
	c.path = path

	for i := range opts {
		opts[i](c)
	}

	return &Store{cfg: c}
}

// WithInMemory returns option to keep all the data in memory, path is
// ignored then.
func WithInMemory(inMemory bool) Option {
	return func(c *cfg) {
		c.inMemory = inMemory
	}
}

// WithSyncWrites returns option to fsync every commit.
func WithSyncWrites(sync bool) Option {
	return func(c *cfg) {
		c.syncWrites = sync
	}
}

// WithReadOnly returns option to open the database in read-only mode.
func WithReadOnly(ro bool) Option {
	return func(c *cfg) {
		c.readOnly = ro
	}
}

// WithLogger returns option to specify Store's logger. BadgerDB internal
// messages are written to it too.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l.With(zap.String("component", "badger tree store"))
	}
}

// Open opens the database.
func (s *Store) Open() error {
	var opts badger.Options
	if s.inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if !s.readOnly {
			if err := os.MkdirAll(s.path, 0o750); err != nil {
				return fmt.Errorf("can't create dir %s for tree store: %w", s.path, err)
			}
		}
		opts = badger.DefaultOptions(s.path).WithReadOnly(s.readOnly)
	}

	opts = opts.
		WithSyncWrites(s.syncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(&badgerLogger{log: s.log.Sugar()})

	s.log.Debug("opening BadgerDB",
		zap.String("path", s.path),
		zap.Bool("in-memory", s.inMemory),
		zap.Bool("read-only", s.readOnly))

	db, err := badger.Open(opts)
	if err != nil {
		return fmt.Errorf("can't open BadgerDB database: %w", err)
	}

	s.db = db
	return nil
}

// Init implements store.Storage. BadgerDB needs no structure, so it is a
// no-op.
func (s *Store) Init() error { return nil }

// Close closes the database.
func (s *Store) Close() error {
	s.log.Debug("closing BadgerDB", zap.String("path", s.path))
	return s.db.Close()
}

// Get implements store.Reader.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (store.Node, error) {
	if err := ctx.Err(); err != nil {
		return store.Node{}, err
	}

	var n store.Node
	err := s.db.View(func(tx *badger.Txn) error {
		var err error
		n, err = (txn{tx}).Node(id)
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
	err := s.db.View(func(tx *badger.Txn) error {
		var err error
		res, err = store.Select(txn{tx}, q)
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
	err := s.db.Update(func(tx *badger.Txn) error {
		var err error
		n, err = store.ApplyBatch(txn{tx}, b)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrTxnTooBig) {
			return 0, fmt.Errorf("batch of %d rewrites and %d puts: %w", len(b.Rewrites), len(b.Put), err)
		}
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
	err := s.db.Update(func(tx *badger.Txn) error {
		var err error
		n, err = store.DeleteSubtree(txn{tx}, id)
		return err
	})
	return n, err
}

// badgerLogger adapts zap to BadgerDB's Logger interface.
type badgerLogger struct {
	log *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.log.Errorf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.log.Debugf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}
