// Package storage owns the connection to the embedded SQLite database and
// executes statement batches transactionally.
package storage

import (
	"context"
	"database/sql"
	"sync"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/seldo/seldo/internal/config"
	"github.com/seldo/seldo/internal/db/dsn"
	"github.com/seldo/seldo/internal/logger"
	gormadapter "github.com/seldo/seldo/internal/logger/adapter/gorm"
)

// conn is one open database connection and the handles referring to it.
// Queries and transactions all run on pinned, so a statement batch may run
// while a cursor is still open.
type conn struct {
	mu      sync.Mutex
	orm     *gorm.DB
	sqlDB   *sql.DB
	pinned  *sql.Conn
	path    string
	handles int
}

func (c *conn) close() error {
	err := c.pinned.Close()
	if cerr := c.sqlDB.Close(); err == nil {
		err = cerr
	}

	return err //nolint:wrapcheck
}

var (
	sharedMu sync.Mutex //nolint:gochecknoglobals
	shared   *conn      //nolint:gochecknoglobals
)

// DB is a handle on a database connection. Handles returned by Open share
// the process-wide connection; a handle returned by New owns its own.
//
// The connection is not safe for concurrent use from several goroutines;
// callers serialise access.
type DB struct {
	c       *conn
	log     zerolog.Logger
	private bool
	closed  bool
}

type options struct {
	initialize bool
	log        zerolog.Logger
	hasLog     bool
}

// Option configures Open and New.
type Option func(*options)

// WithoutInitialize skips schema creation on construction.
func WithoutInitialize() Option {
	return func(o *options) { o.initialize = false }
}

// WithLogger replaces the component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
		o.hasLog = true
	}
}

func buildOptions(opts []Option) options {
	o := options{initialize: true}
	for _, opt := range opts {
		opt(&o)
	}

	if !o.hasLog {
		o.log = logger.Component("storage")
	}

	return o
}

// Open returns a handle on the process-wide connection, connecting to the
// configured database_file on first use. Every call adds a live handle.
// Once connected, a different database_file is ignored until Shutdown.
// The schema is initialised unless WithoutInitialize is given.
func Open(ctx context.Context, cfg *config.Store, opts ...Option) (*DB, error) {
	o := buildOptions(opts)

	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		c, err := connect(ctx, cfg, o.log)
		if err != nil {
			return nil, err
		}

		shared = c
	} else if path := cfg.DatabaseFile(); path != shared.path {
		o.log.Warn().Str("requested", path).Str("open", shared.path).
			Msg("database already open, ignoring database_file")
	}

	return attach(ctx, shared, o, false)
}

// New returns a handle on a private connection, independent of the shared
// one. Closing the handle closes the connection.
func New(ctx context.Context, cfg *config.Store, opts ...Option) (*DB, error) {
	o := buildOptions(opts)

	c, err := connect(ctx, cfg, o.log)
	if err != nil {
		return nil, err
	}

	d, err := attach(ctx, c, o, true)
	if err != nil {
		_ = c.close()
		return nil, err
	}

	return d, nil
}

// Shutdown closes the shared connection. Handles obtained earlier must not
// be used afterwards; the next Open reconnects.
func Shutdown() error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}

	err := shared.close()
	shared = nil

	return errors.Wrap(err, "close shared database")
}

func connect(ctx context.Context, cfg *config.Store, l zerolog.Logger) (*conn, error) {
	path := cfg.DatabaseFile()

	base, err := gorm.Open(sqlite.Open(dsn.Create(cfg)), &gorm.Config{
		Logger:                 gormadapter.New(l),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open database %s", path)
	}

	sqlDB, err := base.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	// one connection: an in-memory database lives and dies with it
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)

	pinned, err := sqlDB.Conn(ctx)
	if err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrapf(err, "connect to %s", path)
	}

	if err := pinned.PingContext(ctx); err != nil {
		_ = pinned.Close()
		_ = sqlDB.Close()

		return nil, errors.Wrapf(err, "connect to %s", path)
	}

	orm := base.Session(&gorm.Session{NewDB: true, Context: context.Background()})
	orm.Statement.ConnPool = pinned

	l.Debug().Str("path", path).Msg("database connected")

	return &conn{orm: orm, sqlDB: sqlDB, pinned: pinned, path: path}, nil
}

func attach(ctx context.Context, c *conn, o options, private bool) (*DB, error) {
	d := &DB{c: c, log: o.log, private: private}

	if o.initialize {
		if err := d.Initialize(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.Lock()
	c.handles++
	c.mu.Unlock()

	return d, nil
}

// Close releases the handle. Closing a shared handle never closes the
// shared connection; closing a private handle does.
func (d *DB) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true

	d.c.mu.Lock()
	d.c.handles--
	d.c.mu.Unlock()

	if d.private {
		return errors.Wrap(d.c.close(), "close database")
	}

	return nil
}

// Handles returns the number of live handles on this handle's connection.
func (d *DB) Handles() int {
	d.c.mu.Lock()
	defer d.c.mu.Unlock()

	return d.c.handles
}

// Path returns the database location the connection was opened with.
func (d *DB) Path() string {
	return d.c.path
}

// ORM returns the gorm handle on the connection.
func (d *DB) ORM() *gorm.DB {
	return d.c.orm
}

// SameConnection reports whether both handles use one connection.
func (d *DB) SameConnection(other *DB) bool {
	return d.c == other.c
}
