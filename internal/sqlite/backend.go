package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/recipebox/pkg/types"
)

// UpgradeFunc migrates a store from oldVersion to newVersion inside tx.
// It runs only when the stored schema version is older than the one the
// backend was opened with.
type UpgradeFunc func(ctx context.Context, tx *sql.Tx, oldVersion, newVersion int) error

// noUpgrade is the default upgrade hook. The schema has a single version, so
// there is nothing to migrate.
func noUpgrade(context.Context, *sql.Tx, int, int) error { return nil }

// Option configures Open.
type Option func(*options)

type options struct {
	schemaVersion int
	upgrade       UpgradeFunc
	logger        *slog.Logger
}

// WithUpgradeHook replaces the no-op upgrade hook.
func WithUpgradeHook(fn UpgradeFunc) Option {
	return func(o *options) { o.upgrade = fn }
}

// WithSchemaVersion overrides the schema version the store is stamped with.
func WithSchemaVersion(v int) Option {
	return func(o *options) { o.schemaVersion = v }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Backend owns the recipes table. Reads go through a reader pool; writes go
// through a writer pool limited to one connection so SQLite sees a single
// writer at a time.
type Backend struct {
	mu     sync.RWMutex
	closed bool
	path   string
	reader *sql.DB
	writer *sql.DB
	logger *slog.Logger
}

// Open creates DataDir if needed, opens (or creates) the database file and
// makes sure the recipes table exists before returning. Every failure wraps
// types.ErrStorageUnavailable except config validation errors.
func Open(ctx context.Context, config types.Config, opts ...Option) (*Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := options{
		schemaVersion: types.SchemaVersion,
		upgrade:       noUpgrade,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.schemaVersion < 1 {
		return nil, fmt.Errorf("schema version must be positive, got %d", o.schemaVersion)
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, unavailable("creating data dir", err)
	}
	path := filepath.Join(dataDir, types.DatabaseFileName)

	writer, err := openPool(ctx, path)
	if err != nil {
		return nil, err
	}
	writer.SetMaxOpenConns(1)

	created, err := ensureSchema(ctx, writer, o)
	if err != nil {
		writer.Close()
		return nil, err
	}

	reader, err := openPool(ctx, path)
	if err != nil {
		writer.Close()
		return nil, err
	}

	o.logger.Debug("store opened", "path", path, "schema_version", o.schemaVersion, "created", created)

	return &Backend{
		path:   path,
		reader: reader,
		writer: writer,
		logger: o.logger,
	}, nil
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// Close releases both pools. After Close every operation fails with
// types.ErrStorageUnavailable. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	err := errors.Join(b.reader.Close(), b.writer.Close())
	b.logger.Debug("store closed", "path", b.path)
	return err
}

// handles returns the reader and writer pools, or an error once closed.
func (b *Backend) handles() (reader, writer *sql.DB, err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, nil, fmt.Errorf("%w: store is closed", types.ErrStorageUnavailable)
	}
	return b.reader, b.writer, nil
}

// openPool opens and pings a connection pool on path.
func openPool(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, unavailable("opening "+path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, unavailable("connecting to "+path, err)
	}
	return db, nil
}

// dsn builds a modernc.org/sqlite URI with the connection pragmas. SQLite
// parses the whole string as a URI, so every path segment is escaped and
// '#', '?' and '%' in a directory name stay part of the file name.
func dsn(path string) string {
	segments := strings.Split(filepath.ToSlash(path), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	params := make([]string, 0, len(pragmas))
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	return "file:" + strings.Join(segments, "/") + "?" + strings.Join(params, "&")
}

// ensureSchema reads PRAGMA user_version and brings the store to
// o.schemaVersion: version 0 creates the table, an older version runs the
// upgrade hook, a newer version is refused. It reports whether the table was
// created.
func ensureSchema(ctx context.Context, db *sql.DB, o options) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, unavailable("beginning schema transaction", err)
	}
	defer tx.Rollback()

	var version int
	if err := tx.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return false, unavailable("reading schema version", err)
	}

	created := false
	switch {
	case version == o.schemaVersion:
		return false, nil
	case version == 0:
		for _, ddl := range schemaDDL {
			if _, err := tx.ExecContext(ctx, ddl); err != nil {
				return false, unavailable("creating schema", err)
			}
		}
		created = true
	case version < o.schemaVersion:
		if err := o.upgrade(ctx, tx, version, o.schemaVersion); err != nil {
			return false, unavailable(fmt.Sprintf("upgrading schema from version %d to %d", version, o.schemaVersion), err)
		}
	default:
		return false, fmt.Errorf("%w: cannot downgrade schema from version %d to %d",
			types.ErrStorageUnavailable, version, o.schemaVersion)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", o.schemaVersion)); err != nil {
		return false, unavailable("stamping schema version", err)
	}
	if err := tx.Commit(); err != nil {
		return false, unavailable("committing schema", err)
	}
	return created, nil
}

// unavailable wraps err so callers can match types.ErrStorageUnavailable
// while keeping the driver error in the chain.
func unavailable(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", types.ErrStorageUnavailable, action, err)
}
