package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pressly/goose/v3"

	"nanodesign/internal/ports"
	"nanodesign/internal/semver"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrIncompatibleStore is returned when a store was written by a release
// whose data layout this one cannot read
var ErrIncompatibleStore = errors.New("incompatible structure store")

// Store implements ports.StructureStore using SQLite
type Store struct {
	db      *sql.DB
	path    string
	version semver.Version
	log     logr.Logger
}

// Ensure Store implements StructureStore
var _ ports.StructureStore = (*Store)(nil)

// Open opens or creates the store at path, applies pending migrations and
// checks that the generator version recorded in the store is compatible
// with version
func Open(ctx context.Context, path, version string, log logr.Logger) (*Store, error) {
	v, err := semver.ParseVersion(version)
	if err != nil {
		return nil, err
	}

	// Expand ~ in path
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps the pragmas below in effect for every statement
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path, version: v, log: log.WithName("store")}
	if err := s.setup(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) setup(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;
	`)
	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to migrate store: %w", err)
	}
	for _, r := range results {
		s.log.V(1).Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "took", r.Duration.String())
	}

	return s.checkVersion(ctx)
}

// checkVersion rejects stores written by an incompatible generator
func (s *Store) checkVersion(ctx context.Context) error {
	raw, err := s.meta(ctx, metaGeneratorVersion)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	stored, err := semver.ParseVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncompatibleStore, err)
	}
	if !semver.Satisfies(stored, semver.CompatibleWith(s.version)) {
		return fmt.Errorf("%w: written by %s, this is %s", ErrIncompatibleStore, stored, s.version)
	}
	if semver.Compare(stored, s.version) > 0 {
		s.log.Info("store written by a newer release", "stored", stored.String(), "current", s.version.String())
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// DefaultPath returns the store location for a design name under the XDG
// data directory
func DefaultPath(name string) string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "nanodesign", name+".db")
}

const (
	metaGeneratorVersion = "generator_version"
	metaName             = "name"
	metaLattice          = "lattice"
	metaModified         = "modified"
)

func (s *Store) meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read meta %s: %w", key, err)
	}
	return value, nil
}
