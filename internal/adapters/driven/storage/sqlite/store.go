package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

const (
	// dbFileName is the database file inside the data directory.
	dbFileName = "rulebook.db"

	// dsnPragmas enables WAL so the TUI and a scheduler run can share the file.
	dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	schemaMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`
)

// Store is a SQLite database that backs the link index and the scheduler
// state through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens rulebook.db in dataDir (~/.rulebook/data when empty) and
// brings its schema up to date.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".rulebook", "data")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// LinkIndex returns the link index view of the store.
func (s *Store) LinkIndex() driven.LinkIndex {
	return &linkIndex{store: s}
}

// SchedulerStore returns the scheduler view of the store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// SchemaVersion returns the newest applied migration, 0 on a fresh file.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

type migration struct {
	version int
	name    string
}

// pendingMigrations lists the up files of fsys newer than current, oldest
// first. Files without a numeric prefix are ignored.
func pendingMigrations(fsys fs.FS, current int) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}
	var out []migration
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		var v int
		if _, err := fmt.Sscanf(name, "%d_", &v); err != nil || v <= current {
			continue
		}
		out = append(out, migration{version: v, name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

// migrate applies pending migrations, one transaction each.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(schemaMigrationsTable); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}
	current, err := s.SchemaVersion()
	if err != nil {
		return err
	}
	pending, err := pendingMigrations(fsys, current)
	if err != nil {
		return err
	}

	for _, m := range pending {
		script, err := fs.ReadFile(fsys, m.name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", m.name, err)
		}
		err = s.withTx(context.Background(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(string(script)); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("applying %s: %w", m.name, err)
		}
	}
	return nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
