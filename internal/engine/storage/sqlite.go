package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rendis/geopaint/internal/model"
)

// ErrNotFound is returned for unknown project ids.
var ErrNotFound = errors.New("project not found")

// Project is a saved map configuration.
type Project struct {
	ID        string
	Name      string
	Config    model.MapViewConfiguration
	UpdatedAt time.Time
}

// Store persists projects and downloaded assets in one sqlite file.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		config TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at);
	CREATE TABLE IF NOT EXISTS assets (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveProject inserts or replaces a project and stamps its update time.
func (s *Store) SaveProject(ctx context.Context, p Project) (Project, error) {
	if p.ID == "" {
		return Project{}, fmt.Errorf("saving project: empty id")
	}
	data, err := json.Marshal(p.Config)
	if err != nil {
		return Project{}, fmt.Errorf("encoding project %s: %w", p.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, config, updated_at) VALUES (?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, config=excluded.config, updated_at=excluded.updated_at
	`, p.ID, p.Name, string(data), p.UpdatedAt.UnixMilli())
	if err != nil {
		return Project{}, fmt.Errorf("saving project %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *Store) LoadProject(ctx context.Context, id string) (Project, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, config, updated_at FROM projects WHERE id = ?", id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, fmt.Errorf("loading project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Project{}, fmt.Errorf("loading project %s: %w", id, err)
	}
	return p, nil
}

// ListProjects returns every project, most recently updated first.
func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, config, updated_at FROM projects ORDER BY updated_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("listing projects: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting project %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count)
	return count, err
}

// GetAsset returns a cached download. ok is false when nothing is stored
// under key.
func (s *Store) GetAsset(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM assets WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading asset %s: %w", key, err)
	}
	return data, true, nil
}

func (s *Store) PutAsset(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (key, data, fetched_at) VALUES (?,?,?)
		ON CONFLICT(key) DO UPDATE SET data=excluded.data, fetched_at=excluded.fetched_at
	`, key, data, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("writing asset %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (Project, error) {
	var (
		p       Project
		config  string
		updated int64
	)
	if err := sc.Scan(&p.ID, &p.Name, &config, &updated); err != nil {
		return Project{}, err
	}
	if err := json.Unmarshal([]byte(config), &p.Config); err != nil {
		return Project{}, fmt.Errorf("decoding project %s: %w", p.ID, err)
	}
	p.UpdatedAt = time.UnixMilli(updated).UTC()
	return p, nil
}
