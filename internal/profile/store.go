// ABOUTME: SQLite-backed voice profile store
// ABOUTME: Persists profiles with CRUD, search, folder grouping, and reordering
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists voice profiles in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (and if needed creates) the profile database. Use
// ":memory:" for an ephemeral store.
func NewStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS voice_profiles (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			vibe        TEXT NOT NULL DEFAULT 'Friendly',
			folder      TEXT NOT NULL DEFAULT '',
			position    INTEGER NOT NULL DEFAULT 0,
			settings    TEXT NOT NULL,
			sample_url  TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMP NOT NULL,
			updated_at  TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_profiles_folder ON voice_profiles(folder);
		CREATE INDEX IF NOT EXISTS idx_profiles_position ON voice_profiles(position);
	`)
	return err
}

// Create inserts a new profile. Missing ID, position, and timestamps are
// filled in; the profile is appended to the end of its folder.
func (s *Store) Create(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	var maxPos sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(position) FROM voice_profiles WHERE folder = ?`, p.Folder,
	).Scan(&maxPos); err != nil {
		return fmt.Errorf("failed to find position: %w", err)
	}
	if maxPos.Valid {
		p.Position = int(maxPos.Int64) + 1
	} else {
		p.Position = 0
	}

	settings, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO voice_profiles
			(id, name, description, vibe, folder, position, settings, sample_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Vibe, p.Folder, p.Position,
		string(settings), p.SampleURL, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// Get fetches one profile by ID.
func (s *Store) Get(ctx context.Context, id string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, vibe, folder, position, settings, sample_url, created_at, updated_at
		FROM voice_profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// Update persists changed fields of an existing profile.
func (s *Store) Update(ctx context.Context, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	settings, err := json.Marshal(p.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE voice_profiles
		SET name = ?, description = ?, vibe = ?, folder = ?, settings = ?, sample_url = ?, updated_at = ?
		WHERE id = ?`,
		p.Name, p.Description, p.Vibe, p.Folder, string(settings), p.SampleURL, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a profile.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM voice_profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns all profiles ordered by folder and position.
func (s *Store) List(ctx context.Context) ([]*Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, vibe, folder, position, settings, sample_url, created_at, updated_at
		FROM voice_profiles ORDER BY folder, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// Search returns profiles whose name or description contains the query,
// case-insensitively.
func (s *Store) Search(ctx context.Context, query string) ([]*Profile, error) {
	like := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, vibe, folder, position, settings, sample_url, created_at, updated_at
		FROM voice_profiles
		WHERE name LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE
		ORDER BY folder, position`, like, like)
	if err != nil {
		return nil, fmt.Errorf("failed to search profiles: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// Reorder rewrites the position of every profile in a folder to match the
// given ID order. IDs not in the folder are ignored.
func (s *Store) Reorder(ctx context.Context, folder string, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer tx.Rollback()

	for pos, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`UPDATE voice_profiles SET position = ? WHERE id = ? AND folder = ?`,
			pos, id, folder); err != nil {
			return fmt.Errorf("failed to reorder profile %s: %w", id, err)
		}
	}
	return tx.Commit()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*Profile, error) {
	var p Profile
	var settings string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Vibe, &p.Folder,
		&p.Position, &settings, &p.SampleURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(settings), &p.Settings); err != nil {
		return nil, fmt.Errorf("corrupt settings for profile %s: %w", p.ID, err)
	}
	return &p, nil
}

func scanProfiles(rows *sql.Rows) ([]*Profile, error) {
	var out []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
