// Package store persists project documents in SQLite. The full project
// tree is kept as one JSON document per row, which doubles as the
// on-disk project file format; id, name and timestamps are broken out
// into columns for listing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/montage/montage-engine/internal/timeline"
)

type ProjectSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	SaveProject(ctx context.Context, p *timeline.Project) error
	GetProject(ctx context.Context, id string) (*timeline.Project, error)
	ListProjects(ctx context.Context) ([]ProjectSummary, error)
	DeleteProject(ctx context.Context, id string) error

	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// SaveProject upserts the project as its encoded document.
func (r *SQLiteRepository) SaveProject(ctx context.Context, p *timeline.Project) error {
	doc, err := timeline.EncodeProject(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at
	`, p.ID, p.Name, string(doc), p.CreatedAt.Format(time.RFC3339), p.ModifiedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	return nil
}

// GetProject returns the decoded project, or nil if the id is unknown.
func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*timeline.Project, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `
		SELECT document FROM projects WHERE id = ?
	`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return timeline.DecodeProject([]byte(doc))
}

func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM projects ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectSummary
	for rows.Next() {
		var s ProjectSummary
		var createdAt, updatedAt string

		if err := rows.Scan(&s.ID, &s.Name, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		projects = append(projects, s)
	}
	return projects, rows.Err()
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
