// Package store persists project aggregates in sqlite. Each project is
// one JSON document row; a save writes the whole aggregate in a single
// transaction, which is what makes staged relationship-pair mutations
// atomic from the caller's perspective.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"taskdeck/pkg/decktypes"
)

// ProjectStore is the sqlite-backed implementation of
// decktypes.ProjectStore.
type ProjectStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the taskdeck database at dbPath and
// applies the schema.
func Open(dbPath string) (*ProjectStore, error) {
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &ProjectStore{db: db}, nil
}

// Close closes the database connection.
func (s *ProjectStore) Close() error {
	return s.db.Close()
}

// Create inserts a new project aggregate and its member rows.
func (s *ProjectStore) Create(ctx context.Context, p *decktypes.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project %s: %w", p.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO projects (id, name, owner_id, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.OwnerID, string(doc), p.CreatedAt.Format(time.RFC3339Nano), p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert project %s: %w", p.ID, err)
	}
	if err := insertMembers(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// Load reads one project aggregate by id.
func (s *ProjectStore) Load(ctx context.Context, id string) (*decktypes.Project, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM projects WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load project %s: %w", id, err)
	}
	return unmarshalProject(doc)
}

// Save persists the entire aggregate document and rewrites the member
// rows, all in one transaction.
func (s *ProjectStore) Save(ctx context.Context, p *decktypes.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project %s: %w", p.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE projects SET name = ?, owner_id = ?, document = ?, updated_at = ? WHERE id = ?`,
		p.Name, p.OwnerID, string(doc), p.UpdatedAt.Format(time.RFC3339Nano), p.ID,
	)
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save project %s: %w", p.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("project %s not found", p.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear members for %s: %w", p.ID, err)
	}
	if err := insertMembers(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a project and, via cascade, its member rows.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("project %s not found", id)
	}
	return nil
}

// ListOwned returns the user's own projects in creation order.
func (s *ProjectStore) ListOwned(ctx context.Context, userID string) ([]*decktypes.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document FROM projects WHERE owner_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListMember returns projects the user is a team member of, excluding
// those the user owns.
func (s *ProjectStore) ListMember(ctx context.Context, userID string) ([]*decktypes.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.document FROM projects p
		 JOIN project_members m ON m.project_id = p.id
		 WHERE m.user_id = ? AND p.owner_id != ?
		 ORDER BY p.created_at, p.id`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("list member projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func insertMembers(ctx context.Context, tx *sql.Tx, p *decktypes.Project) error {
	for _, m := range p.Members {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, user_id, role) VALUES (?, ?, ?)`,
			p.ID, m.UserID, string(m.Role),
		)
		if err != nil {
			return fmt.Errorf("insert member %s on %s: %w", m.UserID, p.ID, err)
		}
	}
	return nil
}

func collectProjects(rows *sql.Rows) ([]*decktypes.Project, error) {
	var out []*decktypes.Project
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		p, err := unmarshalProject(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func unmarshalProject(doc string) (*decktypes.Project, error) {
	var p decktypes.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("unmarshal project document: %w", err)
	}
	return &p, nil
}
