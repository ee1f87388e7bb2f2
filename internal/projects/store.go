package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/portfolio/internal/db"
	"github.com/ziadkadry99/portfolio/internal/markdown"
)

// ErrNotFound is returned by Update and Delete for unknown ids.
var ErrNotFound = errors.New("project not found")

const projectColumns = `id, title, description, technologies, github_url, live_url, image_url,
	featured, completed, completion_date, user_id, created_at, updated_at`

// Store manages persistence of portfolio projects.
type Store struct {
	db *db.DB
	md *markdown.Renderer
}

// NewStore creates a new project store. Descriptions are rendered with md;
// a nil renderer leaves DescriptionHTML empty.
func NewStore(database *db.DB, md *markdown.Renderer) *Store {
	return &Store{db: database, md: md}
}

// Create adds a project owned by p.UserID.
func (s *Store) Create(ctx context.Context, p Project) (*Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return nil, errors.New("title is required")
	}
	if p.UserID == "" {
		return nil, errors.New("user_id is required")
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Description, p.Technologies, p.GitHubURL, p.LiveURL, p.ImageURL,
		p.Featured, p.Completed, p.CompletionDate, p.UserID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	s.render(&p)
	return &p, nil
}

// GetByID retrieves a project by its ID; nil when missing.
func (s *Store) GetByID(ctx context.Context, id string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}
	s.render(p)
	return p, nil
}

// List returns projects matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE 1=1`
	args := []any{}

	if filter.FeaturedOnly {
		query += " AND featured = 1"
	}
	if filter.CompletedOnly {
		query += " AND completed = 1"
	}
	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		s.render(p)
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of an existing project.
func (s *Store) Update(ctx context.Context, p Project) error {
	p.UpdatedAt = time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`UPDATE projects SET title = ?, description = ?, technologies = ?, github_url = ?, live_url = ?,
		 image_url = ?, featured = ?, completed = ?, completion_date = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Description, p.Technologies, p.GitHubURL, p.LiveURL,
		p.ImageURL, p.Featured, p.Completed, p.CompletionDate, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, p.ID)
	}
	return nil
}

// Delete removes a project.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// render fills DescriptionHTML. A rendering failure leaves it empty; the raw
// description is still returned.
func (s *Store) render(p *Project) {
	if s.md == nil || p.Description == "" {
		return
	}
	if html, err := s.md.Render(p.Description); err == nil {
		p.DescriptionHTML = html
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(sc scanner) (*Project, error) {
	var p Project
	var completion sql.NullTime
	err := sc.Scan(&p.ID, &p.Title, &p.Description, &p.Technologies, &p.GitHubURL, &p.LiveURL, &p.ImageURL,
		&p.Featured, &p.Completed, &completion, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if completion.Valid {
		t := completion.Time
		p.CompletionDate = &t
	}
	return &p, nil
}
