package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/portfolio/internal/db"
)

// ErrNotFound is returned by MarkRead and Delete when no message has the id.
var ErrNotFound = errors.New("message not found")

const messageColumns = `id, name, email, subject, message, newsletter, read, created_at, updated_at`

// Store manages persistence of contact messages.
type Store struct {
	db *db.DB
}

// NewStore creates a new message store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create persists a message built from a validated form.
func (s *Store) Create(ctx context.Context, f Form) (*Message, error) {
	now := time.Now().UTC()
	m := Message{
		ID:         uuid.New().String(),
		Name:       f.Name,
		Email:      f.Email,
		Subject:    f.Subject,
		Body:       f.Message,
		Newsletter: f.Newsletter,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Email, m.Subject, m.Body, m.Newsletter, m.Read, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}
	return &m, nil
}

// GetByID retrieves a message; nil when missing.
func (s *Store) GetByID(ctx context.Context, id string) (*Message, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

// List returns messages matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Message, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages WHERE 1=1`
	args := []any{}

	if filter.UnreadOnly {
		query += " AND read = 0"
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// MarkRead flags a message as read.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET read = 1, updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Delete removes a message.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// CountUnread returns the number of unread messages.
func (s *Store) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages WHERE read = 0`).Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(sc scanner) (*Message, error) {
	var m Message
	if err := sc.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Newsletter, &m.Read, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
