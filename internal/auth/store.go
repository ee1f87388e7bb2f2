package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/portfolio/internal/db"
)

// Scope limits what a token may do.
type Scope string

const (
	ScopeRead      Scope = "read"
	ScopeReadWrite Scope = "readwrite"
	ScopeAdmin     Scope = "admin"
)

var scopeRank = map[Scope]int{
	ScopeRead:      1,
	ScopeReadWrite: 2,
	ScopeAdmin:     3,
}

// Allows reports whether s grants at least need.
func (s Scope) Allows(need Scope) bool {
	return scopeRank[s] >= scopeRank[need] && scopeRank[need] > 0
}

// ValidScope reports whether s is a known scope.
func ValidScope(s Scope) bool {
	_, ok := scopeRank[s]
	return ok
}

// ErrInvalidToken is returned for unknown, revoked or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// tokenPrefix marks plaintext tokens so they are easy to spot in configs.
const tokenPrefix = "pf_"

// Token is a stored API token. The plaintext is never persisted.
type Token struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Scope     Scope      `json:"scope"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
}

// Store manages API tokens for the admin endpoints.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a new token store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: func() time.Time { return time.Now().UTC() }}
}

// Create issues a token and returns its plaintext once. ttl <= 0 means the
// token never expires.
func (s *Store) Create(ctx context.Context, name string, scope Scope, ttl time.Duration) (string, *Token, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, errors.New("token name is required")
	}
	if !ValidScope(scope) {
		return "", nil, fmt.Errorf("invalid scope %q: must be one of read, readwrite, admin", scope)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("generating token: %w", err)
	}
	plain := tokenPrefix + hex.EncodeToString(raw)

	tok := &Token{
		ID:        uuid.New().String(),
		Name:      name,
		Scope:     scope,
		CreatedAt: s.now(),
	}
	if ttl > 0 {
		exp := tok.CreatedAt.Add(ttl)
		tok.ExpiresAt = &exp
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO api_tokens (id, name, token_hash, scope, created_at, expires_at) VALUES (?, ?, ?, ?, ?, ?)`,
		tok.ID, tok.Name, hashToken(plain), tok.Scope, tok.CreatedAt, tok.ExpiresAt,
	)
	if err != nil {
		return "", nil, fmt.Errorf("inserting token: %w", err)
	}
	return plain, tok, nil
}

// Verify looks up a plaintext token and records its use.
func (s *Store) Verify(ctx context.Context, plain string) (*Token, error) {
	if !strings.HasPrefix(plain, tokenPrefix) {
		return nil, ErrInvalidToken
	}

	var tok Token
	var expires, lastUsed sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, scope, created_at, expires_at, last_used FROM api_tokens WHERE token_hash = ?`,
		hashToken(plain),
	).Scan(&tok.ID, &tok.Name, &tok.Scope, &tok.CreatedAt, &expires, &lastUsed)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("looking up token: %w", err)
	}

	now := s.now()
	if expires.Valid {
		exp := expires.Time
		tok.ExpiresAt = &exp
		if !now.Before(exp) {
			return nil, ErrInvalidToken
		}
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE api_tokens SET last_used = ? WHERE id = ?`, now, tok.ID); err != nil {
		return nil, fmt.Errorf("recording token use: %w", err)
	}
	tok.LastUsed = &now
	return &tok, nil
}

// List returns all tokens, oldest first.
func (s *Store) List(ctx context.Context) ([]Token, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, scope, created_at, expires_at, last_used FROM api_tokens ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing tokens: %w", err)
	}
	defer rows.Close()

	var out []Token
	for rows.Next() {
		var tok Token
		var expires, lastUsed sql.NullTime
		if err := rows.Scan(&tok.ID, &tok.Name, &tok.Scope, &tok.CreatedAt, &expires, &lastUsed); err != nil {
			return nil, fmt.Errorf("scanning token: %w", err)
		}
		if expires.Valid {
			t := expires.Time
			tok.ExpiresAt = &t
		}
		if lastUsed.Valid {
			t := lastUsed.Time
			tok.LastUsed = &t
		}
		out = append(out, tok)
	}
	return out, rows.Err()
}

// Revoke deletes a token by id.
func (s *Store) Revoke(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM api_tokens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("token not found: %s", id)
	}
	return nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
