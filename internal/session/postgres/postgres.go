package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
)

// Store persists sessions in Postgres, one row per session with the message
// list as JSONB. Schema lives in migrations/.
type Store struct {
	DB *sql.DB
}

// NewWithDSN opens a connection pool and pings it.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Create(ctx context.Context, title string) (session.Session, error) {
	if title == "" {
		var n int
		if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
			return session.Session{}, fmt.Errorf("count sessions: %w", err)
		}
		title = session.DefaultTitle(n)
	}
	id := session.NewID()
	var createdAt time.Time
	err := s.DB.QueryRowContext(ctx, `
INSERT INTO sessions (id, title, created_at, messages)
VALUES ($1, $2, NOW(), '[]'::jsonb)
RETURNING created_at`, id, title).Scan(&createdAt)
	if err != nil {
		return session.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return session.Session{
		ID:        id,
		Title:     title,
		CreatedAt: session.Timestamp(createdAt),
		Messages:  []session.Message{},
	}, nil
}

func (s *Store) List(ctx context.Context) ([]session.Session, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, title, created_at, messages FROM sessions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []session.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	if out == nil {
		out = []session.Session{}
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (session.Session, bool, error) {
	row := s.DB.QueryRowContext(ctx, `
SELECT id, title, created_at, messages FROM sessions WHERE id = $1`, id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, err
	}
	return sess, true, nil
}

func (s *Store) ReplaceMessages(ctx context.Context, id string, messages []session.Message) (session.Session, bool, error) {
	if messages == nil {
		messages = []session.Message{}
	}
	b, err := json.Marshal(messages)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("marshal messages: %w", err)
	}
	row := s.DB.QueryRowContext(ctx, `
UPDATE sessions SET messages = $2 WHERE id = $1
RETURNING id, title, created_at, messages`, id, b)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, err
	}
	return sess, true, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (session.Session, error) {
	var (
		sess      session.Session
		createdAt time.Time
		raw       []byte
	)
	if err := row.Scan(&sess.ID, &sess.Title, &createdAt, &raw); err != nil {
		return session.Session{}, err
	}
	sess.CreatedAt = session.Timestamp(createdAt)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &sess.Messages); err != nil {
			return session.Session{}, fmt.Errorf("decode messages: %w", err)
		}
	}
	if sess.Messages == nil {
		sess.Messages = []session.Message{}
	}
	return sess, nil
}
