package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message roles within a chat session.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat turn. Immutable once appended; order is significant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the unit of durability for a conversation.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"created_at"` // RFC3339 UTC
	Messages  []Message `json:"messages"`
}

// Store is the persistence contract for chat sessions. Get, ReplaceMessages
// and Delete report existence via the boolean so callers can distinguish
// not-found from backend failure.
type Store interface {
	Create(ctx context.Context, title string) (Session, error)
	List(ctx context.Context) ([]Session, error)
	Get(ctx context.Context, id string) (Session, bool, error)
	ReplaceMessages(ctx context.Context, id string, messages []Message) (Session, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// NewID produces a short opaque session id: the first 8 hex characters of a
// UUID. Uniqueness within a store's lifetime is what matters here, not
// global uniqueness.
func NewID() string {
	return uuid.NewString()[:8]
}

// DefaultTitle names a session created without an explicit title, where n is
// the number of sessions already in the store.
func DefaultTitle(n int) string {
	return fmt.Sprintf("Session %d", n+1)
}

// Timestamp formats session creation times the way the API exposes them.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
