package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
)

// Store is the in-memory reference implementation of session.Store. It keeps
// sessions in creation order and copies message slices on the way in and out
// so callers cannot mutate stored state.
type Store struct {
	mu       sync.RWMutex
	order    []string
	sessions map[string]session.Session
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]session.Session)}
}

func (s *Store) Create(ctx context.Context, title string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if title == "" {
		title = session.DefaultTitle(len(s.order))
	}
	sess := session.Session{
		ID:        session.NewID(),
		Title:     title,
		CreatedAt: session.Timestamp(time.Now()),
		Messages:  []session.Message{},
	}
	s.sessions[sess.ID] = sess
	s.order = append(s.order, sess.ID)
	return sess, nil
}

func (s *Store) List(ctx context.Context) ([]session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]session.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copySession(s.sessions[id]))
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (session.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, false, nil
	}
	return copySession(sess), true, nil
}

func (s *Store) ReplaceMessages(ctx context.Context, id string, messages []session.Message) (session.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, false, nil
	}
	sess.Messages = append([]session.Message(nil), messages...)
	s.sessions[id] = sess
	return copySession(sess), true, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}
	delete(s.sessions, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func copySession(sess session.Session) session.Session {
	sess.Messages = append([]session.Message{}, sess.Messages...)
	return sess
}
