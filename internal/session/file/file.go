package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
)

// document is the on-disk shape: one JSON object holding every session.
type document struct {
	Sessions []session.Session `json:"sessions"`
}

// Store persists sessions in a single JSON file. Every operation runs a
// load-mutate-save cycle under one mutex, so concurrent writers within this
// process cannot lose updates. Writes go through a temp file plus rename so a
// crash never leaves a half-written document.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a file-backed store at the given path. The file is created
// lazily on the first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Create(ctx context.Context, title string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	if title == "" {
		title = session.DefaultTitle(len(doc.Sessions))
	}
	sess := session.Session{
		ID:        session.NewID(),
		Title:     title,
		CreatedAt: session.Timestamp(time.Now()),
		Messages:  []session.Message{},
	}
	doc.Sessions = append(doc.Sessions, sess)
	if err := s.save(doc); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

func (s *Store) List(ctx context.Context) ([]session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	return append([]session.Session{}, doc.Sessions...), nil
}

func (s *Store) Get(ctx context.Context, id string) (session.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for _, sess := range doc.Sessions {
		if sess.ID == id {
			return sess, true, nil
		}
	}
	return session.Session{}, false, nil
}

func (s *Store) ReplaceMessages(ctx context.Context, id string, messages []session.Message) (session.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for i := range doc.Sessions {
		if doc.Sessions[i].ID == id {
			doc.Sessions[i].Messages = append([]session.Message{}, messages...)
			if err := s.save(doc); err != nil {
				return session.Session{}, false, err
			}
			return doc.Sessions[i], true, nil
		}
	}
	return session.Session{}, false, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for i := range doc.Sessions {
		if doc.Sessions[i].ID == id {
			doc.Sessions = append(doc.Sessions[:i], doc.Sessions[i+1:]...)
			if err := s.save(doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// load reads the document; a missing or unreadable file yields an empty one,
// matching create-on-first-write semantics.
func (s *Store) load() document {
	var doc document
	b, err := os.ReadFile(s.path)
	if err != nil {
		return doc
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return document{}
	}
	return doc
}

func (s *Store) save(doc document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".sessions-*.json")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write sessions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename sessions file: %w", err)
	}
	return nil
}
