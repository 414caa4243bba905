package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mohammad-safakhou/finadvisor/internal/session"
)

const indexKey = "sessions:index"

func sessionKey(id string) string { return fmt.Sprintf("session:%s", id) }

// Store persists sessions in Redis: one JSON value per session plus a list
// that preserves creation order. Per-operation atomicity comes from Redis
// itself; there is no cross-key transaction, which matches the
// whole-document-replacement semantics of the other backends.
type Store struct {
	client *redis.Client
}

// NewStore connects to Redis with the given settings.
func NewStore(addr, password string, db int) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{client: rdb}
}

// NewStoreWithClient wraps an existing client, used by tests.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Create(ctx context.Context, title string) (session.Session, error) {
	if title == "" {
		n, err := s.client.LLen(ctx, indexKey).Result()
		if err != nil {
			return session.Session{}, fmt.Errorf("count sessions: %w", err)
		}
		title = session.DefaultTitle(int(n))
	}
	sess := session.Session{
		ID:        session.NewID(),
		Title:     title,
		CreatedAt: session.Timestamp(time.Now()),
		Messages:  []session.Message{},
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return session.Session{}, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), b, 0).Err(); err != nil {
		return session.Session{}, fmt.Errorf("store session: %w", err)
	}
	if err := s.client.RPush(ctx, indexKey, sess.ID).Err(); err != nil {
		return session.Session{}, fmt.Errorf("index session: %w", err)
	}
	return sess, nil
}

func (s *Store) List(ctx context.Context) ([]session.Session, error) {
	ids, err := s.client.LRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]session.Session, 0, len(ids))
	for _, id := range ids {
		sess, ok, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, sess)
		}
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (session.Session, bool, error) {
	val, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	var sess session.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return session.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	return sess, true, nil
}

func (s *Store) ReplaceMessages(ctx context.Context, id string, messages []session.Message) (session.Session, bool, error) {
	sess, ok, err := s.Get(ctx, id)
	if err != nil || !ok {
		return session.Session{}, ok, err
	}
	sess.Messages = append([]session.Message{}, messages...)
	b, err := json.Marshal(sess)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(id), b, 0).Err(); err != nil {
		return session.Session{}, false, fmt.Errorf("store session: %w", err)
	}
	return sess, true, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if err := s.client.LRem(ctx, indexKey, 0, id).Err(); err != nil {
		return false, fmt.Errorf("unindex session: %w", err)
	}
	return true, nil
}
