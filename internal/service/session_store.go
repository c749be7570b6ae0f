package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"nutriguide/internal/domain"
)

// Session binds one visitor to their interview state and the combo proposal
// waiting for a yes/no answer.
type Session struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	State        *OnboardingState     `json:"state"`
	PendingCombo *domain.ProductCombo `json:"pending_combo,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// SessionStore keeps live sessions between chat turns.
type SessionStore interface {
	Put(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type memorySessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memorySessionEntry
}

type memorySessionEntry struct {
	session   *Session
	expiresAt time.Time
}

// NewMemorySessionStore creates an in-memory store; sessions expire after ttl
// of inactivity.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memorySessionStore{
		ttl:   ttl,
		items: make(map[string]memorySessionEntry),
	}
}

func (s *memorySessionStore) Put(_ context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session without id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[session.ID] = memorySessionEntry{
		session:   session,
		expiresAt: time.Now().UTC().Add(s.ttl),
	}
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, id)
		return nil, ErrSessionNotFound
	}
	return entry.session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type redisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed store so sessions survive API
// restarts and can be shared across instances.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisSessionStore{
		client: client,
		prefix: "chat:session:",
		ttl:    ttl,
	}
}

func (s *redisSessionStore) Put(ctx context.Context, session *Session) error {
	if session == nil || session.ID == "" {
		return errors.New("session without id")
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.prefix+session.ID, raw, s.ttl).Err()
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.prefix+id).Err()
}
