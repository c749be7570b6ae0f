package service

import (
	"context"
	"sync"

	"nutriguide/internal/domain"
)

// memoryProfileStore keeps profiles in a map. Used by the CLI demo and tests.
type memoryProfileStore struct {
	mu    sync.Mutex
	items map[string]domain.Profile
}

func NewMemoryProfileStore() ProfileStore {
	return &memoryProfileStore{items: make(map[string]domain.Profile)}
}

func (s *memoryProfileStore) Save(_ context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[profile.UserID] = profile
	return nil
}

func (s *memoryProfileStore) Get(_ context.Context, userID string) (domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.items[userID]
	if !ok {
		return domain.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}
