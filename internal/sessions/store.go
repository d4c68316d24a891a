// Package sessions stores session attributes between conversational turns.
// The platform echoes sessionAttributes from the previous response into the
// next request, but an extension that needs state to survive a dropped
// session (or to be shared across instances) keeps it here.
package sessions

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no attributes are stored for a session
var ErrNotFound = errors.New("session not found")

// Store persists attributes keyed by session id
type Store interface {
	Get(ctx context.Context, sessionID string) (map[string]interface{}, error)
	Put(ctx context.Context, sessionID string, attrs map[string]interface{}) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps attributes in process memory. Suitable for a single
// instance and for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]interface{}
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]map[string]interface{})}
}

// Get returns the stored attributes for a session
func (s *MemoryStore) Get(_ context.Context, sessionID string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return copied, nil
}

// Put stores the attributes for a session, replacing any previous value
func (s *MemoryStore) Put(_ context.Context, sessionID string, attrs map[string]interface{}) error {
	copied := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = copied
	return nil
}

// Delete removes the attributes of a session
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
