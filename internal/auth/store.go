package auth

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/techboard/techboard/internal/config"
	"github.com/techboard/techboard/internal/localstore"
	"github.com/techboard/techboard/internal/model"
)

var authLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	authLogger = l
}

// persistedState is the JSON blob written under the auth storage key.
type persistedState struct {
	User            *model.User `json:"user"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// Store is the process-wide session store. Its lifetime is the process
// lifetime; there is no teardown beyond persisting on change.
type Store struct {
	mu            sync.RWMutex
	user          *model.User
	authenticated bool

	provider Provider
	storage  localstore.Store
}

func NewStore(storage localstore.Store, provider Provider) *Store {
	return &Store{provider: provider, storage: storage}
}

// Rehydrate restores the prior session from storage without re-validating
// credentials. A missing blob leaves the store logged out.
func (s *Store) Rehydrate() error {
	data, ok, err := s.storage.Get(config.KeyAuthStorage)
	if err != nil {
		return fmt.Errorf("rehydrate auth state: %w", err)
	}
	if !ok {
		return nil
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt blob is equivalent to no session.
		authLogger.Warn().Err(err).Msg("Discarding unreadable auth state")
		return nil
	}

	s.mu.Lock()
	s.user = state.User
	s.authenticated = state.IsAuthenticated && state.User != nil
	s.mu.Unlock()
	return nil
}

// Login runs the provider check. On success the session becomes an
// authenticated ADMIN user and is persisted; on failure state is unchanged.
func (s *Store) Login(username, password string) bool {
	user, ok := s.provider.Authenticate(username, password)
	if !ok {
		return false
	}

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()

	s.persist()
	return true
}

func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()

	s.persist()
}

func (s *Store) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.authenticated || s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *Store) persist() {
	s.mu.RLock()
	state := persistedState{User: s.user, IsAuthenticated: s.authenticated}
	s.mu.RUnlock()

	data, err := json.Marshal(state)
	if err != nil {
		authLogger.Error().Err(err).Msg("Failed to encode auth state")
		return
	}
	if err := s.storage.Set(config.KeyAuthStorage, data); err != nil {
		authLogger.Error().Err(err).Msg("Failed to persist auth state")
	}
}
