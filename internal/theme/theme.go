// Package theme holds the UI state store: the light/dark theme and the
// sidebar flag. Only the theme is persisted.
package theme

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/techboard/techboard/internal/config"
	"github.com/techboard/techboard/internal/localstore"
)

var themeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	themeLogger = l
}

type Theme string

const (
	Light Theme = Theme(config.LightTheme)
	Dark  Theme = Theme(config.DarkTheme)
)

// SyntaxTheme returns the highlight style paired with a theme.
func SyntaxTheme(t Theme) string {
	if t == Dark {
		return config.DefaultDarkSyntaxTheme
	}
	return config.DefaultLightSyntaxTheme
}

// Applier synchronizes the presentation layer with a theme change: the
// document-class analog. It runs on every toggle and once on rehydration,
// before any themed output is produced.
type Applier func(Theme)

type persistedState struct {
	Theme Theme `json:"theme"`
}

// Store is the process-wide UI state store.
type Store struct {
	mu          sync.RWMutex
	theme       Theme
	sidebarOpen bool

	storage localstore.Store
	apply   Applier
}

func NewStore(storage localstore.Store, apply Applier) *Store {
	if apply == nil {
		apply = func(Theme) {}
	}
	return &Store{
		theme:       Theme(config.DefaultTheme),
		sidebarOpen: true,
		storage:     storage,
		apply:       apply,
	}
}

// Rehydrate restores the persisted theme and applies its visual effect
// immediately, so no themed output renders with the wrong theme first.
func (s *Store) Rehydrate() error {
	data, ok, err := s.storage.Get(config.KeyUIStorage)
	if err != nil {
		return fmt.Errorf("rehydrate ui state: %w", err)
	}
	if ok {
		var state persistedState
		if err := json.Unmarshal(data, &state); err != nil {
			themeLogger.Warn().Err(err).Msg("Discarding unreadable ui state")
		} else if state.Theme == Light || state.Theme == Dark {
			s.mu.Lock()
			s.theme = state.Theme
			s.mu.Unlock()
		}
	}

	s.apply(s.Theme())
	return nil
}

// ToggleTheme flips light/dark, persists the new theme and applies it.
func (s *Store) ToggleTheme() Theme {
	s.mu.Lock()
	if s.theme == Light {
		s.theme = Dark
	} else {
		s.theme = Light
	}
	next := s.theme
	s.mu.Unlock()

	s.persist(next)
	s.apply(next)
	return next
}

func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sidebarOpen = !s.sidebarOpen
	return s.sidebarOpen
}

func (s *Store) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

func (s *Store) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

func (s *Store) persist(t Theme) {
	data, err := json.Marshal(persistedState{Theme: t})
	if err != nil {
		themeLogger.Error().Err(err).Msg("Failed to encode ui state")
		return
	}
	if err := s.storage.Set(config.KeyUIStorage, data); err != nil {
		themeLogger.Error().Err(err).Msg("Failed to persist ui state")
	}
}
