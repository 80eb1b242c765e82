// Package draft implements the local autosave workflow for the post editor.
//
// A draft here is a browser-local-style snapshot of in-progress form values
// under one fixed storage slot. It is unrelated to the server-side DRAFT post
// status; the two only share a word.
package draft

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/techboard/techboard/internal/config"
	"github.com/techboard/techboard/internal/localstore"
	"github.com/techboard/techboard/internal/model"
)

var draftLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	draftLogger = l
}

// Snapshot is one serialized set of post-editor form values.
type Snapshot struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Summary    string   `json:"summary"`
	Author     string   `json:"author"`
	CategoryID *int     `json:"categoryId,omitempty"`
	TagNames   []string `json:"tagNames"`
}

// Empty reports whether the snapshot carries nothing worth restoring.
func (s Snapshot) Empty() bool {
	return s.Title == "" && s.Content == "" && s.Summary == "" &&
		s.Author == "" && s.CategoryID == nil && len(s.TagNames) == 0
}

// Request converts the snapshot into the post write shape.
func (s Snapshot) Request() model.PostRequest {
	tags := s.TagNames
	if tags == nil {
		tags = []string{}
	}
	return model.PostRequest{
		Title:      s.Title,
		Content:    s.Content,
		Summary:    s.Summary,
		Author:     s.Author,
		CategoryID: s.CategoryID,
		TagNames:   tags,
	}
}

// Store reads and writes the single draft slot.
type Store struct {
	storage localstore.Store
}

func NewStore(storage localstore.Store) *Store {
	return &Store{storage: storage}
}

// Load returns the stored snapshot, if any. A corrupt blob reads as absent.
func (s *Store) Load() (Snapshot, bool, error) {
	data, ok, err := s.storage.Get(config.KeyPostEditorDraft)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return Snapshot{}, false, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		draftLogger.Warn().Err(err).Msg("Discarding unreadable draft")
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save overwrites the slot with the current form values.
func (s *Store) Save(snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.storage.Set(config.KeyPostEditorDraft, data); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Clear deletes the slot. Clearing an empty slot is a no-op.
func (s *Store) Clear() error {
	if err := s.storage.Delete(config.KeyPostEditorDraft); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
