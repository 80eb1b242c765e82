package draft

import (
	"sync"
	"time"

	"github.com/techboard/techboard/internal/model"
)

// Mode distinguishes the two editor states. Only Editing-New participates in
// the autosave workflow.
type Mode int

const (
	EditingNew Mode = iota
	EditingExisting
)

// Session is one post-editor lifecycle: seed, autosave (new posts only), and
// slot cleanup on successful submission.
type Session struct {
	mode  Mode
	store *Store
	saver *Autosaver

	// Restored is the snapshot that seeded the form, when one existed.
	Restored *Snapshot

	mu   sync.Mutex
	form Snapshot
}

// NewSession opens an Editing-New session: a stored draft, if present, seeds
// the form, and the caller should surface a restoration notice with a discard
// action.
func NewSession(store *Store, interval time.Duration) (*Session, error) {
	s := &Session{
		mode:  EditingNew,
		store: store,
	}

	if snap, ok, err := store.Load(); err != nil {
		return nil, err
	} else if ok && !snap.Empty() {
		s.Restored = &snap
		s.form = snap
	}

	s.saver = NewAutosaver(store, s.Values)
	if err := s.saver.Start(interval); err != nil {
		return nil, err
	}
	return s, nil
}

// ExistingSession opens an Editing-Existing session seeded from the server
// post. It never reads or writes the draft slot.
func ExistingSession(post model.Post) *Session {
	var categoryID *int
	if post.Category != nil {
		id := post.Category.ID
		categoryID = &id
	}
	tagNames := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagNames = append(tagNames, t.Name)
	}

	return &Session{
		mode: EditingExisting,
		form: Snapshot{
			Title:      post.Title,
			Content:    post.Content,
			Summary:    post.Summary,
			Author:     post.Author,
			CategoryID: categoryID,
			TagNames:   tagNames,
		},
	}
}

func (s *Session) Mode() Mode { return s.mode }

// SetValues replaces the current form values.
func (s *Session) SetValues(snap Snapshot) {
	s.mu.Lock()
	s.form = snap
	s.mu.Unlock()
}

// Values returns the current form values.
func (s *Session) Values() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Discard is the explicit restoration-notice action: it clears the slot and
// resets the form.
func (s *Session) Discard() error {
	if s.mode != EditingNew {
		return nil
	}
	s.SetValues(Snapshot{})
	s.Restored = nil
	return s.store.Clear()
}

// Submitted finalizes the session after a successful save or publish: the
// autosave stops and, for Editing-New, the stored draft is deleted.
func (s *Session) Submitted() error {
	s.stop()
	if s.mode != EditingNew {
		return nil
	}
	return s.store.Clear()
}

// Close abandons the session without touching the slot, keeping the latest
// autosaved values restorable.
func (s *Session) Close() {
	s.stop()
}

func (s *Session) stop() {
	if s.saver != nil {
		s.saver.Stop()
	}
}
