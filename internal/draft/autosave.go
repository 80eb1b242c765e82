package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Autosaver periodically snapshots the form values of an Editing-New session
// into the draft slot. Editing-Existing sessions never construct one.
type Autosaver struct {
	store  *Store
	values func() Snapshot

	cron *cron.Cron

	mu      sync.Mutex
	entry   cron.EntryID
	running bool
}

func NewAutosaver(store *Store, values func() Snapshot) *Autosaver {
	return &Autosaver{
		store:  store,
		values: values,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins autosaving every interval (the editor uses 10 seconds).
func (a *Autosaver) Start(interval time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.running {
		return nil
	}

	spec := fmt.Sprintf("@every %s", interval)
	entry, err := a.cron.AddFunc(spec, a.save)
	if err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}

	a.entry = entry
	a.running = true
	a.cron.Start()
	return nil
}

// Stop halts the schedule. A final save is not taken; submission or discard
// decides what happens to the slot.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.running {
		return
	}
	a.cron.Remove(a.entry)
	a.cron.Stop()
	a.running = false
}

func (a *Autosaver) save() {
	snap := a.values()
	if snap.Empty() {
		// Nothing worth restoring yet; keep whatever the slot holds.
		return
	}
	if err := a.store.Save(snap); err != nil {
		draftLogger.Error().Err(err).Msg("Autosave failed")
		return
	}
	draftLogger.Debug().Msg("Draft autosaved")
}
