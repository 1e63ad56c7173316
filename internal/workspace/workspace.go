package workspace

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"platecheck/internal/nutrition"
)

var (
	// ErrStaleUpload is returned when a newer upload began before this one
	// finished; its result is discarded.
	ErrStaleUpload = errors.New("workspace: a newer upload superseded this one")
	// ErrRateLimited is returned when uploads arrive faster than allowed.
	ErrRateLimited = errors.New("workspace: too many uploads, slow down")
)

// Ticket identifies one upload attempt within a workspace.
type Ticket struct {
	Seq uint64
}

// Snapshot is a consistent read of a workspace's result set.
type Snapshot struct {
	ID       string
	Items    []nutrition.FoodItem
	Totals   nutrition.Totals
	Skipped  []nutrition.SkippedItem
	Upload   uint64
	Uploaded time.Time
}

// Empty reports whether no result set has been committed yet.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

// Change describes the outcome of one item edit.
type Change struct {
	Item    nutrition.FoodItem
	Totals  nutrition.Totals
	Applied bool
}

// Workspace owns the result set of one browser session. Store operations run
// under the workspace lock so each edit completes before the next begins.
type Workspace struct {
	id string

	mu        sync.Mutex
	store     *nutrition.Store
	latest    uint64
	committed uint64
	skipped   []nutrition.SkippedItem
	uploaded  time.Time
	limiter   *rate.Limiter
	lastSeen  time.Time
}

func newWorkspace(id string, limiter *rate.Limiter, now time.Time) *Workspace {
	return &Workspace{
		id:       id,
		store:    nutrition.NewStore(),
		limiter:  limiter,
		lastSeen: now,
	}
}

// ID returns the workspace identifier.
func (w *Workspace) ID() string {
	return w.id
}

// BeginUpload registers a new upload attempt. Any attempt begun earlier that
// has not yet committed becomes stale.
func (w *Workspace) BeginUpload() (Ticket, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.limiter != nil && !w.limiter.Allow() {
		return Ticket{}, ErrRateLimited
	}
	w.latest++
	return Ticket{Seq: w.latest}, nil
}

// Commit replaces the result set with result if ticket is still the most
// recent upload. Stale tickets leave the current set untouched.
func (w *Workspace) Commit(ticket Ticket, result nutrition.Result, at time.Time) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ticket.Seq != w.latest || ticket.Seq <= w.committed {
		return w.snapshotLocked(), ErrStaleUpload
	}
	w.store.Replace(result.Items)
	w.skipped = append([]nutrition.SkippedItem(nil), result.Skipped...)
	w.committed = ticket.Seq
	w.uploaded = at
	return w.snapshotLocked(), nil
}

// Snapshot returns the current result set.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// SetQuantity adjusts an item's quantity; see nutrition.Store.SetQuantity.
func (w *Workspace) SetQuantity(itemID string, delta, entered int) Change {
	return w.edit(itemID, func(s *nutrition.Store) (nutrition.FoodItem, bool) {
		return s.SetQuantity(itemID, delta, entered)
	})
}

// SetServingSize selects a serving option for an item.
func (w *Workspace) SetServingSize(itemID, key string) Change {
	return w.edit(itemID, func(s *nutrition.Store) (nutrition.FoodItem, bool) {
		return s.SetServingSize(itemID, key)
	})
}

// SetIncluded toggles whether an item counts toward the total.
func (w *Workspace) SetIncluded(itemID string, included bool) Change {
	return w.edit(itemID, func(s *nutrition.Store) (nutrition.FoodItem, bool) {
		return s.SetIncluded(itemID, included)
	})
}

// Item returns a single item from the current result set.
func (w *Workspace) Item(itemID string) (nutrition.FoodItem, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Item(itemID)
}

// Reset discards the current result set. Uploads begun before the reset
// become stale and can no longer commit.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.store.Clear()
	w.skipped = nil
	w.uploaded = time.Time{}
	w.latest++
	w.committed = 0
}

func (w *Workspace) edit(itemID string, apply func(*nutrition.Store) (nutrition.FoodItem, bool)) Change {
	w.mu.Lock()
	defer w.mu.Unlock()

	item, applied := apply(w.store)
	if !applied {
		// Stale edits still report the current state so the caller can re-render.
		item, _ = w.store.Item(itemID)
	}
	return Change{
		Item:    item,
		Totals:  nutrition.Summarize(w.store.Items()),
		Applied: applied,
	}
}

func (w *Workspace) snapshotLocked() Snapshot {
	items := w.store.Items()
	return Snapshot{
		ID:       w.id,
		Items:    items,
		Totals:   nutrition.Summarize(items),
		Skipped:  append([]nutrition.SkippedItem(nil), w.skipped...),
		Upload:   w.committed,
		Uploaded: w.uploaded,
	}
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}
