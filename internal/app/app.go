// Package app owns the in-memory state tree and turns user actions into
// engine calls plus one persistence write per action.
package app

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/lifetracks/internal/ai"
	"github.com/julianstephens/lifetracks/internal/backup"
	"github.com/julianstephens/lifetracks/internal/constants"
	apperr "github.com/julianstephens/lifetracks/internal/errors"
	"github.com/julianstephens/lifetracks/internal/logger"
	"github.com/julianstephens/lifetracks/internal/models"
	"github.com/julianstephens/lifetracks/internal/storage"
)

// ErrCancelled is returned when the user declines a confirmation.
var ErrCancelled = apperr.NewValidation("cancelled")

// State is everything the front ends draw from.
type State struct {
	Snapshot models.Snapshot

	View           constants.SessionState
	TagFilter      string
	ActiveWidget   string
	ActiveCategory string

	Selecting bool
	Selection models.Selection
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm approves everything, for --yes and tests.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithIDs(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

func WithConfirmer(confirm Confirmer) Option {
	return func(c *Controller) { c.confirm = confirm }
}

func WithCollaborator(collab ai.Collaborator) Option {
	return func(c *Controller) { c.ai = collab }
}

func WithBackups(m *backup.Manager) Option {
	return func(c *Controller) { c.backups = m }
}

func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounceDelay = d }
}

// Controller serializes every state transition behind one mutex.
type Controller struct {
	mu    sync.Mutex
	state State
	store storage.Provider

	now     func() time.Time
	newID   func() string
	rng     *rand.Rand
	confirm Confirmer
	ai      ai.Collaborator
	backups *backup.Manager

	debounceDelay time.Duration
	countdown     *debouncer

	persistErr error
	async      sync.WaitGroup
}

// New loads the snapshot from store and returns a controller over it. By
// default every confirmation is declined.
func New(store storage.Provider, opts ...Option) *Controller {
	c := &Controller{
		store:         store,
		now:           time.Now,
		newID:         uuid.NewString,
		rng:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		confirm:       ConfirmFunc(func(string) bool { return false }),
		ai:            ai.Disabled{},
		debounceDelay: constants.CountdownDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.countdown = newDebouncer(c.debounceDelay)
	c.state = State{
		Snapshot: storage.LoadSnapshot(store, c.now()),
		View:     constants.SessionNotes,
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the current state tree.
func (c *Controller) Snapshot() models.Snapshot {
	return c.State().Snapshot
}

// PersistErr returns the error of the most recent failed save, or nil once a
// later save succeeds.
func (c *Controller) PersistErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistErr
}

// Close writes any pending debounced edit and waits for async work.
func (c *Controller) Close() {
	c.countdown.Flush()
	c.async.Wait()
}

// NewID returns a fresh entity id.
func (c *Controller) NewID() string {
	return c.newID()
}

func (c *Controller) confirmed(prompt string) error {
	if !c.confirm.Confirm(prompt) {
		return ErrCancelled
	}
	return nil
}

// update runs fn on a copy of the snapshot. On success the copy becomes the
// state and the slots fn reports are saved. On error nothing changes.
func (c *Controller) update(fn func(s *models.Snapshot) (models.Slot, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state.Snapshot
	dirty, err := fn(&next)
	if err != nil {
		return err
	}
	c.state.Snapshot = next
	c.persistLocked(dirty)
	return nil
}

func (c *Controller) persistLocked(dirty models.Slot) {
	if dirty == models.SlotNone {
		return
	}
	if err := storage.SaveSnapshot(c.store, c.state.Snapshot, dirty); err != nil {
		logger.Warn("Failed to save state", "slots", dirty, "error", err)
		c.persistErr = err
		return
	}
	c.persistErr = nil
}
