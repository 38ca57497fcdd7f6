package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"catalogpix/internal/catalog"
	"catalogpix/internal/cdn"
	"catalogpix/internal/imagegen"
	"catalogpix/internal/settings"
)

// DefaultDelay is the pause between automatically scheduled items. The image
// backend is rate limited; pacing requests avoids burning quota on 429s.
const DefaultDelay = 10 * time.Second

var (
	ErrNotConfigured   = errors.New("storage credentials are not configured")
	ErrNoAuthorization = errors.New("no API authorization selected")
	ErrNothingPending  = errors.New("no pending items to process")
	ErrNothingFailed   = errors.New("no failed items to retry")
	ErrItemBusy        = errors.New("item is already being processed")
)

// EventKind identifies what a scheduler event describes.
type EventKind int

const (
	// EventItemUpdated fires after an item's record changes.
	EventItemUpdated EventKind = iota
	// EventProgress fires when an automatic pickup starts.
	EventProgress
	// EventRunFinished fires when the drain loop runs out of pending items.
	EventRunFinished
)

// Event is delivered to the Notify callback as the run progresses.
type Event struct {
	Kind  EventKind
	Item  catalog.Item
	Done  int
	Total int
}

// Config wires the scheduler's collaborators.
type Config struct {
	List      *catalog.List
	Generator imagegen.Generator
	Uploader  cdn.Uploader
	// Authorizer gates image backend calls. Nil means the host has no
	// selection flow and processing is always authorized.
	Authorizer imagegen.Authorizer
	// Credentials returns the current credential set. Read per pipeline
	// call so mid-run changes take effect immediately.
	Credentials func() settings.Credentials
	// Delay between automatic pickups. Zero means DefaultDelay.
	Delay time.Duration
	// Notify receives progress events. May be nil.
	Notify func(Event)
}

// Scheduler drives pending items to a terminal state one at a time. At most
// one automatically scheduled pipeline call is in flight at any instant; a
// manual RegenerateOne bypasses that guard but never races the loop on the
// same item id.
type Scheduler struct {
	list        *catalog.List
	generator   imagegen.Generator
	uploader    cdn.Uploader
	authorizer  imagegen.Authorizer
	credentials func() settings.Credentials
	delay       time.Duration
	notify      func(Event)

	mu           sync.Mutex
	running      bool
	paused       bool
	itemInFlight bool
	busy         map[int]struct{}
	wake         chan struct{}
}

// New creates a scheduler. Run must be started for automatic processing.
func New(cfg Config) *Scheduler {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Authorizer == nil {
		cfg.Authorizer = nopAuthorizer{}
	}
	if cfg.Credentials == nil {
		cfg.Credentials = func() settings.Credentials { return settings.Credentials{} }
	}
	return &Scheduler{
		list:        cfg.List,
		generator:   cfg.Generator,
		uploader:    cfg.Uploader,
		authorizer:  cfg.Authorizer,
		credentials: cfg.Credentials,
		delay:       cfg.Delay,
		notify:      cfg.Notify,
		busy:        make(map[int]struct{}),
		wake:        make(chan struct{}, 1),
	}
}

// nopAuthorizer is the fallback for hosts without a key-selection flow.
type nopAuthorizer struct{}

func (nopAuthorizer) HasAuthorization() bool     { return true }
func (nopAuthorizer) RequestAuthorization() bool { return true }
func (nopAuthorizer) Invalidate()                {}

// Run is the drain loop. It blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopped")
			return
		case <-s.wake:
		}
		s.drain(ctx)
	}
}

func (s *Scheduler) drain(ctx context.Context) {
	for {
		s.mu.Lock()
		if !s.running || s.paused || s.itemInFlight {
			s.mu.Unlock()
			return
		}
		item, ok := s.list.FirstPending()
		if !ok {
			s.running = false
			s.mu.Unlock()
			log.Info().Msg("run finished, no pending items left")
			s.emit(Event{Kind: EventRunFinished})
			return
		}
		if _, taken := s.busy[item.ID]; taken {
			// A manual regenerate owns this item and kicks the loop when
			// it is done.
			s.mu.Unlock()
			return
		}
		s.itemInFlight = true
		s.busy[item.ID] = struct{}{}
		s.mu.Unlock()

		counts := s.list.Counts()
		s.emit(Event{Kind: EventProgress, Done: counts.Done() + 1, Total: counts.Total})

		s.processItem(ctx, item.ID)

		s.mu.Lock()
		delete(s.busy, item.ID)
		s.mu.Unlock()

		// The in-flight guard stays held through the delay so the next
		// automatic pickup cannot start before it has elapsed.
		select {
		case <-ctx.Done():
		case <-time.After(s.delay):
		}

		s.mu.Lock()
		s.itemInFlight = false
		s.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
	}
}

// Start begins (or continues) automatic processing. It fails when no API
// authorization can be obtained, when storage credentials are missing, or
// when there is nothing pending.
func (s *Scheduler) Start() error {
	if !s.authorizer.HasAuthorization() && !s.authorizer.RequestAuthorization() {
		return ErrNoAuthorization
	}
	if !s.credentials().Configured() {
		return ErrNotConfigured
	}
	if _, ok := s.list.FirstPending(); !ok {
		return ErrNothingPending
	}

	s.mu.Lock()
	s.running = true
	s.paused = false
	s.mu.Unlock()
	s.kick()
	return nil
}

// Pause stops future pickups. An item already in flight is not interrupted.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
	log.Info().Msg("processing paused")
}

// Resume lifts a pause.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
	log.Info().Msg("processing resumed")
	s.kick()
}

// RetryFailed transitions every failed item back to pending, clears its
// error, and starts processing. Returns how many items were reset.
func (s *Scheduler) RetryFailed() (int, error) {
	n := s.list.ResetFailed()
	if n == 0 {
		return 0, ErrNothingFailed
	}
	log.Info().Int("count", n).Msg("retrying failed items")
	return n, s.Start()
}

// RegenerateOne updates the item's prompt and runs the pipeline for it
// immediately, independent of the drain loop's pacing and run state. It
// returns ErrItemBusy if a pipeline call for the same id is in flight.
func (s *Scheduler) RegenerateOne(ctx context.Context, id int, newPrompt string) error {
	if _, ok := s.list.Get(id); !ok {
		return fmt.Errorf("no item with id %d", id)
	}
	if !s.authorizer.HasAuthorization() && !s.authorizer.RequestAuthorization() {
		return ErrNoAuthorization
	}
	if !s.credentials().Configured() {
		return ErrNotConfigured
	}

	s.mu.Lock()
	if _, taken := s.busy[id]; taken {
		s.mu.Unlock()
		return ErrItemBusy
	}
	s.busy[id] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.busy, id)
		s.mu.Unlock()
		s.kick()
	}()

	if newPrompt != "" {
		if err := s.list.SetPrompt(id, newPrompt); err != nil {
			return err
		}
	}
	s.processItem(ctx, id)
	return nil
}

// Running reports whether a run is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Paused reports whether pickups are suspended.
func (s *Scheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Scheduler) kick() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) emit(ev Event) {
	if s.notify != nil {
		s.notify(ev)
	}
}
