package fable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/fable/pkg/ports"
	"github.com/aretw0/fable/pkg/schema"
	"github.com/aretw0/fable/pkg/state"
	"github.com/aretw0/fable/pkg/story"
)

// Version is the library version, surfaced by the CLI.
const Version = "0.1.0"

// ErrStoryNotFound is returned when a story name is not registered.
var ErrStoryNotFound = errors.New("story not found")

// Engine is the high-level entry point for the fable library. It keeps a
// registry of bound stories paired with their state contracts and, when a
// store is configured, persists state snapshots per session.
type Engine struct {
	mu      sync.RWMutex
	stories map[string]registration

	store   ports.StateStore
	locker  ports.SessionLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

type registration struct {
	story    *story.Story
	contract *schema.Schema
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStore configures a state store. Snapshots are saved after every run
// with a non-empty session ID, on completion AND on failure: partial state
// is the caller's to interpret.
func WithStore(store ports.StateStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker configures a session locker that serializes runs against the
// same session ID. Without one, callers must not share a state instance
// across concurrent invocations.
func WithLocker(locker ports.SessionLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = locker
		e.lockTTL = ttl
	}
}

// New initializes a new fable Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		stories: make(map[string]registration),
		logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
		lockTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds a bound story and its state contract to the engine.
// The contract may be nil for stories that validate nothing.
func (e *Engine) Register(st *story.Story, contract *schema.Schema) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	name := st.Name()
	if _, exists := e.stories[name]; exists {
		return fmt.Errorf("story %q is already registered", name)
	}
	e.stories[name] = registration{story: st, contract: contract}
	return nil
}

// Stories returns the registered story names in sorted order.
func (e *Engine) Stories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.stories))
	for name := range e.stories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the registered story under name.
func (e *Engine) Lookup(name string) (*story.Story, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	reg, ok := e.stories[name]
	return reg.story, ok
}

// Contract returns the state contract registered with a story.
func (e *Engine) Contract(name string) (*schema.Schema, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	reg, ok := e.stories[name]
	return reg.contract, ok
}

// NewState builds a state instance bound to a registered story's contract,
// validating the initial values through the contract.
func (e *Engine) NewState(name string, initial map[string]any) (*state.State, error) {
	e.mu.RLock()
	reg, ok := e.stories[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("story %q: %w", name, ErrStoryNotFound)
	}
	return state.New(reg.contract, initial)
}

// Run executes a registered story against st, blocking until it completes
// or fails. The step's error is returned unchanged. With a configured store
// and a non-empty sessionID the snapshot is saved either way; an empty
// sessionID keeps the run ephemeral.
func (e *Engine) Run(ctx context.Context, sessionID, name string, st *state.State) error {
	e.mu.RLock()
	reg, ok := e.stories[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("story %q: %w", name, ErrStoryNotFound)
	}

	unlock, err := e.acquire(ctx, sessionID)
	if err != nil {
		return err
	}
	defer e.release(unlock)

	e.logger.DebugContext(ctx, "story run", "story", name, "session_id", sessionID)
	runErr := reg.story.Run(ctx, st)
	// Persist even if ctx was canceled mid-run: partial state stays visible.
	e.saveState(context.WithoutCancel(ctx), sessionID, name, st)
	return runErr
}

// Start executes a registered story asynchronously and returns its
// invocation handle. The snapshot is saved once the invocation finishes,
// regardless of outcome.
func (e *Engine) Start(ctx context.Context, sessionID, name string, st *state.State) (*story.Invocation, error) {
	e.mu.RLock()
	reg, ok := e.stories[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("story %q: %w", name, ErrStoryNotFound)
	}

	unlock, err := e.acquire(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.logger.DebugContext(ctx, "story start", "story", name, "session_id", sessionID)
	inv := reg.story.Start(ctx, st)
	go func() {
		<-inv.Done()
		// Persist even if ctx was canceled mid-run: partial state stays visible.
		e.saveState(context.WithoutCancel(ctx), sessionID, name, st)
		e.release(unlock)
	}()
	return inv, nil
}

// Session loads a saved session snapshot, rebound to the story's contract.
func (e *Engine) Session(ctx context.Context, sessionID, name string) (*state.State, error) {
	e.mu.RLock()
	reg, ok := e.stories[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("story %q: %w", name, ErrStoryNotFound)
	}
	if e.store == nil {
		return nil, ports.ErrSessionNotFound
	}
	return e.store.Load(ctx, sessionID, reg.contract)
}

func (e *Engine) acquire(ctx context.Context, sessionID string) (ports.UnlockFunc, error) {
	if e.locker == nil || sessionID == "" {
		return nil, nil
	}
	return e.locker.Lock(ctx, sessionID, e.lockTTL)
}

func (e *Engine) release(unlock ports.UnlockFunc) {
	if unlock == nil {
		return
	}
	if err := unlock(context.Background()); err != nil {
		e.logger.Warn("failed to release session lock", "err", err)
	}
}

func (e *Engine) saveState(ctx context.Context, sessionID, name string, st *state.State) {
	if e.store == nil || sessionID == "" {
		return
	}
	if err := e.store.Save(ctx, sessionID, st); err != nil {
		e.logger.Error("failed to save session state", "session_id", sessionID, "story", name, "err", err)
		return
	}
	e.logger.Debug("state saved", "session_id", sessionID, "story", name)
}
