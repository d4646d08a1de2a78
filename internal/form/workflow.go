package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/debounce"
	"github.com/ytget/remote-downloader/internal/download"
	"github.com/ytget/remote-downloader/internal/logger"
	"github.com/ytget/remote-downloader/internal/model"
)

// MinURLLength is the shortest input, in characters, that is worth verifying.
const MinURLLength = 10

var (
	// ErrSubmitDisabled is returned when there is no fresh, supported verification.
	ErrSubmitDisabled = errors.New("download disabled: the current URL is not verified as supported")

	// ErrSubmitInFlight is returned while a previous submission is outstanding.
	ErrSubmitInFlight = errors.New("a download request is already in progress")

	// ErrURLTooShort is returned by VerifyNow for input below MinURLLength.
	ErrURLTooShort = errors.New("url is too short to verify")

	// ErrSuperseded is returned by VerifyNow when the URL changed before the
	// answer arrived; the answer was discarded.
	ErrSuperseded = errors.New("url changed before verification completed")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("workflow closed")
)

// Verifier checks a URL against the backend.
type Verifier interface {
	CheckURL(ctx context.Context, url string) (model.VerificationResult, error)
}

// SitesSource lists supported sites.
type SitesSource interface {
	SupportedSites(ctx context.Context) (model.SupportedSites, error)
}

// Option configures a Workflow
type Option func(*Workflow)

// WithDebounce overrides the quiet period before verification
func WithDebounce(d time.Duration) Option {
	return func(w *Workflow) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithSitesSource sets where LoadSupportedSites reads from
func WithSitesSource(s SitesSource) Option {
	return func(w *Workflow) {
		w.sites = s
	}
}

// Workflow owns the input state of one form. All mutations happen under mu;
// listeners receive copies after the lock is released.
type Workflow struct {
	mu         sync.Mutex
	state      model.InputState
	version    uint64
	seq        uint64 // last verification request issued
	appliedSeq uint64 // last verification response applied
	pending    bool   // a scheduled verification has not started yet
	closed     bool

	delay     time.Duration
	scheduler *debounce.Debouncer
	verifier  Verifier
	sites     SitesSource
	downloads download.Submitter

	ctx    context.Context
	cancel context.CancelFunc

	notifyMu  sync.Mutex
	delivered uint64
	onUpdate  func(model.InputState)
	log       *zap.Logger
}

// New creates a workflow with empty state
func New(verifier Verifier, downloads download.Submitter, opts ...Option) *Workflow {
	w := &Workflow{
		delay:     config.DefaultDebounceDelay,
		verifier:  verifier,
		downloads: downloads,
		log:       logger.Named("form"),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.scheduler = debounce.New(w.delay)
	w.ctx, w.cancel = context.WithCancel(context.Background())
	return w
}

// SetUpdateCallback sets the function called with every new state
func (w *Workflow) SetUpdateCallback(callback func(model.InputState)) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()
	w.onUpdate = callback
}

// State returns a copy of the current state
func (w *Workflow) State() model.InputState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Clone()
}

// DebounceDelay returns the configured quiet period
func (w *Workflow) DebounceDelay() time.Duration {
	return w.delay
}

// Close stops the timer; responses still in flight are dropped on arrival
func (w *Workflow) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.scheduler.Stop()
	w.cancel()
}

// commitLocked records a mutation and returns the snapshot to publish.
// Must be called with mu held.
func (w *Workflow) commitLocked() (model.InputState, uint64) {
	w.version++
	return w.state.Clone(), w.version
}

// publish delivers a snapshot unless a newer one was already delivered, so
// listeners never observe state going backwards.
func (w *Workflow) publish(state model.InputState, version uint64) {
	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	if version <= w.delivered {
		return
	}
	w.delivered = version
	if w.onUpdate != nil {
		w.onUpdate(state)
	}
}
