package speech

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// State is the turn buffer's position in the duplex conversation.
type State int

// Turn buffer states.
const (
	// StateIdle means no fragments are buffered and nothing is in flight.
	StateIdle State = iota
	// StateAccumulating means transcript fragments are arriving.
	StateAccumulating
	// StatePendingProcess means silence was observed and the debounce
	// timer is running down.
	StatePendingProcess
	// StateProcessing means a turn was handed off and its reply is being
	// produced. At most one turn is in this state at a time.
	StateProcessing
	// StateSpeaking means avatar audio is playing; new fragments are
	// buffered but not dispatched.
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StatePendingProcess:
		return "pending_process"
	case StateProcessing:
		return "processing"
	default:
		return "speaking"
	}
}

// Default timer values. The debounce decides when an utterance is over;
// the fallback caps how long a continuously-talking user can delay
// dispatch.
const (
	DefaultSilenceDebounce = 1500 * time.Millisecond
	DefaultHardFallback    = 5 * time.Second
	DefaultRetryBackoff    = 500 * time.Millisecond
)

// TurnBuffer accumulates streamed transcript fragments into complete
// turns. It owns two scheduled callbacks, a short silence debounce reset
// on every fragment and a hard fallback armed on the first fragment of a
// turn, and dispatches the joined buffer when either fires.
//
// All methods are safe for concurrent use. Dispatch is invoked without
// the internal lock held, so it may call back into the buffer.
type TurnBuffer struct {
	dispatch        func(text string, deferred bool)
	silenceDebounce time.Duration
	hardFallback    time.Duration
	retryBackoff    time.Duration
	clock           Clock
	logger          *slog.Logger

	mu             sync.Mutex
	state          State
	fragments      []string
	deferred       bool
	muted          bool
	lastDispatched string
	debounceTimer  Timer
	fallbackTimer  Timer
	retryTimer     Timer
}

// TurnBufferParams configures a TurnBuffer. Dispatch is required; zero
// durations take the defaults; Clock defaults to the real clock.
type TurnBufferParams struct {
	Dispatch        func(text string, deferred bool)
	SilenceDebounce time.Duration
	HardFallback    time.Duration
	RetryBackoff    time.Duration
	Clock           Clock
	Logger          *slog.Logger
}

// NewTurnBuffer creates a TurnBuffer in StateIdle.
func NewTurnBuffer(p TurnBufferParams) *TurnBuffer {
	if p.SilenceDebounce <= 0 {
		p.SilenceDebounce = DefaultSilenceDebounce
	}

	if p.HardFallback <= 0 {
		p.HardFallback = DefaultHardFallback
	}

	if p.RetryBackoff <= 0 {
		p.RetryBackoff = DefaultRetryBackoff
	}

	if p.Clock == nil {
		p.Clock = NewClock()
	}

	if p.Logger == nil {
		p.Logger = slog.Default()
	}

	return &TurnBuffer{
		dispatch:        p.Dispatch,
		silenceDebounce: p.SilenceDebounce,
		hardFallback:    p.HardFallback,
		retryBackoff:    p.RetryBackoff,
		clock:           p.Clock,
		logger:          p.Logger,
	}
}

// State returns the current state.
func (b *TurnBuffer) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

// AddFragment appends one transcript fragment. While muted, fragments
// are discarded. While the avatar is speaking, fragments accumulate into
// a fresh buffer dispatched as a deferred follow-up once speech ends.
func (b *TurnBuffer) AddFragment(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.muted {
		b.logger.Debug("fragment dropped while muted", "text", text)

		return
	}

	b.fragments = append(b.fragments, text)

	if b.state == StateSpeaking {
		b.deferred = true

		return
	}

	if b.state == StateIdle || b.state == StatePendingProcess {
		b.state = StateAccumulating
	}

	if b.debounceTimer != nil {
		b.debounceTimer.Stop()
	}

	b.debounceTimer = b.clock.AfterFunc(b.silenceDebounce, b.onSilence)

	if b.fallbackTimer == nil {
		b.fallbackTimer = b.clock.AfterFunc(b.hardFallback, b.onFallback)
	}
}

// Mute suppresses transcript ingestion until unmuted. An in-flight
// buffer and its timers are left untouched.
func (b *TurnBuffer) Mute(muted bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.muted = muted
}

// AvatarStartedSpeaking marks the avatar audio as playing. Fragments
// arriving from here on are held for a deferred follow-up turn.
func (b *TurnBuffer) AvatarStartedSpeaking() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopTimersLocked()
	b.state = StateSpeaking
}

// AvatarStoppedSpeaking ends playback. A non-empty fresh buffer re-enters
// the debounce path tagged as deferred; otherwise the buffer goes idle.
func (b *TurnBuffer) AvatarStoppedSpeaking() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateSpeaking {
		return
	}

	if len(b.fragments) == 0 {
		b.state = StateIdle

		return
	}

	b.state = StateAccumulating
	b.debounceTimer = b.clock.AfterFunc(b.silenceDebounce, b.onSilence)
	b.fallbackTimer = b.clock.AfterFunc(b.hardFallback, b.onFallback)
}

// ProcessingDone marks the in-flight turn as finished without avatar
// playback (text-only replies). Any fragments queued meanwhile re-enter
// the debounce path.
func (b *TurnBuffer) ProcessingDone() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateProcessing {
		return
	}

	if len(b.fragments) == 0 {
		b.state = StateIdle

		return
	}

	b.state = StateAccumulating
	b.debounceTimer = b.clock.AfterFunc(b.silenceDebounce, b.onSilence)
	b.fallbackTimer = b.clock.AfterFunc(b.hardFallback, b.onFallback)
}

func (b *TurnBuffer) onSilence() {
	b.mu.Lock()

	switch b.state {
	case StateAccumulating:
		b.state = StatePendingProcess
	case StateProcessing:
		// Queued turn behind an in-flight one; tryDispatch schedules
		// the backoff retry.
	default:
		b.mu.Unlock()

		return
	}

	b.mu.Unlock()

	b.tryDispatch()
}

func (b *TurnBuffer) onFallback() {
	b.mu.Lock()

	switch b.state {
	case StateAccumulating, StatePendingProcess:
		b.state = StatePendingProcess
	case StateProcessing:
	default:
		b.mu.Unlock()

		return
	}

	b.logger.Debug("hard fallback fired, forcing dispatch")
	b.mu.Unlock()

	b.tryDispatch()
}

func (b *TurnBuffer) onRetry() {
	b.mu.Lock()
	b.retryTimer = nil

	if b.state != StateProcessing || len(b.fragments) == 0 {
		b.mu.Unlock()

		return
	}

	b.mu.Unlock()

	b.tryDispatch()
}

// tryDispatch hands the accumulated buffer to the dispatch callback. The
// buffer is cleared under the lock before the callback runs so a turn is
// never double-processed. A turn arriving while another is still in
// flight is kept buffered and retried after a fixed backoff.
func (b *TurnBuffer) tryDispatch() {
	b.mu.Lock()

	if b.state == StateProcessing {
		if b.retryTimer == nil {
			b.retryTimer = b.clock.AfterFunc(b.retryBackoff, b.onRetry)
		}

		b.mu.Unlock()

		return
	}

	text := strings.TrimSpace(strings.Join(b.fragments, " "))
	deferred := b.deferred

	b.fragments = nil
	b.deferred = false
	b.stopTimersLocked()

	if text == "" {
		b.state = StateIdle
		b.mu.Unlock()

		return
	}

	if text == b.lastDispatched {
		b.logger.Debug("duplicate turn suppressed", "text", text)
		b.state = StateIdle
		b.mu.Unlock()

		return
	}

	b.lastDispatched = text
	b.state = StateProcessing
	b.mu.Unlock()

	b.logger.Debug("turn dispatched", "text", text, "deferred", deferred)
	b.dispatch(text, deferred)
}

func (b *TurnBuffer) stopTimersLocked() {
	if b.debounceTimer != nil {
		b.debounceTimer.Stop()
		b.debounceTimer = nil
	}

	if b.fallbackTimer != nil {
		b.fallbackTimer.Stop()
		b.fallbackTimer = nil
	}
}
