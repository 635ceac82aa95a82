// internal/game/session.go
//
// Session controller: owns one game's lifecycle from Start to completion
// or Stop. Composes the board generator and the match engine, keeps the
// hit/miss counters, runs the elapsed-time ticker, and notifies
// completion listeners in registration order.

package game

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// elapsedTickInterval is the resolution of the elapsed-time counter.
const elapsedTickInterval = 10 * time.Millisecond

const defaultPlayerName = "Anonymous"

// Options selects what a new game is played with.
type Options struct {
	CardType    string
	BoardSizeID string
	PlayerName  string
}

// CurrentGame identifies the active play-through, if any.
type CurrentGame struct {
	UUID       string `json:"uuid"`
	PlayerName string `json:"playerName"`
	Started    bool   `json:"started"`
}

// State is the per-session aggregate. Exactly one State is live per
// session and it is owned exclusively by the Session.
type State struct {
	CardType      string      `json:"cardType"`
	BoardSizeID   string      `json:"boardSizeId"`
	Cards         []*Card     `json:"cards"`
	ElapsedTime   float64     `json:"elapsedTime"` // seconds
	GameStartTime time.Time   `json:"gameStartTime"`
	Hits          int         `json:"hits"`
	Misses        int         `json:"misses"`
	GameCompleted bool        `json:"gameCompleted"`
	CurrentGame   CurrentGame `json:"currentGame"`
}

// Session owns one game at a time. All entry points are safe for
// concurrent use; the click path, the ticker and the deferred mismatch
// hide serialize on internal locks.
type Session struct {
	clock quartz.Clock
	rng   *rand.Rand

	mu                 sync.Mutex
	state              State
	engine             *Engine
	tickCancel         context.CancelFunc
	completedListeners []func()
}

// NewSession returns an idle session. The clock drives the elapsed-time
// ticker and the engine's mismatch timer; the rng drives board layout.
func NewSession(clock quartz.Clock, rng *rand.Rand) *Session {
	return &Session{
		clock: clock,
		rng:   rng,
		state: State{CurrentGame: CurrentGame{PlayerName: defaultPlayerName}},
	}
}

// Start begins a new game. Size and theme validation is delegated to the
// board generator; its errors propagate and leave the session idle.
func (s *Session) Start(opts Options, catalog Catalog) error {
	cards, err := Generate(s.rng, opts.CardType, opts.BoardSizeID, catalog)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTickerLocked()
	if s.engine != nil {
		s.engine.Reset()
	}

	if opts.PlayerName != "" {
		s.state.CurrentGame.PlayerName = opts.PlayerName
	}
	s.state.CurrentGame.UUID = uuid.NewString()
	s.state.CurrentGame.Started = true
	s.state.CardType = opts.CardType
	s.state.BoardSizeID = opts.BoardSizeID
	s.state.GameStartTime = s.clock.Now()
	s.state.ElapsedTime = 0
	s.state.Hits = 0
	s.state.Misses = 0
	s.state.Cards = cards
	s.state.GameCompleted = false
	s.engine = NewEngine(s.clock)

	ctx, cancel := context.WithCancel(context.Background())
	s.tickCancel = cancel
	start := s.state.GameStartTime
	_ = s.clock.TickerFunc(ctx, elapsedTickInterval, func() error {
		s.mu.Lock()
		s.state.ElapsedTime = s.clock.Since(start).Seconds()
		s.mu.Unlock()
		return nil
	})
	return nil
}

// Stop tears the current game down. Idempotent; stopping an idle session
// is a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.GameCompleted = false
	s.state.CurrentGame.UUID = ""
	s.state.CurrentGame.Started = false
	s.stopTickerLocked()
	if s.engine != nil {
		s.engine.Reset()
	}
}

// HandleClick forwards a click to the engine with the session's
// bookkeeping wired in. Clicks are rejected outright while no game is
// started or after completion.
func (s *Session) HandleClick(index int, cb Callbacks) ClickResult {
	s.mu.Lock()
	if !s.state.CurrentGame.Started || s.state.GameCompleted || s.engine == nil {
		s.mu.Unlock()
		return ClickResult{WasRevealed: true}
	}

	completed := false
	wired := Callbacks{
		OnFlip: cb.OnFlip,
		OnMatch: func() {
			s.state.Hits++
			if cb.OnMatch != nil {
				cb.OnMatch()
			}
		},
		OnMismatch: func() {
			s.state.Misses++
			if cb.OnMismatch != nil {
				cb.OnMismatch()
			}
		},
		OnGameComplete: func() {
			s.state.GameCompleted = true
			s.stopTickerLocked()
			completed = true
			if cb.OnGameComplete != nil {
				cb.OnGameComplete()
			}
		},
	}
	res := s.engine.HandleClick(s.state.Cards, index, wired)
	listeners := append([]func(){}, s.completedListeners...)
	s.mu.Unlock()

	// Listeners run outside the lock so they may call back into the session.
	if completed {
		for _, fn := range listeners {
			fn()
		}
	}
	return res
}

// OnGameCompleted registers a completion listener. Listeners are invoked
// in registration order, once per completed game.
func (s *Session) OnGameCompleted(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completedListeners = append(s.completedListeners, fn)
}

// Accuracy returns hits/(hits+misses) as a percentage rounded to two
// decimals, or 0 before any attempt.
func (s *Session) Accuracy() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.state.Hits + s.state.Misses
	if total == 0 {
		return 0
	}
	return math.Round(float64(s.state.Hits)/float64(total)*100*100) / 100
}

// State returns a snapshot of the session aggregate. The card slice is
// shared with the live board.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ongoing reports whether a game is currently started.
func (s *Session) Ongoing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentGame.Started
}

// Cleanup cancels any outstanding timers. Safe to call repeatedly.
func (s *Session) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTickerLocked()
	if s.engine != nil {
		s.engine.Reset()
	}
}

func (s *Session) stopTickerLocked() {
	if s.tickCancel != nil {
		s.tickCancel()
		s.tickCancel = nil
	}
}
