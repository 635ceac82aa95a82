// internal/game/engine.go
//
// Two-flip match state machine for one board.
// Responsibilities:
//   - Track which flips are pending (0, 1 or 2 at a time).
//   - Decide match/mismatch on the second flip.
//   - Hide mismatched cards again after a fixed delay, on a cancellable
//     timer so a torn-down session can never be mutated late.
//
// The engine holds no counters; hit/miss accounting belongs to the
// session that wires the callbacks.

package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// mismatchHideDelay is how long a failed pair stays face-up.
const mismatchHideDelay = time.Second

// Callbacks are the optional handler slots an engine caller may wire.
// Absent slots are skipped; present ones fire synchronously during
// HandleClick, in flip → match/mismatch → complete order.
type Callbacks struct {
	OnFlip         func(*Card)
	OnMatch        func()
	OnMismatch     func()
	OnGameComplete func()
}

// ClickResult reports what a click did. WasRevealed marks a no-op click:
// the card was already face-up, two flips were pending, or the index was
// out of range. No-op clicks mutate nothing and fire no callbacks.
type ClickResult struct {
	Card        *Card `json:"card"`
	IsMatch     bool  `json:"isMatch"`
	WasRevealed bool  `json:"wasRevealed"`
}

// Engine runs the match state machine over a board's cards.
type Engine struct {
	clock quartz.Clock

	mu        sync.Mutex
	clicked   []int
	hideTimer *quartz.Timer
}

// NewEngine returns an engine scheduling its deferred work on clock.
func NewEngine(clock quartz.Clock) *Engine {
	return &Engine{clock: clock}
}

// HandleClick flips cards[index] and, on the second pending flip, resolves
// the pair. The returned IsMatch is synchronous; the mismatch hide is a
// deferred side effect. While two flips are pending every further click is
// a no-op, which is the only flip-blocking mechanism the engine needs.
func (e *Engine) HandleClick(cards []*Card, index int, cb Callbacks) ClickResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(cards) {
		return ClickResult{WasRevealed: true}
	}
	card := cards[index]
	if card.Revealed || len(e.clicked) == 2 {
		return ClickResult{Card: card, WasRevealed: true}
	}

	card.Revealed = true
	e.clicked = append(e.clicked, index)
	if cb.OnFlip != nil {
		cb.OnFlip(card)
	}

	if len(e.clicked) < 2 {
		return ClickResult{Card: card}
	}
	return ClickResult{Card: card, IsMatch: e.resolveMatch(cards, cb)}
}

// resolveMatch is only entered with exactly two pending flips, lock held.
func (e *Engine) resolveMatch(cards []*Card, cb Callbacks) bool {
	first, second := cards[e.clicked[0]], cards[e.clicked[1]]

	if first.Name == second.Name {
		e.clicked = e.clicked[:0]
		if cb.OnMatch != nil {
			cb.OnMatch()
		}
		if allRevealed(cards) && cb.OnGameComplete != nil {
			cb.OnGameComplete()
		}
		return true
	}

	if cb.OnMismatch != nil {
		cb.OnMismatch()
	}
	e.hideTimer = e.clock.AfterFunc(mismatchHideDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		first.Revealed = false
		second.Revealed = false
		e.clicked = e.clicked[:0]
	})
	return false
}

// Reset clears the pending flips without touching any Revealed flag and
// cancels a scheduled mismatch hide. Used on session teardown so a stale
// timer cannot reach into a new board.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.hideTimer != nil {
		e.hideTimer.Stop()
		e.hideTimer = nil
	}
	e.clicked = e.clicked[:0]
}

func allRevealed(cards []*Card) bool {
	for _, c := range cards {
		if !c.Revealed {
			return false
		}
	}
	return true
}
