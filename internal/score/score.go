// internal/score/score.go
//
// Score model, submission validation, and the ranking rule shared by
// every backend. Listing order and rank computation must never diverge,
// so both go through Better (or its SQL transliteration in the sqlite
// backend, kept in lockstep).

package score

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const maxPlayerNameLen = 50

var (
	// ErrInvalidScoreData is returned when a submission fails validation.
	ErrInvalidScoreData = errors.New("invalid score data")
	// ErrNotFound is returned by id lookups that match nothing.
	ErrNotFound = errors.New("score not found")
)

// Score is a persisted finished-session result. Immutable once created.
type Score struct {
	ID         int       `json:"id"`
	PlayerName string    `json:"playerName"`
	TimeSpent  float64   `json:"timeSpent"` // seconds
	Accuracy   float64   `json:"accuracy"`  // 0..1
	BoardSize  string    `json:"boardSize"`
	CardType   string    `json:"cardType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateInput is a score submission before validation and id assignment.
type CreateInput struct {
	PlayerName string  `json:"playerName"`
	TimeSpent  float64 `json:"timeSpent"`
	Accuracy   float64 `json:"accuracy"`
	BoardSize  string  `json:"boardSize"`
	CardType   string  `json:"cardType"`
}

// Filter narrows queries to a board-size/card-type cohort. Empty fields
// match everything.
type Filter struct {
	BoardSize string
	CardType  string
}

// Pagination selects a page of a listing. Non-positive values fall back
// to limit 10, page 1.
type Pagination struct {
	Limit int
	Page  int
}

// PageInfo is the listing metadata returned alongside a page.
type PageInfo struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// normalize validates a submission and applies the storage rounding:
// trimmed name capped at 50 chars, timeSpent to 2 decimals, accuracy to 4.
func (in CreateInput) normalize() (CreateInput, error) {
	in.PlayerName = strings.TrimSpace(in.PlayerName)
	if in.PlayerName == "" {
		return in, fmt.Errorf("%w: player name required", ErrInvalidScoreData)
	}
	if len(in.PlayerName) > maxPlayerNameLen {
		in.PlayerName = in.PlayerName[:maxPlayerNameLen]
	}
	if in.TimeSpent < 0 || math.IsNaN(in.TimeSpent) || math.IsInf(in.TimeSpent, 0) {
		return in, fmt.Errorf("%w: time spent must be >= 0", ErrInvalidScoreData)
	}
	if in.Accuracy < 0 || in.Accuracy > 1 || math.IsNaN(in.Accuracy) {
		return in, fmt.Errorf("%w: accuracy must be within [0,1]", ErrInvalidScoreData)
	}
	if in.BoardSize == "" {
		return in, fmt.Errorf("%w: board size required", ErrInvalidScoreData)
	}
	if in.CardType == "" {
		return in, fmt.Errorf("%w: card type required", ErrInvalidScoreData)
	}
	in.TimeSpent = math.Round(in.TimeSpent*100) / 100
	in.Accuracy = math.Round(in.Accuracy*10000) / 10000
	return in, nil
}

// Better reports whether a ranks strictly better than b within one
// cohort: faster time wins, equal times are resolved by higher accuracy.
// Equal on both is a tie.
func Better(a, b Score) bool {
	if a.TimeSpent != b.TimeSpent {
		return a.TimeSpent < b.TimeSpent
	}
	return a.Accuracy > b.Accuracy
}

// sortRanked orders scores best-first by the ranking rule; ties keep
// insertion (id) order.
func sortRanked(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool { return Better(scores[i], scores[j]) })
}

func (f Filter) matches(sc Score) bool {
	if f.BoardSize != "" && sc.BoardSize != f.BoardSize {
		return false
	}
	if f.CardType != "" && sc.CardType != f.CardType {
		return false
	}
	return true
}

// clamp fills pagination defaults.
func (p Pagination) clamp() Pagination {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	return p
}

func pageInfo(total int, p Pagination) PageInfo {
	return PageInfo{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: (total + p.Limit - 1) / p.Limit,
	}
}
