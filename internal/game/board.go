// internal/game/board.go
//
// Board generation: parse the requested size, pick pairs from the theme,
// and lay them out in random order.

package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var (
	// ErrInvalidBoardSize covers malformed size ids and odd cell counts.
	ErrInvalidBoardSize = errors.New("invalid board size")
	// ErrUnknownCardType is returned when the theme is not in the catalog.
	ErrUnknownCardType = errors.New("unknown card type")
	// ErrInsufficientCards is returned when a theme has fewer than two names.
	ErrInsufficientCards = errors.New("insufficient cards")
)

// parseBoardSize parses "<rows>x<columns>" into positive dimensions.
func parseBoardSize(sizeID string) (rows, cols int, err error) {
	parts := strings.Split(sizeID, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidBoardSize, sizeID)
	}
	rows, err = strconv.Atoi(parts[0])
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidBoardSize, sizeID)
	}
	cols, err = strconv.Atoi(parts[1])
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidBoardSize, sizeID)
	}
	return rows, cols, nil
}

// Generate builds a shuffled board of card pairs for the given theme and size.
//
// Pair names are selected without replacement by shuffling the theme's names
// and taking the first rows*cols/2. A theme with at least two names but fewer
// than the board needs degrades to a smaller board using every available name
// as a pair; that is policy, not an error. Each pair is materialized as two
// independent Card instances.
func Generate(rng *rand.Rand, themeID, sizeID string, catalog Catalog) ([]*Card, error) {
	rows, cols, err := parseBoardSize(sizeID)
	if err != nil {
		return nil, err
	}
	total := rows * cols
	if total%2 != 0 {
		return nil, fmt.Errorf("%w: %d cards cannot be paired", ErrInvalidBoardSize, total)
	}

	theme, ok := catalog[themeID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCardType, themeID)
	}
	if len(theme.Cards) < 2 {
		return nil, fmt.Errorf("%w: theme %q has %d names", ErrInsufficientCards, themeID, len(theme.Cards))
	}

	pairs := total / 2
	if len(theme.Cards) < pairs {
		// Shortfall fallback: a smaller board beats no board.
		pairs = len(theme.Cards)
	}

	selected := Shuffle(rng, theme.Cards)[:pairs]
	cards := make([]*Card, 0, pairs*2)
	for _, name := range selected {
		cards = append(cards, &Card{Name: name}, &Card{Name: name})
	}
	return Shuffle(rng, cards), nil
}
