// internal/game/types.go
//
// Core type definitions for the memory game engine.
// Defines:
//   - Card: a single face-down/face-up card on the board.
//   - CardType: a static catalog entry naming the faces a theme offers.
//   - BoardSizeOption: a selectable rows×columns grid.

package game

// Card is one card on the board. Two cards sharing a Name form a pair.
// The generator always materializes the two halves of a pair as distinct
// instances, so revealing one never touches the other except through the
// engine's match rules.
type Card struct {
	Name     string `json:"name"`
	Revealed bool   `json:"revealed"`
}

// CardType is a static catalog entry; immutable at runtime.
// Cards must not contain duplicate names within one entry.
type CardType struct {
	Type   string   `json:"type"`
	Name   string   `json:"name"`
	NameNB string   `json:"name_nb"`
	Cards  []string `json:"cards"`
}

// BoardSizeOption describes a selectable board. Rows*Columns is always even;
// an odd cell count could never be fully paired.
type BoardSizeOption struct {
	ID      string `json:"id"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Name    string `json:"name"`
	NameNB  string `json:"name_nb"`
}

// Catalog maps a theme id (e.g. "animals") to its card set.
type Catalog map[string]CardType
