// internal/game/catalog.go
//
// Built-in card themes and board size options, plus lookup helpers.

package game

import "sort"

// boardSizeOptions lists the selectable grids, easiest first.
var boardSizeOptions = []BoardSizeOption{
	{ID: "2x2", Rows: 2, Columns: 2, Name: "Too easy", NameNB: "Altfor enkelt"},
	{ID: "2x3", Rows: 2, Columns: 3, Name: "Very easy", NameNB: "Veldig enkelt"},
	{ID: "3x4", Rows: 3, Columns: 4, Name: "Easy", NameNB: "Enkelt"},
	{ID: "4x4", Rows: 4, Columns: 4, Name: "Normal", NameNB: "Normal"},
	{ID: "4x5", Rows: 4, Columns: 5, Name: "Hard", NameNB: "Vanskelig"},
	{ID: "6x6", Rows: 6, Columns: 6, Name: "Expert", NameNB: "Ekspert"},
}

var defaultCatalog = Catalog{
	"animals": {
		Type:   "animals",
		Name:   "Animals",
		NameNB: "Dyr",
		Cards: []string{
			"Lion", "Tiger", "Elephant", "Giraffe", "Bear",
			"Zebra", "Panda", "Kangaroo", "Monkey", "Wolf",
			"Dog", "Cow", "Fish", "Horse", "Sheep", "Snake",
		},
	},
	"letters": {
		Type:   "letters",
		Name:   "Letters",
		NameNB: "Bokstaver",
		Cards: []string{
			"A", "B", "C", "D", "E", "F", "G", "H",
			"I", "J", "K", "L", "M", "N", "O", "P",
			"Q", "R", "S", "T", "U", "V",
		},
	},
}

// DefaultCatalog returns the built-in card themes.
func DefaultCatalog() Catalog { return defaultCatalog }

// BoardSizeOptions returns the selectable board sizes.
func BoardSizeOptions() []BoardSizeOption { return boardSizeOptions }

// BoardSizeByID looks up a board size option by id (e.g. "4x4").
func BoardSizeByID(id string) (BoardSizeOption, bool) {
	for _, opt := range boardSizeOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return BoardSizeOption{}, false
}

// Types returns the catalog entries sorted by theme id for stable output.
func (c Catalog) Types() []CardType {
	out := make([]CardType, 0, len(c))
	for _, ct := range c {
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
