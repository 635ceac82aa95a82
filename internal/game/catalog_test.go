package game

import "testing"

func TestBoardSizeByID(t *testing.T) {
	opt, ok := BoardSizeByID("4x4")
	if !ok || opt.Rows != 4 || opt.Columns != 4 {
		t.Fatalf("BoardSizeByID(4x4) = %+v, %v", opt, ok)
	}
	if _, ok := BoardSizeByID("9x9"); ok {
		t.Fatal("BoardSizeByID(9x9) should not exist")
	}
}

func TestBoardSizeOptionsAreAllPairable(t *testing.T) {
	for _, opt := range BoardSizeOptions() {
		if opt.Rows*opt.Columns%2 != 0 {
			t.Errorf("option %s has odd cell count %d", opt.ID, opt.Rows*opt.Columns)
		}
	}
}

func TestCatalogTypesSortedAndUnique(t *testing.T) {
	types := DefaultCatalog().Types()
	if len(types) != 2 || types[0].Type != "animals" || types[1].Type != "letters" {
		t.Fatalf("Types() = %+v", types)
	}
	// Pair uniqueness depends on no duplicate names within an entry.
	for _, ct := range types {
		seen := map[string]bool{}
		for _, name := range ct.Cards {
			if seen[name] {
				t.Errorf("theme %s repeats name %q", ct.Type, name)
			}
			seen[name] = true
		}
	}
}
