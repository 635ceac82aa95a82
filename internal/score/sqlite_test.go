package score

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testSchema mirrors sql/001_scores.sql.
const testSchema = `
CREATE TABLE scores (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  player_name TEXT NOT NULL,
  time_spent REAL NOT NULL,
  accuracy REAL NOT NULL,
  board_size TEXT NOT NULL,
  card_type TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);`

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewSQLStore(db)
}

func TestSQLStoreCreateAndFind(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLStore(t)

	sc := mustCreate(t, st, input("Ada", 10.567, 0.98764))
	if sc.ID != 1 {
		t.Fatalf("first id = %d, want 1", sc.ID)
	}
	if sc.TimeSpent != 10.57 || sc.Accuracy != 0.9876 {
		t.Fatalf("rounding off: %+v", sc)
	}

	got, err := st.FindByID(ctx, sc.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.PlayerName != "Ada" || got.TimeSpent != 10.57 || got.CreatedAt.IsZero() {
		t.Fatalf("FindByID returned %+v", got)
	}

	if _, err := st.FindByID(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("FindByID(42) error = %v, want ErrNotFound", err)
	}

	if _, err := st.Create(ctx, input("", 1, 1)); !errors.Is(err, ErrInvalidScoreData) {
		t.Fatalf("Create error = %v, want ErrInvalidScoreData", err)
	}
}

func TestSQLStoreListOrderAndRankAgree(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLStore(t)

	inputs := []CreateInput{
		input("P1", 30, 0.8),
		input("P2", 10, 0.9),
		input("P3", 20, 1.0),
		input("P4", 10, 0.95),
	}
	ids := map[string]int{}
	for _, in := range inputs {
		ids[in.PlayerName] = mustCreate(t, st, in).ID
	}

	listed, info, err := st.List(ctx, Filter{BoardSize: "4x4", CardType: "animals"}, Pagination{Limit: 100, Page: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if info.Total != 4 {
		t.Fatalf("total = %d, want 4", info.Total)
	}
	wantOrder := []string{"P4", "P2", "P3", "P1"}
	for i, name := range wantOrder {
		if listed[i].PlayerName != name {
			t.Fatalf("position %d = %s, want %s", i+1, listed[i].PlayerName, name)
		}
	}

	for _, in := range inputs {
		n, err := st.CountBetter(ctx, in)
		if err != nil {
			t.Fatalf("CountBetter(%s): %v", in.PlayerName, err)
		}
		pos := -1
		for i, sc := range listed {
			if sc.ID == ids[in.PlayerName] {
				pos = i + 1
				break
			}
		}
		if pos != n+1 {
			t.Errorf("%s: list position %d, CountBetter+1 = %d", in.PlayerName, pos, n+1)
		}
	}
}

func TestSQLStoreFilterAndPagination(t *testing.T) {
	ctx := context.Background()
	st := newTestSQLStore(t)

	mustCreate(t, st, CreateInput{PlayerName: "A", TimeSpent: 30, Accuracy: 0.8, BoardSize: "4x4", CardType: "animals"})
	mustCreate(t, st, CreateInput{PlayerName: "B", TimeSpent: 10, Accuracy: 0.9, BoardSize: "4x4", CardType: "animals"})
	mustCreate(t, st, CreateInput{PlayerName: "C", TimeSpent: 5, Accuracy: 1.0, BoardSize: "2x2", CardType: "animals"})
	mustCreate(t, st, CreateInput{PlayerName: "D", TimeSpent: 8, Accuracy: 1.0, BoardSize: "4x4", CardType: "letters"})

	scores, info, err := st.List(ctx, Filter{BoardSize: "4x4", CardType: "animals"}, Pagination{Limit: 1, Page: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if info.Total != 2 || info.Pages != 2 {
		t.Fatalf("pagination = %+v", info)
	}
	if len(scores) != 1 || scores[0].PlayerName != "A" {
		t.Fatalf("page 2 = %+v", scores)
	}

	scores, info, err = st.List(ctx, Filter{}, Pagination{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if info.Total != 4 || len(scores) != 4 {
		t.Fatalf("unfiltered: info=%+v scores=%d", info, len(scores))
	}
}
