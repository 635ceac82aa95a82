// internal/score/sqlite.go
//
// Relational leaderboard backend over database/sql (sqlite in
// production). The ORDER BY and the CountBetter predicate are the SQL
// transliteration of Better; keep them in lockstep with score.go.
// Ids come from INTEGER PRIMARY KEY AUTOINCREMENT, preserving the
// monotonic-from-1 sequence the file backend exposes.

package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore implements Store on a scores table.
type SQLStore struct {
	db *sql.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore wraps an opened, migrated database handle.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const scoreColumns = `id, player_name, time_spent, accuracy, board_size, card_type, created_at, updated_at`

// Create validates in and inserts the record in one transaction.
func (s *SQLStore) Create(ctx context.Context, in CreateInput) (Score, error) {
	in, err := in.normalize()
	if err != nil {
		return Score{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Score{}, fmt.Errorf("begin insert score: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	ts := now.Format(time.RFC3339Nano)
	res, err := tx.ExecContext(ctx, `
        INSERT INTO scores (player_name, time_spent, accuracy, board_size, card_type, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?)`,
		in.PlayerName, in.TimeSpent, in.Accuracy, in.BoardSize, in.CardType, ts, ts,
	)
	if err != nil {
		return Score{}, fmt.Errorf("insert score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Score{}, fmt.Errorf("score id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Score{}, fmt.Errorf("commit score: %w", err)
	}

	return Score{
		ID:         int(id),
		PlayerName: in.PlayerName,
		TimeSpent:  in.TimeSpent,
		Accuracy:   in.Accuracy,
		BoardSize:  in.BoardSize,
		CardType:   in.CardType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// FindByID returns the record or ErrNotFound.
func (s *SQLStore) FindByID(ctx context.Context, id int) (Score, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+scoreColumns+` FROM scores WHERE id=?`, id)
	sc, err := scanScore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Score{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return sc, err
}

// List orders by the ranking rule (time ASC, accuracy DESC, id as the
// stable tiebreaker) and pages with LIMIT/OFFSET.
func (s *SQLStore) List(ctx context.Context, f Filter, p Pagination) ([]Score, PageInfo, error) {
	where, args := filterClause(f)
	p = p.clamp()

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM scores`+where, args...).Scan(&total); err != nil {
		return nil, PageInfo{}, fmt.Errorf("count scores: %w", err)
	}

	query := `SELECT ` + scoreColumns + ` FROM scores` + where +
		` ORDER BY time_spent ASC, accuracy DESC, id ASC LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, p.Limit, (p.Page-1)*p.Limit)...)
	if err != nil {
		return nil, PageInfo{}, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	out := make([]Score, 0, p.Limit)
	for rows.Next() {
		sc, err := scanScore(rows)
		if err != nil {
			return nil, PageInfo{}, err
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, PageInfo{}, fmt.Errorf("list scores: %w", err)
	}
	return out, pageInfo(total, p), nil
}

// CountBetter applies the ranking rule as a predicate within the cohort.
func (s *SQLStore) CountBetter(ctx context.Context, candidate CreateInput) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1) FROM scores
        WHERE board_size=? AND card_type=?
          AND (time_spent < ? OR (time_spent = ? AND accuracy > ?))`,
		candidate.BoardSize, candidate.CardType,
		candidate.TimeSpent, candidate.TimeSpent, candidate.Accuracy,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count better scores: %w", err)
	}
	return n, nil
}

// Close closes the underlying handle.
func (s *SQLStore) Close() error { return s.db.Close() }

func filterClause(f Filter) (string, []any) {
	var conds []string
	var args []any
	if f.BoardSize != "" {
		conds = append(conds, "board_size=?")
		args = append(args, f.BoardSize)
	}
	if f.CardType != "" {
		conds = append(conds, "card_type=?")
		args = append(args, f.CardType)
	}
	if len(conds) == 0 {
		return "", nil
	}
	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScore(row rowScanner) (Score, error) {
	var sc Score
	var created, updated string
	if err := row.Scan(&sc.ID, &sc.PlayerName, &sc.TimeSpent, &sc.Accuracy,
		&sc.BoardSize, &sc.CardType, &created, &updated); err != nil {
		return Score{}, err
	}
	sc.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sc.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return sc, nil
}
