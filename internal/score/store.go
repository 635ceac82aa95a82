package score

import "context"

// Store is the leaderboard persistence contract. Implementations are
// interchangeable at startup (flat-file JSON, sqlite); callers must not
// branch on backend identity.
type Store interface {
	// Create validates and persists a submission, assigning the next id
	// (monotonic, starting at 1). Returns the stored record.
	Create(ctx context.Context, in CreateInput) (Score, error)

	// FindByID returns the record or ErrNotFound.
	FindByID(ctx context.Context, id int) (Score, error)

	// List returns the filtered records ordered best-first by the ranking
	// rule, sliced to the requested page, with pagination metadata.
	List(ctx context.Context, f Filter, p Pagination) ([]Score, PageInfo, error)

	// CountBetter counts records in the candidate's board-size/card-type
	// cohort that rank strictly better. Submission rank is count+1.
	CountBetter(ctx context.Context, candidate CreateInput) (int, error)

	// Close releases backend resources.
	Close() error
}
