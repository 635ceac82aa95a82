// internal/score/filedb.go
//
// Flat-file leaderboard backend: a JSON array of Score records at a
// fixed path. A corrupt file is backed up with a timestamped suffix and
// replaced with an empty array instead of taking the service down.
// A single mutex serializes every read-modify-write, so id assignment
// (max existing + 1) is safe within one process; concurrent processes
// sharing the file remain a known limitation of this backend.

package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// FileStore implements Store on a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store persisting to path. The file and its
// directory are created on first use.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Create validates in, assigns the next id, and appends the record.
func (f *FileStore) Create(ctx context.Context, in CreateInput) (Score, error) {
	in, err := in.normalize()
	if err != nil {
		return Score{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	scores, err := f.readScores()
	if err != nil {
		return Score{}, err
	}
	now := time.Now().UTC()
	sc := Score{
		ID:         nextID(scores),
		PlayerName: in.PlayerName,
		TimeSpent:  in.TimeSpent,
		Accuracy:   in.Accuracy,
		BoardSize:  in.BoardSize,
		CardType:   in.CardType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	scores = append(scores, sc)
	if err := f.writeScores(scores); err != nil {
		return Score{}, err
	}
	return sc, nil
}

// FindByID scans for id, returning ErrNotFound on a miss.
func (f *FileStore) FindByID(ctx context.Context, id int) (Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores, err := f.readScores()
	if err != nil {
		return Score{}, err
	}
	for _, sc := range scores {
		if sc.ID == id {
			return sc, nil
		}
	}
	return Score{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// List filters, orders by the ranking rule, and slices out the page.
func (f *FileStore) List(ctx context.Context, filter Filter, p Pagination) ([]Score, PageInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores, err := f.readScores()
	if err != nil {
		return nil, PageInfo{}, err
	}

	filtered := make([]Score, 0, len(scores))
	for _, sc := range scores {
		if filter.matches(sc) {
			filtered = append(filtered, sc)
		}
	}
	sortRanked(filtered)

	p = p.clamp()
	info := pageInfo(len(filtered), p)
	skip := (p.Page - 1) * p.Limit
	if skip >= len(filtered) {
		return []Score{}, info, nil
	}
	end := skip + p.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[skip:end], info, nil
}

// CountBetter counts same-cohort records ranking strictly better than
// the candidate under the same rule List sorts by.
func (f *FileStore) CountBetter(ctx context.Context, candidate CreateInput) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	scores, err := f.readScores()
	if err != nil {
		return 0, err
	}
	cand := Score{TimeSpent: candidate.TimeSpent, Accuracy: candidate.Accuracy}
	n := 0
	for _, sc := range scores {
		if sc.BoardSize != candidate.BoardSize || sc.CardType != candidate.CardType {
			continue
		}
		if Better(sc, cand) {
			n++
		}
	}
	return n, nil
}

// Close is a no-op for the file backend.
func (f *FileStore) Close() error { return nil }

// nextID is max(existing ids)+1, or 1 on an empty store.
func nextID(scores []Score) int {
	max := 0
	for _, sc := range scores {
		if sc.ID > max {
			max = sc.ID
		}
	}
	return max + 1
}

// readScores loads the array, creating the file when missing and
// recovering from corrupt contents. Caller holds f.mu.
func (f *FileStore) readScores() ([]Score, error) {
	if err := f.ensureExists(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	var scores []Score
	if err := json.Unmarshal(data, &scores); err != nil {
		log.Error().Err(err).Str("path", f.path).Msg("scores file corrupt, resetting")
		f.backupCorrupt()
		if err := f.writeScores([]Score{}); err != nil {
			return nil, err
		}
		return []Score{}, nil
	}
	return scores, nil
}

// writeScores replaces the file contents. Caller holds f.mu.
func (f *FileStore) writeScores(scores []Score) error {
	data, err := json.MarshalIndent(scores, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write scores: %w", err)
	}
	return nil
}

func (f *FileStore) ensureExists() error {
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if _, err := os.Stat(f.path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(f.path, []byte("[]"), 0o644); err != nil {
			return fmt.Errorf("init scores file: %w", err)
		}
	}
	return nil
}

// backupCorrupt copies the unreadable file aside before it is replaced.
func (f *FileStore) backupCorrupt() {
	ts := strings.NewReplacer(":", "-", ".", "-").
		Replace(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	backup := f.path + ".backup." + ts
	data, err := os.ReadFile(f.path)
	if err == nil {
		err = os.WriteFile(backup, data, 0o644)
	}
	if err != nil {
		log.Warn().Err(err).Str("path", backup).Msg("failed to back up corrupt scores file")
		return
	}
	log.Info().Str("path", backup).Msg("corrupt scores file backed up")
}
