// Package highscore maintains ranked per-mode leaderboards in a JSON file.
package highscore

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/verte-zerg/typr/internal/model"
)

// Entry is one recorded highscore. Entries are never mutated after
// creation; boards only append and prune.
type Entry struct {
	NetWPM    float64   `json:"net_wpm"`
	RawWPM    float64   `json:"raw_wpm"`
	Accuracy  float64   `json:"accuracy"`
	Errors    int       `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}

// Decision reports the outcome of considering a session result.
type Decision struct {
	Accepted     bool
	PreviousBest *Entry
	Delta        float64
	HasPrevious  bool
}

// Store owns all leaderboards and is the sole writer of the persisted
// file. Single-process use only; every accepted Consider rewrites the
// whole file atomically.
type Store struct {
	path   string
	limit  int
	boards map[string][]Entry
}

// Open loads the highscore file at path. A missing file yields an empty
// store. An unreadable or unparsable file also yields a usable empty
// store, together with the error so the caller can log it.
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = model.DefaultTopN
	}
	s := &Store{path: path, limit: limit, boards: map[string][]Entry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read highscores: %w", err)
	}
	if err := json.Unmarshal(data, &s.boards); err != nil {
		s.boards = map[string][]Entry{}
		return s, fmt.Errorf("failed to parse highscores: %w", err)
	}
	for key := range s.boards {
		sortEntries(s.boards[key])
		if len(s.boards[key]) > s.limit {
			s.boards[key] = s.boards[key][:s.limit]
		}
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Consider decides whether a completed session result is worth
// recording. The first entry for a fresh mode key is always accepted;
// otherwise acceptance requires a strict net-WPM improvement over the
// current best. Accuracy alone never triggers a save.
// TODO: decide whether an accuracy improvement at equal net WPM should
// also qualify; for now it is rejected.
func (s *Store) Consider(result model.SessionResult) (Decision, error) {
	candidate := newEntry(result)
	board := s.boards[result.ModeKey]
	if len(board) == 0 {
		s.boards[result.ModeKey] = []Entry{candidate}
		return Decision{Accepted: true}, s.save()
	}

	best := board[0]
	decision := Decision{
		PreviousBest: &best,
		Delta:        round2(candidate.NetWPM - best.NetWPM),
		HasPrevious:  true,
	}
	if candidate.NetWPM <= best.NetWPM {
		return decision, nil
	}

	decision.Accepted = true
	board = append(board, candidate)
	sortEntries(board)
	if len(board) > s.limit {
		board = board[:s.limit]
	}
	s.boards[result.ModeKey] = board
	return decision, s.save()
}

// TopN returns up to n ranked entries for a mode key.
func (s *Store) TopN(modeKey string, n int) []Entry {
	board := s.boards[modeKey]
	if n <= 0 || n > len(board) {
		n = len(board)
	}
	out := make([]Entry, n)
	copy(out, board[:n])
	return out
}

// ModeKeys returns all mode keys with at least one entry, sorted.
func (s *Store) ModeKeys() []string {
	keys := make([]string, 0, len(s.boards))
	for key, board := range s.boards {
		if len(board) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// save rewrites the whole file via temp+rename so a crash mid-write
// cannot corrupt existing data.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create highscore dir: %w", err)
	}
	data, err := json.MarshalIndent(s.boards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode highscores: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "highscores-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp highscores: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write highscores: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close highscores: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write highscores: %w", err)
	}
	return nil
}

func newEntry(result model.SessionResult) Entry {
	ts := result.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return Entry{
		NetWPM:    round2(result.NetWPM),
		RawWPM:    round2(result.RawWPM),
		Accuracy:  round4(result.Accuracy),
		Errors:    result.Errors,
		Timestamp: ts.UTC(),
	}
}

// sortEntries orders a board best-first: net WPM descending, then
// accuracy descending, then timestamp ascending.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].NetWPM != entries[j].NetWPM {
			return entries[i].NetWPM > entries[j].NetWPM
		}
		if entries[i].Accuracy != entries[j].Accuracy {
			return entries[i].Accuracy > entries[j].Accuracy
		}
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
