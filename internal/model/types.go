// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig reports a session config rejected at construction.
var ErrInvalidConfig = errors.New("invalid session config")

// DefaultTopN bounds each leaderboard unless configured otherwise.
const DefaultTopN = 25

// SessionConfig defines how a typing session runs. Exactly one of
// TimedSeconds or WordCount must be set.
type SessionConfig struct {
	TimedSeconds int
	WordCount    int
	PunctProb    float64
	Numbers      bool
	WordList     string
	TopN         int
}

// Validate checks the config before a session is constructed.
func (c SessionConfig) Validate() error {
	timedSet := c.TimedSeconds != 0
	wordsSet := c.WordCount != 0
	if timedSet == wordsSet {
		return fmt.Errorf("%w: exactly one of timed seconds or word count must be set", ErrInvalidConfig)
	}
	if c.TimedSeconds < 0 {
		return fmt.Errorf("%w: timed seconds must be > 0", ErrInvalidConfig)
	}
	if c.WordCount < 0 {
		return fmt.Errorf("%w: word count must be > 0", ErrInvalidConfig)
	}
	if c.PunctProb < 0 || c.PunctProb > 1 {
		return fmt.Errorf("%w: punctuation probability must be between 0 and 1", ErrInvalidConfig)
	}
	if c.TopN < 0 {
		return fmt.Errorf("%w: top-n must be > 0", ErrInvalidConfig)
	}
	return nil
}

// ModeKind returns "timed" or "words".
func (c SessionConfig) ModeKind() string {
	if c.TimedSeconds > 0 {
		return "timed"
	}
	return "words"
}

// ModeKey returns the canonical leaderboard key for this config,
// e.g. timed-60-p50-n1 or words-50-p0-n0. Identical configs map to
// identical keys; p is the punctuation probability in percent.
func (c SessionConfig) ModeKey() string {
	base := fmt.Sprintf("words-%d", c.WordCount)
	if c.TimedSeconds > 0 {
		base = fmt.Sprintf("timed-%d", c.TimedSeconds)
	}
	p := int(c.PunctProb*100 + 0.5)
	n := 0
	if c.Numbers {
		n = 1
	}
	return fmt.Sprintf("%s-p%d-n%d", base, p, n)
}

// Limit returns the configured leaderboard bound or the default.
func (c SessionConfig) Limit() int {
	if c.TopN > 0 {
		return c.TopN
	}
	return DefaultTopN
}

// WordAttempt captures the outcome of one presented word.
type WordAttempt struct {
	Target       string
	Typed        string
	CorrectChars int
	Mismatches   int
	Omissions    int
	Extras       int
	StartedAt    time.Time
	EndedAt      time.Time
}

// ErrorChars returns the total classified errors for the word.
func (a WordAttempt) ErrorChars() int {
	return a.Mismatches + a.Omissions + a.Extras
}

// SessionResult is the immutable snapshot of a finished session.
type SessionResult struct {
	RawWPM       float64
	NetWPM       float64
	Accuracy     float64
	Consistency  float64
	Errors       int
	CharsTyped   int
	CorrectChars int
	Words        int
	ModeKey      string
	Elapsed      time.Duration
	Timestamp    time.Time
}

// HistoryRecord is a persisted session result with its row id.
type HistoryRecord struct {
	ID     int64
	Result SessionResult
}

// HistoryFilter selects session history for reporting.
type HistoryFilter struct {
	ModeKey string
	Since   *time.Time
	Last    int
}
