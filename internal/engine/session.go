// Package engine implements the typing session state machine.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/verte-zerg/typr/internal/metrics"
	"github.com/verte-zerg/typr/internal/model"
)

// ErrInvalidState reports an operation invoked in a state that forbids it.
var ErrInvalidState = errors.New("invalid session state")

// Clock supplies the current time. Sessions never read the wall clock
// directly so tests can drive timing deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// WordSource supplies the next target word. Timed sessions draw from it
// indefinitely; word-count sessions stop after the configured count.
type WordSource interface {
	Next() string
}

// State is a session lifecycle phase.
type State int

// Session states.
const (
	StatePending State = iota
	StateActive
	StateFinished
)

// Counters are the running aggregates owned by the session.
type Counters struct {
	CharsTyped   int
	CorrectChars int
	Errors       int
	WordsDone    int
}

// Session consumes submitted words against a target sequence and
// accumulates error and timing counters. It performs no I/O.
type Session struct {
	cfg    model.SessionConfig
	source WordSource
	clock  Clock

	state       State
	startedAt   time.Time
	wordShownAt time.Time

	target    string
	draft     string
	attempts  []model.WordAttempt
	counters  Counters
	durations []time.Duration

	completed bool
	result    model.SessionResult
	hasResult bool
}

// NewSession validates the config and constructs a pending session.
// The first target word is drawn immediately so it can be displayed
// before the timer starts.
func NewSession(cfg model.SessionConfig, source WordSource, clock Clock) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: word source is required", model.ErrInvalidConfig)
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Session{
		cfg:    cfg,
		source: source,
		clock:  clock,
		target: source.Next(),
	}, nil
}

// Start begins the session timer. Valid only once, from the pending state.
func (s *Session) Start() error {
	if s.state != StatePending {
		return fmt.Errorf("start: %w", ErrInvalidState)
	}
	now := s.clock.Now()
	s.state = StateActive
	s.startedAt = now
	s.wordShownAt = now
	return nil
}

// SetDraft records the in-progress input for the current word so a
// timeout can finalize a partially typed word. Valid only while active.
func (s *Session) SetDraft(typed string) error {
	if s.state != StateActive {
		return fmt.Errorf("set draft: %w", ErrInvalidState)
	}
	s.draft = typed
	return nil
}

// SubmitWord commits typed input against the current target, advances
// to the next word, and finishes the session when a word-count mode
// reaches its last word.
func (s *Session) SubmitWord(typed string) error {
	if s.state != StateActive {
		return fmt.Errorf("submit word: %w", ErrInvalidState)
	}
	now := s.clock.Now()
	s.commitWord(typed, now)
	s.draft = ""
	if s.cfg.WordCount > 0 && s.counters.WordsDone >= s.cfg.WordCount {
		s.finishAt(now)
		return nil
	}
	s.target = s.source.Next()
	s.wordShownAt = now
	return nil
}

// Tick checks timed-mode expiry and reports whether the session is
// finished. Before expiry it has no side effects and may be called
// repeatedly from a poll loop.
func (s *Session) Tick(now time.Time) bool {
	if s.state != StateActive {
		return s.state == StateFinished
	}
	if s.cfg.TimedSeconds > 0 && now.Sub(s.startedAt) >= time.Duration(s.cfg.TimedSeconds)*time.Second {
		s.finishAt(now)
		return true
	}
	return false
}

// Finish completes the session, finalizing any partially typed word.
// Idempotent once finished; invalid before Start.
func (s *Session) Finish() error {
	if s.state == StateFinished {
		return nil
	}
	if s.state != StateActive {
		return fmt.Errorf("finish: %w", ErrInvalidState)
	}
	s.finishAt(s.clock.Now())
	return nil
}

// Abort ends the session early without producing a result usable for
// highscore consideration.
func (s *Session) Abort() {
	if s.state == StateFinished {
		return
	}
	s.state = StateFinished
	s.completed = false
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Target returns the word currently expected.
func (s *Session) Target() string { return s.target }

// Counters returns a snapshot of the running aggregates.
func (s *Session) Counters() Counters { return s.counters }

// Attempts returns the finalized per-word outcomes so far.
func (s *Session) Attempts() []model.WordAttempt { return s.attempts }

// Elapsed reports time since Start, or zero before it.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	return now.Sub(s.startedAt)
}

// Remaining reports time left in a timed session, floored at zero.
func (s *Session) Remaining(now time.Time) time.Duration {
	if s.cfg.TimedSeconds <= 0 {
		return 0
	}
	left := time.Duration(s.cfg.TimedSeconds)*time.Second - s.Elapsed(now)
	if left < 0 {
		return 0
	}
	return left
}

// Result returns the final snapshot and whether the session completed
// normally. Aborted sessions report false.
func (s *Session) Result() (model.SessionResult, bool) {
	return s.result, s.hasResult && s.completed
}

func (s *Session) commitWord(typed string, now time.Time) {
	outcome := classifyWord(s.target, typed)
	s.attempts = append(s.attempts, model.WordAttempt{
		Target:       s.target,
		Typed:        typed,
		CorrectChars: outcome.correct,
		Mismatches:   outcome.mismatches,
		Omissions:    outcome.omissions,
		Extras:       outcome.extras,
		StartedAt:    s.wordShownAt,
		EndedAt:      now,
	})
	s.counters.CharsTyped += len([]rune(typed))
	s.counters.CorrectChars += outcome.correct
	s.counters.Errors += outcome.mismatches + outcome.omissions + outcome.extras
	s.counters.WordsDone++
	s.durations = append(s.durations, now.Sub(s.wordShownAt))
}

func (s *Session) finishAt(now time.Time) {
	if s.state == StateFinished {
		return
	}
	if s.draft != "" {
		s.commitWord(s.draft, now)
		s.draft = ""
	}
	s.state = StateFinished
	s.completed = true

	elapsed := now.Sub(s.startedAt)
	s.result = model.SessionResult{
		RawWPM:       metrics.RawWPM(s.counters.CharsTyped, elapsed),
		NetWPM:       metrics.NetWPM(s.counters.CorrectChars, s.counters.Errors, elapsed),
		Accuracy:     metrics.Accuracy(s.counters.CorrectChars, s.counters.CharsTyped),
		Consistency:  metrics.Consistency(s.durations),
		Errors:       s.counters.Errors,
		CharsTyped:   s.counters.CharsTyped,
		CorrectChars: s.counters.CorrectChars,
		Words:        s.counters.WordsDone,
		ModeKey:      s.cfg.ModeKey(),
		Elapsed:      elapsed,
		Timestamp:    now,
	}
	s.hasResult = true
}

type wordOutcome struct {
	correct    int
	mismatches int
	omissions  int
	extras     int
}

// classifyWord aligns typed against target and classifies every
// character as correct, mismatched, omitted, or extra via a minimal
// edit alignment. A skipped letter counts as a single omission instead
// of cascading mismatches; when nothing is skipped this reduces to a
// straight position-by-position comparison. A character is correct only
// when both present and equal; total errors equal the edit distance.
func classifyWord(target, typed string) wordOutcome {
	t := []rune(target)
	in := []rune(typed)
	n, m := len(t), len(in)

	type cell struct {
		cost int
		out  wordOutcome
	}
	prev := make([]cell, m+1)
	cur := make([]cell, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = cell{cost: j, out: wordOutcome{extras: j}}
	}
	for i := 1; i <= n; i++ {
		cur[0] = cell{cost: i, out: wordOutcome{omissions: i}}
		for j := 1; j <= m; j++ {
			diag := prev[j-1]
			if t[i-1] == in[j-1] {
				diag.out.correct++
			} else {
				diag.cost++
				diag.out.mismatches++
			}
			omit := prev[j]
			omit.cost++
			omit.out.omissions++
			extra := cur[j-1]
			extra.cost++
			extra.out.extras++

			// Ties keep the position-by-position reading, so a
			// transposition counts as mismatches, not skip+extra.
			best := diag
			if omit.cost < best.cost {
				best = omit
			}
			if extra.cost < best.cost {
				best = extra
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[m].out
}
