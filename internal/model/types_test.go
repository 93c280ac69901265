package model

import (
	"errors"
	"testing"
)

func TestModeKey(t *testing.T) {
	cases := []struct {
		cfg  SessionConfig
		want string
	}{
		{SessionConfig{TimedSeconds: 60}, "timed-60-p0-n0"},
		{SessionConfig{TimedSeconds: 60, PunctProb: 0.5, Numbers: true}, "timed-60-p50-n1"},
		{SessionConfig{WordCount: 50, PunctProb: 0.1}, "words-50-p10-n0"},
		{SessionConfig{WordCount: 25, PunctProb: 1.0, Numbers: true}, "words-25-p100-n1"},
	}
	for _, tc := range cases {
		if got := tc.cfg.ModeKey(); got != tc.want {
			t.Fatalf("mode key for %+v: got %q, want %q", tc.cfg, got, tc.want)
		}
	}
}

func TestModeKeyDistinguishesConfigs(t *testing.T) {
	a := SessionConfig{TimedSeconds: 60, PunctProb: 0.5}
	b := SessionConfig{TimedSeconds: 60, PunctProb: 0.5, Numbers: true}
	c := SessionConfig{TimedSeconds: 30, PunctProb: 0.5}
	if a.ModeKey() == b.ModeKey() || a.ModeKey() == c.ModeKey() {
		t.Fatalf("distinct configs must not collide: %q %q %q", a.ModeKey(), b.ModeKey(), c.ModeKey())
	}
	if a.ModeKey() != (SessionConfig{TimedSeconds: 60, PunctProb: 0.5}).ModeKey() {
		t.Fatalf("identical configs must map to identical keys")
	}
}

func TestValidate(t *testing.T) {
	valid := []SessionConfig{
		{TimedSeconds: 60},
		{WordCount: 25, PunctProb: 1.0, Numbers: true, TopN: 10},
	}
	for _, cfg := range valid {
		if err := cfg.Validate(); err != nil {
			t.Fatalf("config %+v should be valid: %v", cfg, err)
		}
	}
	invalid := []SessionConfig{
		{},
		{TimedSeconds: 60, WordCount: 25},
		{TimedSeconds: -1},
		{WordCount: -1},
		{WordCount: 10, PunctProb: -0.1},
		{WordCount: 10, PunctProb: 1.1},
		{WordCount: 10, TopN: -1},
	}
	for _, cfg := range invalid {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("config %+v should be invalid, got %v", cfg, err)
		}
	}
}

func TestLimit(t *testing.T) {
	if got := (SessionConfig{WordCount: 10}).Limit(); got != DefaultTopN {
		t.Fatalf("expected default limit %d, got %d", DefaultTopN, got)
	}
	if got := (SessionConfig{WordCount: 10, TopN: 5}).Limit(); got != 5 {
		t.Fatalf("expected configured limit 5, got %d", got)
	}
}

func TestWordAttemptErrorChars(t *testing.T) {
	a := WordAttempt{Mismatches: 1, Omissions: 2, Extras: 3}
	if a.ErrorChars() != 6 {
		t.Fatalf("expected 6 error chars, got %d", a.ErrorChars())
	}
}
