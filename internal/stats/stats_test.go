package stats

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typr/internal/highscore"
	"github.com/verte-zerg/typr/internal/model"
)

func record(netWPM, rawWPM, accuracy float64) model.HistoryRecord {
	return model.HistoryRecord{Result: model.SessionResult{
		NetWPM:   netWPM,
		RawWPM:   rawWPM,
		Accuracy: accuracy,
	}}
}

func TestSummarize(t *testing.T) {
	records := []model.HistoryRecord{
		record(40, 44, 0.90),
		record(50, 54, 0.95),
		record(60, 64, 1.00),
	}
	s := Summarize(records)
	if s.Sessions != 3 {
		t.Fatalf("expected 3 sessions, got %d", s.Sessions)
	}
	if s.AvgNetWPM != 50 || s.AvgRawWPM != 54 {
		t.Fatalf("unexpected averages: %+v", s)
	}
	if s.BestNetWPM != 60 {
		t.Fatalf("expected best 60, got %v", s.BestNetWPM)
	}
	if math.Abs(s.AvgAccuracy-0.95) > 1e-9 {
		t.Fatalf("expected avg accuracy 0.95, got %v", s.AvgAccuracy)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Sessions != 0 || s.AvgNetWPM != 0 || s.BestNetWPM != 0 {
		t.Fatalf("empty summary must be zero: %+v", s)
	}
}

func TestSeriesExtraction(t *testing.T) {
	records := []model.HistoryRecord{
		record(40, 44, 0.90),
		record(50, 54, 0.95),
	}
	net := NetWPMSeries(records)
	if len(net) != 2 || net[0] != 40 || net[1] != 50 {
		t.Fatalf("unexpected net series: %v", net)
	}
	acc := AccuracySeries(records)
	if len(acc) != 2 || acc[0] != 90 || acc[1] != 95 {
		t.Fatalf("unexpected accuracy series: %v", acc)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{10, 20, 30, 40}
	got := MovingAverage(values, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	// Window of one is the identity.
	same := MovingAverage(values, 1)
	for i := range values {
		if same[i] != values[i] {
			t.Fatalf("window 1 must copy values: %v", same)
		}
	}
}

func TestSparkline(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatalf("empty input must produce empty sparkline")
	}
	line := Sparkline([]float64{0, 5, 10})
	if len(line) != 3 {
		t.Fatalf("expected 3 cells, got %q", line)
	}
	if line[0] != sparkChars[0] || line[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("min and max must map to the extremes: %q", line)
	}
	flat := Sparkline([]float64{7, 7, 7})
	if len(flat) != 3 || flat[0] != flat[1] || flat[1] != flat[2] {
		t.Fatalf("flat series must render a uniform line: %q", flat)
	}
}

func TestResample(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	down := Resample(values, 3)
	want := []float64{1.5, 3.5, 5.5}
	if len(down) != 3 {
		t.Fatalf("expected 3 buckets, got %v", down)
	}
	for i := range want {
		if math.Abs(down[i]-want[i]) > 1e-9 {
			t.Fatalf("bucket %d: got %v, want %v", i, down[i], want[i])
		}
	}
	// Narrower input is returned unchanged.
	same := Resample([]float64{1, 2}, 10)
	if len(same) != 2 || same[0] != 1 || same[1] != 2 {
		t.Fatalf("short input must pass through: %v", same)
	}
	if Resample(nil, 10) != nil {
		t.Fatalf("nil input must yield nil")
	}
}

func TestFormatTableAlignment(t *testing.T) {
	headers := []string{"#", "Name"}
	rows := [][]string{
		{"1", "short"},
		{"10", "a longer value"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true})
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %v", lines)
	}
	if !strings.HasPrefix(lines[1], " 1 ") {
		t.Fatalf("numeric column must be right aligned: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "10 ") {
		t.Fatalf("widest cell sets the column width: %q", lines[2])
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil, 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderHistorySummary(t *testing.T) {
	records := []model.HistoryRecord{
		record(40, 44, 0.90),
		record(50, 54, 0.95),
	}
	var buf bytes.Buffer
	if err := RenderHistory(&buf, records, 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Avg net WPM: 45.00", "Best net WPM: 50.00", "Net WPM", "Accuracy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScores(t *testing.T) {
	store, err := highscore.Open(filepath.Join(t.TempDir(), "highscores.json"), 25)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	result := model.SessionResult{
		NetWPM:    48.35,
		RawWPM:    52.0,
		Accuracy:  0.9612,
		Errors:    4,
		ModeKey:   "timed-60-p0-n0",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if _, err := store.Consider(result); err != nil {
		t.Fatalf("consider: %v", err)
	}

	var buf bytes.Buffer
	if err := RenderScores(&buf, store, "", 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[timed-60-p0-n0]", "Net WPM", "48.35", "96.1%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScoresEmpty(t *testing.T) {
	store, err := highscore.Open(filepath.Join(t.TempDir(), "highscores.json"), 25)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderScores(&buf, store, "", 10); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No highscores yet.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
