package stats

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/typr/internal/highscore"
	"github.com/verte-zerg/typr/internal/model"
)

const terminalWidthBackup = 80

// RenderHistory prints a summary and moving-average curves for the
// given session records.
func RenderHistory(w io.Writer, records []model.HistoryRecord, window int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	s := Summarize(records)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", s.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg net WPM: %.2f\n", s.AvgNetWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best net WPM: %.2f\n", s.BestNetWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg raw WPM: %.2f\n", s.AvgRawWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg accuracy: %.2f%%\n", s.AvgAccuracy*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	width := TerminalWidth() - 12
	if width < 10 {
		width = 10
	}
	curves := []struct {
		name   string
		values []float64
	}{
		{"Net WPM ", NetWPMSeries(records)},
		{"Accuracy", AccuracySeries(records)},
	}
	for _, curve := range curves {
		values := Resample(MovingAverage(curve.values, window), width)
		if _, err := fmt.Fprintf(w, "%s %s\n", curve.name, Sparkline(values)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderScores prints ranked highscore tables, one per mode key.
func RenderScores(w io.Writer, store *highscore.Store, modeKey string, limit int) error {
	keys := store.ModeKeys()
	if modeKey != "" {
		keys = []string{modeKey}
	}
	if len(keys) == 0 {
		_, err := fmt.Fprintln(w, "No highscores yet.")
		return err
	}
	for _, key := range keys {
		entries := store.TopN(key, limit)
		if len(entries) == 0 {
			if _, err := fmt.Fprintf(w, "[%s]\nNo highscores yet.\n\n", key); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "[%s]\n", key); err != nil {
			return err
		}
		headers := []string{"#", "Net WPM", "Raw WPM", "Accuracy", "Errors", "When"}
		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				fmt.Sprintf("%.2f", e.NetWPM),
				fmt.Sprintf("%.2f", e.RawWPM),
				fmt.Sprintf("%.1f%%", e.Accuracy*100),
				fmt.Sprintf("%d", e.Errors),
				e.Timestamp.Local().Format(time.DateTime),
			})
		}
		rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true}
		for _, line := range formatTable(headers, rows, rightAlign) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth returns the stdout width or a fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// IsTerminal reports whether the writer is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
