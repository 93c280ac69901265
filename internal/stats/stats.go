// Package stats summarizes session history and renders reports.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/typr/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates stored sessions for reporting.
type Summary struct {
	Sessions    int
	AvgNetWPM   float64
	BestNetWPM  float64
	AvgRawWPM   float64
	AvgAccuracy float64
}

// Summarize computes aggregate figures over history records.
func Summarize(records []model.HistoryRecord) Summary {
	var s Summary
	s.Sessions = len(records)
	if s.Sessions == 0 {
		return s
	}
	for _, rec := range records {
		s.AvgNetWPM += rec.Result.NetWPM
		s.AvgRawWPM += rec.Result.RawWPM
		s.AvgAccuracy += rec.Result.Accuracy
		if rec.Result.NetWPM > s.BestNetWPM {
			s.BestNetWPM = rec.Result.NetWPM
		}
	}
	count := float64(s.Sessions)
	s.AvgNetWPM /= count
	s.AvgRawWPM /= count
	s.AvgAccuracy /= count
	return s
}

// NetWPMSeries extracts the net WPM values in stored order.
func NetWPMSeries(records []model.HistoryRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Result.NetWPM
	}
	return out
}

// AccuracySeries extracts accuracy percentages in stored order.
func AccuracySeries(records []model.HistoryRecord) []float64 {
	out := make([]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Result.Accuracy * 100
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Resample reduces or stretches a series to the given width so curves
// fit the terminal.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) <= width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		start := int(float64(i) * float64(len(values)) / float64(width))
		end := int(float64(i+1) * float64(len(values)) / float64(width))
		if end <= start {
			end = start + 1
		}
		if end > len(values) {
			end = len(values)
		}
		var sum float64
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}
