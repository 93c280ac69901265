// Package metrics computes speed and accuracy figures from session counters.
package metrics

import (
	"math"
	"time"
)

// charsPerWord is the conventional word length for WPM.
const charsPerWord = 5.0

// RawWPM computes gross words per minute from total characters typed.
func RawWPM(charsTyped int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	return (float64(charsTyped) / charsPerWord) / minutes
}

// NetWPM computes error-penalized words per minute, floored at zero.
func NetWPM(correctChars, errors int, elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	if minutes <= 0 {
		return 0
	}
	wpm := (float64(correctChars-errors) / charsPerWord) / minutes
	if wpm < 0 {
		return 0
	}
	return wpm
}

// Accuracy returns the fraction of typed characters that were correct.
func Accuracy(correctChars, charsTyped int) float64 {
	if charsTyped <= 0 {
		return 0
	}
	return float64(correctChars) / float64(charsTyped)
}

// Consistency returns the population standard deviation of per-word
// durations in seconds. Fewer than two words yields 0.
func Consistency(durations []time.Duration) float64 {
	if len(durations) < 2 {
		return 0
	}
	var sum float64
	for _, d := range durations {
		sum += d.Seconds()
	}
	mean := sum / float64(len(durations))
	var sq float64
	for _, d := range durations {
		diff := d.Seconds() - mean
		sq += diff * diff
	}
	return math.Sqrt(sq / float64(len(durations)))
}
