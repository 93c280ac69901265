// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	s       string
	width   int
	isSpace bool
}

// buildLineCells renders the current target word against the draft
// input, followed by the upcoming words, as styled cells ready for
// wrapping. Extra draft characters beyond the target are shown as
// incorrect.
func buildLineCells(target string, draft []rune, upcoming []string) []cell {
	targetRunes := []rune(target)
	out := make([]cell, 0, len(targetRunes)+len(draft)+16)

	for i, tr := range targetRunes {
		displayed := tr
		style := currentWordStyle
		if i < len(draft) {
			if draft[i] == tr {
				style = correctStyle
			} else {
				style = incorrectStyle
			}
		} else if i == len(draft) {
			style = cursorStyle
		}
		out = append(out, styledCell(displayed, style))
	}
	for i := len(targetRunes); i < len(draft); i++ {
		out = append(out, styledCell(draft[i], incorrectStyle))
	}

	for _, word := range upcoming {
		out = append(out, spaceCell())
		for _, r := range word {
			out = append(out, styledCell(r, pendingStyle))
		}
	}
	return out
}

func styledCell(r rune, style lipgloss.Style) cell {
	return cell{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: r == ' ',
	}
}

func spaceCell() cell {
	return cell{s: " ", width: 1, isSpace: true}
}

func renderCells(cells []cell) string {
	var b strings.Builder
	for _, item := range cells {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapCells breaks styled cells into lines of at most the given display
// width, preferring to break at spaces.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		item := cells[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]cell{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func lineWidthOf(line []cell) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []cell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
