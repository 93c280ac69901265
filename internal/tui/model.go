// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/engine"
	"github.com/verte-zerg/typr/internal/highscore"
	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/metrics"
	"github.com/verte-zerg/typr/internal/model"
)

const (
	tickInterval  = 200 * time.Millisecond
	upcomingWords = 12
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	summaryStyle     = lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	acceptedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorMsgStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type tickMsg time.Time

// lookahead buffers words drawn from a source so the UI can show
// upcoming targets without consuming them out of order.
type lookahead struct {
	src engine.WordSource
	buf []string
}

func (l *lookahead) Next() string {
	if len(l.buf) > 0 {
		word := l.buf[0]
		l.buf = l.buf[1:]
		return word
	}
	return l.src.Next()
}

func (l *lookahead) Peek(n int) []string {
	for len(l.buf) < n {
		l.buf = append(l.buf, l.src.Next())
	}
	return l.buf[:n]
}

// Model drives a typing session from user input.
type Model struct {
	cfg       model.SessionConfig
	scores    *highscore.Store
	hist      *history.Store
	newSource func() engine.WordSource

	session *engine.Session
	ahead   *lookahead
	draft   []rune

	width  int
	height int

	finished    bool
	aborted     bool
	result      model.SessionResult
	decision    highscore.Decision
	hasDecision bool
	saveErrs    []string
}

// NewModel constructs a typing session UI. newSource is invoked per
// session so a restart gets a fresh word sequence.
func NewModel(cfg model.SessionConfig, scores *highscore.Store, hist *history.Store, newSource func() engine.WordSource) (*Model, error) {
	m := &Model{
		cfg:       cfg,
		scores:    scores,
		hist:      hist,
		newSource: newSource,
	}
	if err := m.resetSession(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) resetSession() error {
	m.ahead = &lookahead{src: m.newSource()}
	session, err := engine.NewSession(m.cfg, m.ahead, engine.SystemClock())
	if err != nil {
		return err
	}
	m.session = session
	m.draft = nil
	m.finished = false
	m.aborted = false
	m.hasDecision = false
	m.saveErrs = nil
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if !m.finished && m.session.State() == engine.StateActive {
			if m.session.Tick(time.Time(msg)) {
				m.finalize()
			}
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finished {
		switch msg.String() {
		case "r":
			if err := m.resetSession(); err != nil {
				logErrf("failed to restart session: %v\n", err)
				return m, tea.Quit
			}
			return m, nil
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.session.Abort()
		m.aborted = true
		return m, tea.Quit
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
		return m, nil
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
		return m, nil
	case tea.KeyEnter:
		m.handleSubmit()
		return m, nil
	case tea.KeyRunes:
		m.handleRunes(msg.Runes)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleBackspace() {
	if len(m.draft) == 0 {
		return
	}
	m.draft = m.draft[:len(m.draft)-1]
	m.setDraft()
}

func (m *Model) handleSubmit() {
	if m.session.State() != engine.StateActive || len(m.draft) == 0 {
		return
	}
	if err := m.session.SubmitWord(string(m.draft)); err != nil {
		logErrf("failed to submit word: %v\n", err)
		return
	}
	m.draft = nil
	if m.session.State() == engine.StateFinished {
		m.finalize()
	}
}

func (m *Model) handleRunes(runes []rune) {
	if m.session.State() == engine.StatePending {
		if err := m.session.Start(); err != nil {
			logErrf("failed to start session: %v\n", err)
			return
		}
	}
	for _, r := range runes {
		if r == ' ' {
			// Chunked targets contain spaces; a space is input when the
			// target expects one at the cursor, a submit otherwise.
			target := []rune(m.session.Target())
			if len(m.draft) < len(target) && target[len(m.draft)] == ' ' {
				m.draft = append(m.draft, r)
				continue
			}
			m.handleSubmit()
			continue
		}
		m.draft = append(m.draft, r)
	}
	m.setDraft()
}

func (m *Model) setDraft() {
	if m.session.State() != engine.StateActive {
		return
	}
	if err := m.session.SetDraft(string(m.draft)); err != nil {
		logErrf("failed to record draft: %v\n", err)
	}
}

func (m *Model) finalize() {
	m.finished = true
	result, ok := m.session.Result()
	if !ok {
		return
	}
	m.result = result

	decision, err := m.scores.Consider(result)
	if err != nil {
		m.saveErrs = append(m.saveErrs, fmt.Sprintf("failed to save highscores: %v", err))
	}
	m.decision = decision
	m.hasDecision = true

	if m.hist != nil {
		if _, err := m.hist.InsertResult(context.Background(), result); err != nil {
			m.saveErrs = append(m.saveErrs, fmt.Sprintf("failed to save history: %v", err))
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return m.viewSummary()
	}
	return m.viewSession()
}

func (m *Model) viewSession() string {
	upcoming := m.upcoming()
	cells := buildLineCells(m.session.Target(), m.draft, upcoming)
	if m.width == 0 || m.height == 0 {
		return renderCells(cells)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapCells(cells, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) upcoming() []string {
	count := upcomingWords
	if m.cfg.WordCount > 0 {
		remaining := m.cfg.WordCount - m.session.Counters().WordsDone - 1
		if remaining < count {
			count = remaining
		}
	}
	if count <= 0 {
		return nil
	}
	return m.ahead.Peek(count)
}

func (m *Model) renderFooter() string {
	now := time.Now()
	counters := m.session.Counters()
	segments := make([]string, 0, 4)
	if m.cfg.TimedSeconds > 0 {
		segments = append(segments, fmt.Sprintf("%.0fs left", m.session.Remaining(now).Seconds()))
	} else {
		segments = append(segments, fmt.Sprintf("Word %d/%d", counters.WordsDone+1, m.cfg.WordCount))
	}
	if m.session.State() == engine.StateActive {
		elapsed := m.session.Elapsed(now)
		segments = append(segments,
			fmt.Sprintf("%.1f WPM", metrics.NetWPM(counters.CorrectChars, counters.Errors, elapsed)),
			fmt.Sprintf("%.1f%%", metrics.Accuracy(counters.CorrectChars, counters.CharsTyped)*100),
			fmt.Sprintf("%d errors", counters.Errors),
		)
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewSummary() string {
	lines := []string{
		fmt.Sprintf("Mode: %s  Elapsed: %.1fs", m.result.ModeKey, m.result.Elapsed.Seconds()),
		fmt.Sprintf("Raw WPM: %.2f  Net WPM: %.2f", m.result.RawWPM, m.result.NetWPM),
		fmt.Sprintf("Accuracy: %.2f%%  Consistency: %.2fs", m.result.Accuracy*100, m.result.Consistency),
		fmt.Sprintf("Errors: %d  Chars: %d  Words: %d", m.result.Errors, m.result.CharsTyped, m.result.Words),
	}
	if m.hasDecision {
		lines = append(lines, "", m.renderDecision())
	}
	for _, msg := range m.saveErrs {
		lines = append(lines, errorMsgStyle.Render(msg))
	}
	lines = append(lines, "", footerStyle.Render("r restart · q quit"))
	card := summaryStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}

func (m *Model) renderDecision() string {
	d := m.decision
	switch {
	case d.Accepted && !d.HasPrevious:
		return acceptedStyle.Render("First highscore recorded!")
	case d.Accepted:
		return acceptedStyle.Render(fmt.Sprintf("New best! +%.2f net WPM (previous %.2f)", d.Delta, d.PreviousBest.NetWPM))
	case d.HasPrevious:
		return footerStyle.Render(fmt.Sprintf("No improvement: best remains %.2f net WPM", d.PreviousBest.NetWPM))
	default:
		return ""
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
