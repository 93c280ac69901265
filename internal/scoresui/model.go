// Package scoresui provides the Bubble Tea highscore browser.
package scoresui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typr/internal/highscore"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Model implements the Bubble Tea highscore browser.
type Model struct {
	store *highscore.Store
	limit int

	keys   []string
	active int
	table  table.Model

	width  int
	height int
}

// NewModel constructs a highscore browser over the store's mode keys.
func NewModel(store *highscore.Store, limit int) *Model {
	m := &Model{
		store: store,
		limit: limit,
		keys:  store.ModeKeys(),
	}
	m.initTable()
	m.refreshRows()
	return m
}

func (m *Model) initTable() {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Net WPM", Width: 9},
		{Title: "Raw WPM", Width: 9},
		{Title: "Accuracy", Width: 9},
		{Title: "Errors", Width: 7},
		{Title: "When", Width: 20},
	}
	m.table = table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#4A4A4A"))
	m.table.SetStyles(styles)
}

func (m *Model) refreshRows() {
	if len(m.keys) == 0 {
		m.table.SetRows(nil)
		return
	}
	entries := m.store.TopN(m.keys[m.active], m.limit)
	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.2f", e.NetWPM),
			fmt.Sprintf("%.2f", e.RawWPM),
			fmt.Sprintf("%.1f%%", e.Accuracy*100),
			fmt.Sprintf("%d", e.Errors),
			e.Timestamp.Local().Format(time.DateTime),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := m.height - 6
		if height < 3 {
			height = 3
		}
		m.table.SetHeight(height)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			m.switchKey(-1)
			return m, nil
		case "right", "l", "tab":
			m.switchKey(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *Model) switchKey(delta int) {
	if len(m.keys) == 0 {
		return
	}
	m.active = (m.active + delta + len(m.keys)) % len(m.keys)
	m.refreshRows()
}

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.keys) == 0 {
		return emptyStyle.Render("No highscores yet.")
	}
	nav := make([]string, 0, len(m.keys))
	for i, key := range m.keys {
		style := inactiveNavStyle
		if i == m.active {
			style = activeNavStyle
		}
		nav = append(nav, style.Render(key))
	}
	navLine := lipgloss.JoinHorizontal(lipgloss.Center, nav...)
	help := headerStyle.Render("←/→ switch mode · ↑/↓ scroll · q quit")
	return strings.Join([]string{navLine, m.table.View(), help}, "\n")
}
