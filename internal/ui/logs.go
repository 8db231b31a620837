package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/holocron/internal/logtail"
)

// logTailLimit caps how many entries the session log pane loads.
const logTailLimit = 200

// logState holds the session log pane.
type logState struct {
	open     bool
	entries  []logtail.Entry
	err      error
	loadedAt time.Time
	viewport viewport.Model
}

// logTailMsg carries the result of reading the log file.
type logTailMsg struct {
	entries []logtail.Entry
	err     error
	at      time.Time
}

func logTailCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logTailLimit)
		return logTailMsg{entries: entries, err: err, at: time.Now()}
	}
}

func (m *Model) handleLogTail(msg logTailMsg) {
	m.logs.entries = msg.entries
	m.logs.err = msg.err
	m.logs.loadedAt = msg.at
	m.updateLogViewport()
	m.logs.viewport.GotoBottom()
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logs.viewport.Width = m.width
	m.logs.viewport.Height = m.contentHeight()
	m.logs.viewport.SetContent(m.renderLogContent())
}

func (m Model) renderLogContent() string {
	styles := m.theme.Styles()
	switch {
	case m.logs.err != nil:
		return styles.Danger.Render("Log unavailable: " + m.logs.err.Error())
	case len(m.logs.entries) == 0:
		return styles.MutedText.Render("No log entries yet")
	}

	lines := make([]string, 0, len(m.logs.entries))
	for _, e := range m.logs.entries {
		lines = append(lines, m.colorizeLogLine(e, styles))
	}
	return strings.Join(lines, "\n")
}

func (m Model) colorizeLogLine(e logtail.Entry, styles Styles) string {
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	return m.levelStyle(level, styles).Render(formatLogEntry(e))
}

func (m Model) levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "ERROR":
		return styles.Danger
	case "WARN":
		return styles.Warning
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}

// renderLogs draws the session log pane in place of the card body.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	status := fmt.Sprintf("Session log  %d entries", len(m.logs.entries))
	if !m.logs.loadedAt.IsZero() {
		status += "  read " + m.logs.loadedAt.Format("15:04:05")
	}
	if m.logPath != "" {
		status += "  " + truncateMiddle(m.logPath, max(m.width-len(status)-2, 10))
	}
	return styles.FaintText.Render(status) + "\n" + m.logs.viewport.View()
}

func formatLogEntry(e logtail.Entry) string {
	if e.Level == "" && e.Time.IsZero() {
		return e.Message
	}
	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.In(time.Local).Format("2006-01-02 15:04:05")
	}
	level := strings.ToUpper(strings.TrimSpace(e.Level))
	if level == "" {
		level = "INFO"
	}
	parts := []string{ts, fmt.Sprintf("%-5s", level)}
	if id := shortCycleID(e.CycleID); id != "" {
		parts = append(parts, "["+id+"]")
	}
	header := strings.Join(parts, " ")
	if msg := strings.TrimSpace(e.Message); msg != "" {
		header += " – " + msg
	}

	keys := e.AttrKeys()
	if len(keys) == 0 {
		return header
	}
	var b strings.Builder
	b.WriteString(header)
	for _, k := range keys {
		v := strings.TrimSpace(e.Attrs[k])
		if v == "" {
			continue
		}
		b.WriteString("\n    - ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
	}
	return b.String()
}

// shortCycleID keeps the random tail of a v7 UUID, which is what differs
// between cycles started in the same millisecond.
func shortCycleID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
