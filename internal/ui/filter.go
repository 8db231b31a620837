package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/holocron/internal/species"
)

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "name, classification or language"
	ti.CharLimit = 64
	return ti
}

// filterCards keeps cards whose name, classification, designation or
// language contains query, ignoring case. Order is preserved.
func filterCards(cards []species.Card, query string) []species.Card {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return cards
	}
	out := make([]species.Card, 0, len(cards))
	for _, c := range cards {
		haystack := strings.ToLower(strings.Join([]string{c.Name, c.Classification, c.Designation, c.Language}, "\x00"))
		if strings.Contains(haystack, query) {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) visibleCards() []species.Card {
	return filterCards(m.cards, m.query)
}

// handleFilterInput edits the filter while the input has focus. The list
// narrows as the user types; enter keeps the query and esc drops it.
func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.query = ""
		m.updateViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.query = m.filter.Value()
	m.updateViewport()
	m.viewport.GotoTop()
	return m, cmd
}
