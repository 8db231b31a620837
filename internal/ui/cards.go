package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/holocron/internal/prefs"
	"github.com/five82/holocron/internal/species"
	"github.com/five82/holocron/internal/state"
)

// body is what the main area shows for a given LoadState.
type body int

const (
	bodyEmpty body = iota
	bodyLoading
	bodyCards
	bodyError
)

// bodyFor picks the main area content. An error wins over cards, cards win
// over the loading line.
func bodyFor(st state.LoadState) body {
	switch {
	case st.HasError:
		return bodyError
	case len(st.Species) > 0:
		return bodyCards
	case st.IsLoading:
		return bodyLoading
	default:
		return bodyEmpty
	}
}

type cardField struct {
	label string
	value string
}

const labelWidth = 16

func cardFields(c species.Card) []cardField {
	image := c.Image
	if !c.HasImage {
		image = noImageLabel
	}
	return []cardField{
		{"Classification", orDash(c.Classification)},
		{"Designation", orDash(c.Designation)},
		{"Height", c.Height},
		{"Films", strconv.Itoa(c.NumFilms)},
		{"Language", orDash(c.Language)},
		{"Image", image},
	}
}

// renderCard draws one bordered card whose outer width is width.
func renderCard(c species.Card, width int, styles Styles) string {
	inner := width - 4 // border + horizontal padding
	if inner < labelWidth+4 {
		inner = labelWidth + 4
	}
	valueWidth := inner - labelWidth

	lines := make([]string, 0, 8)
	lines = append(lines, styles.CardName.Render(truncate(c.Name, inner)))
	for _, f := range cardFields(c) {
		label := styles.CardLabel.Width(labelWidth).Render(f.label)
		var value string
		switch {
		case f.label == "Height":
			value = styles.Height.Render(truncate(f.value, valueWidth))
		case f.label == "Image" && c.HasImage:
			value = styles.Link.Render(truncateMiddle(f.value, valueWidth))
		case f.label == "Image":
			value = styles.FaintText.Render(f.value)
		default:
			value = styles.CardValue.Render(truncate(f.value, valueWidth))
		}
		lines = append(lines, label+value)
	}
	return styles.Card.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// renderCardGrid lays cards out in as many columns as width allows, or one
// column in list layout.
func renderCardGrid(cards []species.Card, width int, layout string, styles Styles) string {
	if len(cards) == 0 {
		return ""
	}

	if layout == prefs.LayoutList || width < LayoutCompactWidth {
		w := min(width, ListMaxWidth)
		if w < labelWidth+8 {
			w = labelWidth + 8
		}
		rendered := make([]string, len(cards))
		for i, c := range cards {
			rendered[i] = renderCard(c, w, styles)
		}
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}

	cols := max((width+CardGap)/(CardWidth+CardGap), 1)
	gap := strings.Repeat(" ", CardGap)
	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		parts := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				parts = append(parts, gap)
			}
			parts = append(parts, renderCard(cards[i], CardWidth, styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
