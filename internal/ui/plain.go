package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/five82/holocron/internal/species"
	"github.com/five82/holocron/internal/state"
)

// RenderPlain writes st as unstyled text, for pipes and non-interactive runs.
func RenderPlain(w io.Writer, title string, st state.LoadState) error {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	switch bodyFor(st) {
	case bodyError:
		b.WriteString("\n" + errorMessage + "\n")
	case bodyLoading:
		b.WriteString("\n" + loadingMessage + "\n")
	case bodyCards:
		for _, c := range species.Cards(st.Species) {
			b.WriteString("\n")
			b.WriteString(c.Name)
			b.WriteString("\n")
			for _, f := range cardFields(c) {
				fmt.Fprintf(&b, "  %-*s %s\n", labelWidth, f.label+":", f.value)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
