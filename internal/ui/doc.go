// Package ui renders holocron's species cards in the terminal.
//
// # Architecture Overview
//
// The interactive view is a Bubble Tea program (Model, Update, View) styled
// with lipgloss. The same card fields also render as plain text through
// RenderPlain for pipes and --plain runs.
//
// # Package Structure
//
//   - app.go: Model, message handling, key dispatch, and Run
//   - cards.go: body selection and card/grid rendering
//   - plain.go: unstyled output
//   - filter.go: name/classification/language filter
//   - logs.go: session log pane backed by package logtail
//   - help.go: help overlay built from the key map
//   - keys.go: key bindings
//   - theme.go: color palettes and derived styles
//   - layout.go, strings.go: geometry, status lines, truncation helpers
//
// # Body Precedence
//
// The main area shows exactly one thing, chosen by bodyFor:
//
//  1. the error line when the load failed
//  2. the cards when species are present
//  3. the loading line while a load is in flight
//  4. nothing before the first load starts
//
// The error line never includes the underlying cause; details go to the
// log file, viewable with the l key.
//
// # Data Flow
//
//	Init ──loadCmd──> LoadFunc (package app) ──> store.Dispatch
//	                                               │
//	store subscriber ──p.Send(stateMsg)────────────┘
//	                       │
//	                    Update ──> setSnapshot ──> cards ──> viewport
//
// The Model never writes to the store. It receives each transition as a
// stateMsg and the settled result as a loadDoneMsg.
//
// # Key Bindings
//
//	j/k, g/G, pgup/pgdown, ctrl+u/ctrl+d   scroll
//	/  filter      esc  clear filter
//	l  session log L    grid/list layout
//	T  theme       h/?  help          q  quit
//
// Theme and layout changes are saved to the prefs file immediately.
//
// # Layout
//
// Grid layout fits as many CardWidth columns as the terminal allows and
// drops to a single column below LayoutCompactWidth. List layout always
// uses one column capped at ListMaxWidth.
package ui
