package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/holocron/internal/logging"
	"github.com/five82/holocron/internal/prefs"
	"github.com/five82/holocron/internal/species"
	"github.com/five82/holocron/internal/state"
)

// LoadFunc runs one load cycle and returns the settled state.
type LoadFunc func(ctx context.Context) state.LoadState

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Load      LoadFunc
	Title     string
	ThemeName string
	Layout    string
	PrefsPath string
	LogPath   string
	Logger    *logging.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	load      LoadFunc
	title     string
	prefsPath string
	logPath   string
	logger    *logging.Logger

	// UI state
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	theme    Theme
	layout   string
	width    int
	height   int
	ready    bool
	showHelp bool

	filter    textinput.Model
	filtering bool
	query     string

	logs logState

	// Data state
	snapshot state.LoadState
	cards    []species.Card
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Defaults().Theme
	}

	layout := opts.Layout
	if layout != prefs.LayoutList {
		layout = prefs.LayoutGrid
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		load:      opts.Load,
		title:     opts.Title,
		prefsPath: prefsPath,
		logPath:   opts.LogPath,
		logger:    logger,
		keys:      DefaultKeyMap(),
		filter:    newFilterInput(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		theme:     GetTheme(themeName),
		layout:    layout,
	}
	if m.store != nil {
		m.setSnapshot(m.store.Snapshot())
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model. It starts the one load cycle of the session.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.load != nil {
		cmds = append(cmds, loadCmd(m.ctx, m.load))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, m.contentHeight())
			m.viewport.Style = lipgloss.NewStyle()
			m.logs.viewport = viewport.New(m.width, m.contentHeight())
		}
		m.ready = true
		m.help.Width = m.width
		m.filter.Width = max(m.width-4, 10)
		m.updateViewport()
		m.updateLogViewport()
		return m, nil

	case stateMsg:
		m.setSnapshot(state.LoadState(msg))
		m.updateViewport()
		return m, nil

	case loadDoneMsg:
		m.setSnapshot(state.LoadState(msg))
		m.updateViewport()
		if m.logs.open {
			return m, logTailCmd(m.logPath)
		}
		return m, nil

	case logTailMsg:
		m.handleLogTail(msg)
		return m, nil

	case spinner.TickMsg:
		if m.snapshot.Settled() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if m.logs.open {
		b.WriteString(m.renderLogs())
	} else {
		b.WriteString(m.renderBody())
	}
	b.WriteString("\n")
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	header := styles.Title.Render(m.title)
	if q := strings.TrimSpace(m.query); q != "" && !m.logs.open {
		status := fmt.Sprintf("  /%s  %d of %d", q, len(m.visibleCards()), len(m.cards))
		header += styles.Accent.Render(status)
	}
	return header
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	var content string
	switch bodyFor(m.snapshot) {
	case bodyError:
		content = styles.Danger.Render(errorMessage)
	case bodyCards:
		return m.viewport.View()
	case bodyLoading:
		content = m.spinner.View() + " " + styles.MutedText.Render(loadingMessage)
	}
	return lipgloss.NewStyle().Height(height).Render(content)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterInput(msg)
	}
	if m.showHelp {
		// Any key closes help, but quit still quits.
		m.showHelp = false
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.updateViewport()
		m.updateLogViewport()
		m.savePrefs()
	case key.Matches(msg, m.keys.ToggleLayout):
		if m.layout == prefs.LayoutList {
			m.layout = prefs.LayoutGrid
		} else {
			m.layout = prefs.LayoutList
		}
		m.updateViewport()
		m.savePrefs()
	case key.Matches(msg, m.keys.ToggleLogs):
		m.logs.open = !m.logs.open
		if m.logs.open {
			return m, logTailCmd(m.logPath)
		}
	case key.Matches(msg, m.keys.Filter):
		if m.logs.open {
			return m, nil
		}
		m.filtering = true
		m.filter.SetValue(m.query)
		m.filter.CursorEnd()
		return m, m.filter.Focus()
	case key.Matches(msg, m.keys.ClearFilter):
		if m.query != "" {
			m.query = ""
			m.filter.Reset()
			m.updateViewport()
		}
	default:
		m.scroll(msg, m.activeViewport())
	}
	return m, nil
}

func (m *Model) activeViewport() *viewport.Model {
	if m.logs.open {
		return &m.logs.viewport
	}
	return &m.viewport
}

func (m Model) scroll(msg tea.KeyMsg, vp *viewport.Model) {
	switch {
	case key.Matches(msg, m.keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, m.keys.PageUp):
		vp.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		vp.PageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfPageUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfPageDown()
	}
}

func (m *Model) setSnapshot(st state.LoadState) {
	m.snapshot = st
	m.cards = species.Cards(st.Species)
}

func (m *Model) contentHeight() int {
	return max(m.height-headerHeight-footerHeight-1, 1)
}

func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.width
	m.viewport.Height = m.contentHeight()
	styles := m.theme.Styles()
	visible := m.visibleCards()
	if len(visible) == 0 && len(m.cards) > 0 {
		m.viewport.SetContent(styles.MutedText.Render(noMatchesMessage))
		return
	}
	m.viewport.SetContent(renderCardGrid(visible, m.width, m.layout, styles))
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.Accent
	m.help.Styles.ShortKey = styles.Key
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.filter.PromptStyle = styles.Accent
	m.filter.TextStyle = styles.Text
	m.filter.PlaceholderStyle = styles.FaintText
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Layout: m.layout}); err != nil {
		m.logger.Warn("save prefs failed", "error", err, "path", m.prefsPath)
	}
}

// Messages

// stateMsg carries a store transition pushed by a subscriber.
type stateMsg state.LoadState

// loadDoneMsg carries the settled state returned by the load effect.
type loadDoneMsg state.LoadState

// Commands

func loadCmd(ctx context.Context, load LoadFunc) tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg(load(ctx))
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	if opts.Store != nil {
		opts.Store.Subscribe(func(st state.LoadState) {
			p.Send(stateMsg(st))
		})
	}
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
