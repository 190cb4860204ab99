// Package tui is a terminal reader for the research site. It drives the
// same navigation state, page resolver and anchor scroller as the web
// pages.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/yacademy/researchsite/internal/anchor"
	"github.com/yacademy/researchsite/internal/content"
	"github.com/yacademy/researchsite/internal/nav"
	"github.com/yacademy/researchsite/internal/search"
	"github.com/yacademy/researchsite/internal/view"
)

const (
	sidebarWidth = 32
	tocWidth     = 34
	// header, search line and footer
	chromeHeight = 3
	maxResults   = 8
)

// Options configures the reader.
type Options struct {
	// Scroll timings. HeaderOffset is in lines.
	Scroll anchor.Config
	// NarrowWidth is the terminal width below which the sidebar becomes an
	// overlay that closes on selection.
	NarrowWidth int
	Logger      *zap.Logger
}

// DefaultOptions returns the browser timings with a one-line header offset.
func DefaultOptions() Options {
	cfg := anchor.DefaultConfig()
	cfg.HeaderOffset = 1
	return Options{Scroll: cfg, NarrowWidth: 100}
}

type anchorBeginMsg struct {
	fragment string
	initial  bool
}

type anchorAttemptMsg struct{ token anchor.Token }

// Model is the bubbletea model of the reader.
type Model struct {
	sec      *view.Section
	state    *nav.State
	page     *view.Page
	rendered Rendered
	scroller *anchor.Scroller
	opts     Options
	logger   *zap.Logger

	// ready is set by the first WindowSizeMsg. Nothing is laid out or
	// scrolled before the terminal size is known.
	ready       bool
	width       int
	height      int
	viewport    viewport.Model
	input       textinput.Model
	results     []search.Result
	resultIdx   int
	cursor      int
	tocIdx      int
	pendingHash string
}

// New creates a reader opened on page id. A non-empty hash is scrolled to
// once the terminal size is known.
func New(sec *view.Section, id, hash string, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Scroll == (anchor.Config{}) {
		opts.Scroll = DefaultOptions().Scroll
	}
	if opts.NarrowWidth <= 0 {
		opts.NarrowWidth = DefaultOptions().NarrowWidth
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search docs... (press /)"
	input.CharLimit = 200

	m := &Model{
		sec:         sec,
		state:       sec.NewState(""),
		opts:        opts,
		logger:      opts.Logger,
		input:       input,
		pendingHash: strings.TrimPrefix(hash, "#"),
	}
	m.scroller = anchor.NewScroller(opts.Scroll, pages{m}, opts.Logger)
	m.open(id)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// State returns the navigation state.
func (m *Model) State() *nav.State { return m.state }

// Page returns the page on screen.
func (m *Model) Page() *view.Page { return m.page }

// Scroller returns the anchor scroller.
func (m *Model) Scroller() *anchor.Scroller { return m.scroller }

// Ready reports whether the terminal size is known.
func (m *Model) Ready() bool { return m.ready }

// YOffset returns the first visible content line.
func (m *Model) YOffset() int { return m.viewport.YOffset }

func (m *Model) narrow() bool { return m.width < m.opts.NarrowWidth }

// sidebarVisible reports whether the sidebar takes screen space. On wide
// terminals it is always shown; on narrow ones it is an overlay.
func (m *Model) sidebarVisible() bool { return !m.narrow() || m.state.SidebarOpen }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m, m.resize(msg.Width, msg.Height)

	case anchorBeginMsg:
		return m, m.beginAnchor(msg.fragment, msg.initial)

	case anchorAttemptMsg:
		return m, m.attemptAnchor(msg.token)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) tea.Cmd {
	first := !m.ready
	m.width, m.height = width, height
	if first {
		m.viewport = viewport.New(m.contentWidth(), m.contentHeight())
		m.ready = true
	} else {
		m.viewport.Width = m.contentWidth()
		m.viewport.Height = m.contentHeight()
	}
	m.layout()

	if first && m.pendingHash != "" {
		hash := m.pendingHash
		m.pendingHash = ""
		return m.beginAnchor(hash, true)
	}
	return nil
}

func (m *Model) contentWidth() int {
	w := m.width
	if m.sidebarVisible() {
		w -= sidebarWidth + 1
	}
	if m.state.TOCOpen {
		w -= tocWidth + 1
	}
	return max(w, 10)
}

func (m *Model) contentHeight() int { return max(m.height-chromeHeight, 1) }

// layout re-wraps the page for the current content width.
func (m *Model) layout() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.rendered = Render(m.page.Body, m.viewport.Width-1)
	m.viewport.SetContent(m.rendered.Content())
}

// open makes id the current page the way the section router does.
func (m *Model) open(id string) {
	if id == "" {
		id = nav.HomeID
	}
	path := m.sec.Router.Navigate(m.state, id, m.narrow())
	if m.sec.Router.Mode == nav.ModeRouter {
		m.sec.Router.Apply(m.state, path)
	}
	m.page = m.sec.Build(m.state)
	m.tocIdx = 0
	m.syncCursor()
	m.layout()
	if m.ready {
		m.viewport.SetYOffset(0)
	}
}

// syncCursor puts the sidebar cursor on the active row, if visible.
func (m *Model) syncCursor() {
	for i, row := range m.state.VisibleRows(m.sec.Sidebar) {
		if row.Active {
			m.cursor = i
			return
		}
	}
	m.cursor = max(min(m.cursor, len(m.state.VisibleRows(m.sec.Sidebar))-1), 0)
}

// beginAnchor starts scrolling to fragment. When the fragment lives on
// another page, that page is opened and the scroll restarts after it has
// been drawn.
func (m *Model) beginAnchor(fragment string, initial bool) tea.Cmd {
	if !m.ready {
		m.pendingHash = strings.TrimPrefix(fragment, "#")
		return nil
	}
	plan := m.scroller.Begin(fragment, initial)
	switch {
	case plan.Redirect != "":
		m.open(plan.Redirect)
		if m.state.CurrentPageID != plan.Redirect {
			// The router sent us elsewhere; asking again would loop.
			m.scroller.Cancel()
			return nil
		}
		return func() tea.Msg { return anchorBeginMsg{fragment: fragment} }
	case plan.None():
		return nil
	}
	return attemptAfter(plan.Delay, plan.Token)
}

func (m *Model) attemptAnchor(token anchor.Token) tea.Cmd {
	step := m.scroller.Attempt(token, document{m}, scrollView{&m.viewport})
	if step.Kind == anchor.StepRetry {
		return attemptAfter(step.Delay, token)
	}
	return nil
}

func attemptAfter(d time.Duration, token anchor.Token) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return anchorAttemptMsg{token: token} })
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	s := msg.String()
	if m.state.SearchFocused {
		return m.handleSearchKey(msg)
	}

	switch m.state.HandleKey(s, false) {
	case nav.KeyFocusSearch:
		m.results = nil
		m.resultIdx = 0
		return m.input.Focus()
	case nav.KeyDismiss:
		m.dismiss()
		return nil
	}

	if m.state.TOCOpen {
		if cmd, handled := m.handleTOCKey(msg); handled {
			return cmd
		}
	}

	rows := m.state.VisibleRows(m.sec.Sidebar)
	switch {
	case key.Matches(msg, keys.quit):
		return tea.Quit
	case key.Matches(msg, keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.enter):
		if m.cursor < len(rows) {
			m.scroller.Cancel()
			m.open(rows[m.cursor].ID)
			m.relayout()
		}
	case key.Matches(msg, keys.toggle):
		if m.cursor < len(rows) && rows[m.cursor].Expandable {
			m.state.ToggleSection(rows[m.cursor].ID)
		}
	case key.Matches(msg, keys.sidebar):
		m.state.ToggleSidebar()
		m.relayout()
	case key.Matches(msg, keys.toc):
		if len(m.page.TOC) > 0 {
			m.state.TOCOpen = true
			m.tocIdx = 0
			m.relayout()
		}
	case key.Matches(msg, keys.pageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height/2)
	case key.Matches(msg, keys.pageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height/2)
	}
	return nil
}

func (m *Model) handleTOCKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.up):
		if m.tocIdx > 0 {
			m.tocIdx--
		}
	case key.Matches(msg, keys.down):
		if m.tocIdx < len(m.page.TOC)-1 {
			m.tocIdx++
		}
	case key.Matches(msg, keys.enter):
		link := m.page.TOC[m.tocIdx]
		m.state.TOCOpen = false
		m.relayout()
		return m.beginAnchor(link.Fragment(), false), true
	case key.Matches(msg, keys.toc):
		m.state.TOCOpen = false
		m.relayout()
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.dismiss()
		return nil
	case "up":
		if m.resultIdx > 0 {
			m.resultIdx--
		}
		return nil
	case "down":
		if m.resultIdx < len(m.results)-1 {
			m.resultIdx++
		}
		return nil
	case "enter":
		if m.resultIdx >= len(m.results) {
			return nil
		}
		r := m.results[m.resultIdx]
		m.dismiss()
		m.scroller.Cancel()
		m.open(search.PageSlug(r.ID))
		m.relayout()
		if _, frag, ok := strings.Cut(r.Path, "#"); ok && r.Type == content.EntrySection {
			return m.beginAnchor(frag, false)
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.SetQuery(m.input.Value())
	m.results = nil
	if m.sec.Engine != nil {
		m.results = m.sec.Engine.SearchSection(m.state.SearchQuery, m.sec.Name)
	}
	m.resultIdx = 0
	return cmd
}

// dismiss clears the search and closes every overlay.
func (m *Model) dismiss() {
	m.state.HandleKey(nav.KeyEscape, false)
	m.input.SetValue("")
	m.input.Blur()
	m.results = nil
	m.resultIdx = 0
	m.relayout()
}

// relayout resizes the viewport after panels opened or closed.
func (m *Model) relayout() {
	if !m.ready {
		return
	}
	offset := m.viewport.YOffset
	m.layout()
	m.viewport.SetYOffset(offset)
}
