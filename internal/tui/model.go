// Package tui is the Bubble Tea interface: a month table of prayer times
// with a live countdown, two clocks and a caption slideshow.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/waktu-solat/internal/countdown"
	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/prefs"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/session"
	"github.com/smokyabdulrahman/waktu-solat/internal/slideshow"
	"github.com/smokyabdulrahman/waktu-solat/internal/view"
)

// Tick messages. Each one is sent by its own periodic job.
type (
	CountdownMsg    struct{}
	AnalogClockMsg  struct{}
	DigitalClockMsg struct{}
	SlideMsg        struct{}
)

type loadedMsg struct {
	zone string
	err  error
}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeZone
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Loader    *loader.Loader
	Zone      string
	Now       func() time.Time
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	loader    *loader.Loader
	store     *schedule.Store
	presenter *countdown.Presenter
	now       func() time.Time
	log       zerolog.Logger
	prefs     prefs.Prefs
	prefsPath string
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	mode   inputMode
	input  textinput.Model
	table  table.Model

	// Data state
	session  session.Context
	snapshot schedule.Snapshot
	lines    []view.Line
	loading  bool

	// Tick state
	frame     countdown.Frame
	hasFrame  bool
	analogAt  time.Time
	digitalAt time.Time
	slides    slideshow.Slideshow
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	store := &schedule.Store{}
	if opts.Loader != nil {
		store = opts.Loader.Store()
	}

	input := textinput.New()
	input.CharLimit = 64

	start := now()
	m := Model{
		ctx:       ctx,
		loader:    opts.Loader,
		store:     store,
		presenter: countdown.New(store, now),
		now:       now,
		log:       opts.Logger,
		prefs:     p,
		prefsPath: prefsPath,
		keys:      defaultKeyMap(),
		theme:     GetTheme(p.Theme),
		input:     input,
		table:     table.New(table.WithFocused(false)),
		session:   session.New(opts.Zone, schedule.DateOf(start)),
		analogAt:  start,
		digitalAt: start,
		slides:    slideshow.New(p.Slides),
	}
	m.loading = m.session.Zone != "" && m.loader != nil
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// loadCmd loads the session's zone off the UI goroutine.
func (m Model) loadCmd() tea.Cmd {
	ld, ctx, zone := m.loader, m.ctx, m.session.Zone
	if ld == nil || zone == "" {
		return nil
	}
	return func() tea.Msg {
		return loadedMsg{zone: zone, err: ld.Load(ctx, zone)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case loadedMsg:
		if errors.Is(msg.err, loader.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		snap := m.store.Snapshot()
		if snap.Schedule != nil {
			m.session = m.session.Loaded(snap.Schedule.Year())
		}
		m.refresh()
		m.tickCountdown()
		return m, nil

	case CountdownMsg:
		m.tickCountdown()
		return m, nil

	case AnalogClockMsg:
		m.analogAt = m.now()
		return m, nil

	case DigitalClockMsg:
		m.digitalAt = m.now()
		return m, nil

	case SlideMsg:
		m.slides = m.slides.Advance()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeZone:
		return m.handleZoneKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.PrevMonth):
		return m.apply(m.session.NavigateMonth(-1))

	case key.Matches(msg, m.keys.NextMonth):
		return m.apply(m.session.NavigateMonth(1))

	case key.Matches(msg, m.keys.Today):
		return m.apply(m.session.JumpToday())

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.input.Prompt = "/ "
		m.input.Placeholder = "cari tarikh, hari atau waktu"
		m.input.SetValue(m.session.Search)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Zone):
		m.mode = modeZone
		m.input.Prompt = "Zon: "
		m.input.Placeholder = "SGR01"
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
			m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("failed to save preferences")
		}
		m.refresh()
		return m, nil
	}

	return m, nil
}

// handleSearchKey filters live as the user types. Esc clears the search.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.input.Blur()
		if m.session.Search == "" {
			return m, nil
		}
		return m.apply(m.session.SetSearch(""))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.session.Search {
		next, applyCmd := m.apply(m.session.SetSearch(text))
		return next, tea.Batch(cmd, applyCmd)
	}
	return m, cmd
}

func (m Model) handleZoneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		m.input.Blur()
		return m.apply(m.session.SelectZone(m.input.Value()))

	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply adopts a session transition and performs its effect.
func (m Model) apply(c session.Context, eff session.Effect) (Model, tea.Cmd) {
	m.session = c
	if eff == session.EffectReload {
		m.loading = true
		m.refresh()
		return m, m.loadCmd()
	}
	m.refresh()
	return m, nil
}

// tickCountdown advances the banner and rolls the highlighted day over at
// midnight.
func (m *Model) tickCountdown() {
	var rolled bool
	m.session, rolled = m.session.Tick(schedule.DateOf(m.now()))
	if rolled {
		m.refresh()
	}
	m.frame, m.hasFrame = m.presenter.Tick()
}

// refresh rebuilds the visible lines and the table from the store.
func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	m.lines = view.Apply(m.snapshot.Schedule, m.session.Filter(), m.session.Today)

	layout := schedule.DefaultLayout()
	if m.loader != nil {
		layout = m.loader.Layout()
	}
	width := view.Width(m.lines)
	headers := view.Headers(layout, width)

	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		cols[i] = table.Column{Title: h, Width: max(len([]rune(h)), 1)}
	}
	rows := make([]table.Row, len(m.lines))
	for i, l := range m.lines {
		cells := view.Cells(l.Row, len(headers))
		for j, c := range cells {
			if n := len([]rune(c)); n > cols[j].Width {
				cols[j].Width = n
			}
		}
		rows[i] = table.Row(cells)
	}

	// Rows must be cleared first: the table renders existing rows against
	// the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetHeight(m.tableHeight(len(rows)))

	today := view.TodayIndex(m.lines)
	m.table.SetStyles(m.theme.TableStyles(today >= 0))
	if today >= 0 {
		m.table.SetCursor(today)
	} else {
		m.table.SetCursor(0)
	}
}

// tableHeight fits the table to the window, leaving room for the header,
// banner and footer.
func (m Model) tableHeight(rows int) int {
	h := rows + 2 // header and its border
	if m.height > 0 {
		if avail := m.height - 10; avail < h {
			h = max(avail, 3)
		}
	}
	return h
}
