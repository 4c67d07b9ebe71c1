package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayflow/internal/prefs"
	"dayflow/internal/stats"
	"dayflow/internal/views"
)

type viewKind int

const (
	viewDay viewKind = iota
	viewDetail
	viewStats
)

type tickMsg time.Time

type dayLoadedMsg struct {
	key string
	err error
}

type weekLoadedMsg struct {
	err error
}

type detailLoadedMsg struct {
	id  int64
	err error
}

type statsLoadedMsg struct {
	view stats.View
	err  error
}

type actionDoneMsg struct {
	id  int64
	err error
}

type prefsSavedMsg struct{}

// Model is the bubbletea model for the planner.
type Model struct {
	opts   Options
	keys   keyMap
	theme  Theme
	styles Styles
	help   help.Model
	spin   spinner.Model

	width  int
	height int

	view      viewKind
	startView string
	day       time.Time
	selected  int
	status    string

	dayList  *views.DayList
	presence *views.WeekPresence
	active   *views.Active
	detail   *views.Detail

	statsView  stats.View
	statsReady bool
	statsErr   error
}

// New builds the UI model, binding view adapters for today's week.
func New(opts Options) Model {
	theme := GetTheme(opts.ThemeName)

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	day := dayStart(opts.Zone.Location(), time.Now())
	m := Model{
		opts:      opts,
		keys:      DefaultKeyMap(),
		theme:     theme,
		styles:    theme.Styles(),
		help:      help.New(),
		spin:      spin,
		startView: opts.StartView,
		day:       day,
		active:    views.NewActive(opts.Store),
	}
	m.dayList = views.NewDayList(opts.Store, opts.Service, opts.Zone.DateKey(day))
	m.presence = views.NewWeekPresence(opts.Store, opts.Service, opts.Zone, day)
	if opts.StartView == "stats" {
		m.view = viewStats
	}
	return m
}

// Init starts the periodic repaint and the initial loads.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spin.Tick,
		tick(),
		m.loadDayCmd(false),
		m.loadWeekCmd(),
	}
	if m.view == viewStats {
		cmds = append(cmds, m.loadStatsCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case dayLoadedMsg:
		// Results for a day the user already navigated away from are stale.
		if msg.key == m.dayList.Key() && msg.err != nil {
			m.status = "day load failed: " + msg.err.Error()
		}
		return m, nil

	case weekLoadedMsg:
		if msg.err != nil {
			m.status = "week load failed: " + msg.err.Error()
		}
		return m, nil

	case detailLoadedMsg:
		if m.detail != nil && msg.id == m.detail.ID() && msg.err != nil {
			m.status = "detail load failed: " + msg.err.Error()
		}
		return m, nil

	case statsLoadedMsg:
		m.statsErr = msg.err
		if msg.err == nil {
			m.statsView = msg.view
			m.statsReady = true
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = "action failed: " + msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case prefsSavedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.closeAdapters()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		return m, m.savePrefsCmd()

	case key.Matches(msg, m.keys.Escape):
		if m.detail != nil {
			m.detail.Close()
			m.detail = nil
		}
		m.view = viewDay
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.ViewDay):
		m.view = viewDay
		return m, nil

	case key.Matches(msg, m.keys.ViewStats):
		m.view = viewStats
		return m, m.loadStatsCmd()

	case key.Matches(msg, m.keys.Detail):
		if m.view != viewDay {
			return m, nil
		}
		schedules, _, _ := m.dayList.Snapshot()
		idx := clamp(m.selected, 0, len(schedules)-1)
		if len(schedules) == 0 {
			return m, nil
		}
		if m.detail != nil {
			m.detail.Close()
		}
		m.detail = views.NewDetail(m.opts.Store, m.opts.Service, schedules[idx].ID)
		m.view = viewDetail
		return m, m.loadDetailCmd()

	case key.Matches(msg, m.keys.PrevDay):
		return m.gotoDay(m.day.AddDate(0, 0, -1))

	case key.Matches(msg, m.keys.NextDay):
		return m.gotoDay(m.day.AddDate(0, 0, 1))

	case key.Matches(msg, m.keys.PrevWeek):
		return m.gotoDay(m.day.AddDate(0, 0, -7))

	case key.Matches(msg, m.keys.NextWeek):
		return m.gotoDay(m.day.AddDate(0, 0, 7))

	case key.Matches(msg, m.keys.Today):
		return m.gotoDay(dayStart(m.opts.Zone.Location(), time.Now()))

	case key.Matches(msg, m.keys.Up):
		m.selected = clamp(m.selected-1, 0, m.listLen()-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selected = clamp(m.selected+1, 0, m.listLen()-1)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadDayCmd(true)

	case key.Matches(msg, m.keys.Start):
		return m, m.actionCmd("start")
	case key.Matches(msg, m.keys.Pause):
		return m, m.actionCmd("pause")
	case key.Matches(msg, m.keys.Complete):
		return m, m.actionCmd("complete")
	case key.Matches(msg, m.keys.Cancel):
		return m, m.actionCmd("cancel")
	}
	return m, nil
}

// gotoDay rebinds the day-list adapter, and the week adapter when the target
// lands in a different week.
func (m Model) gotoDay(day time.Time) (tea.Model, tea.Cmd) {
	if m.opts.Zone.DateKey(day) == m.dayList.Key() {
		return m, nil
	}

	m.day = day
	m.selected = 0
	m.status = ""

	m.dayList.Close()
	m.dayList = views.NewDayList(m.opts.Store, m.opts.Service, m.opts.Zone.DateKey(day))
	cmds := []tea.Cmd{m.loadDayCmd(false)}

	newWeek := m.opts.Zone.DateKey(m.opts.Zone.WeekStart(day))
	oldWeek := ""
	if keys := m.presence.Keys(); len(keys) > 0 {
		oldWeek = keys[0]
	}
	if newWeek != oldWeek {
		m.presence.Close()
		m.presence = views.NewWeekPresence(m.opts.Store, m.opts.Service, m.opts.Zone, day)
		cmds = append(cmds, m.loadWeekCmd())
		if m.view == viewStats {
			m.statsReady = false
			cmds = append(cmds, m.loadStatsCmd())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) listLen() int {
	schedules, _, _ := m.dayList.Snapshot()
	return len(schedules)
}

// targetID resolves which schedule a lifecycle key acts on.
func (m Model) targetID() (int64, bool) {
	switch m.view {
	case viewDetail:
		if m.detail != nil {
			return m.detail.ID(), true
		}
	case viewStats:
		if sum, ok := m.active.Snapshot(); ok {
			return sum.ID, true
		}
	default:
		schedules, _, _ := m.dayList.Snapshot()
		if len(schedules) > 0 {
			idx := clamp(m.selected, 0, len(schedules)-1)
			return schedules[idx].ID, true
		}
	}
	return 0, false
}

func (m *Model) closeAdapters() {
	if m.dayList != nil {
		m.dayList.Close()
	}
	if m.presence != nil {
		m.presence.Close()
	}
	if m.active != nil {
		m.active.Close()
	}
	if m.detail != nil {
		m.detail.Close()
	}
}

// Commands

func tick() tea.Cmd {
	return tea.Tick(uiTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadDayCmd(refresh bool) tea.Cmd {
	adapter := m.dayList
	ctx := m.opts.Context
	return func() tea.Msg {
		var err error
		if refresh {
			err = adapter.Refresh(ctx)
		} else {
			err = adapter.Load(ctx)
		}
		return dayLoadedMsg{key: adapter.Key(), err: err}
	}
}

func (m Model) loadWeekCmd() tea.Cmd {
	adapter := m.presence
	ctx := m.opts.Context
	return func() tea.Msg {
		return weekLoadedMsg{err: adapter.Load(ctx)}
	}
}

func (m Model) loadDetailCmd() tea.Cmd {
	adapter := m.detail
	ctx := m.opts.Context
	return func() tea.Msg {
		return detailLoadedMsg{id: adapter.ID(), err: adapter.Load(ctx)}
	}
}

func (m Model) loadStatsCmd() tea.Cmd {
	svc := m.opts.Service
	zone := m.opts.Zone
	ctx := m.opts.Context
	at := zone.Wire(m.day)
	return func() tea.Msg {
		weekly, err := svc.WeeklyStatistics(ctx, at)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		view, err := stats.BuildView(*weekly, zone)
		return statsLoadedMsg{view: view, err: err}
	}
}

func (m Model) actionCmd(action string) tea.Cmd {
	id, ok := m.targetID()
	if !ok {
		return nil
	}
	coord := m.opts.Coord
	ctx := m.opts.Context
	return func() tea.Msg {
		var err error
		switch action {
		case "start":
			err = coord.Start(ctx, id)
		case "pause":
			err = coord.Pause(ctx, id)
		case "complete":
			err = coord.Complete(ctx, id)
		case "cancel":
			err = coord.Cancel(ctx, id)
		}
		return actionDoneMsg{id: id, err: err}
	}
}

func (m Model) savePrefsCmd() tea.Cmd {
	path := m.opts.PrefsPath
	saved := prefs.Prefs{Theme: m.theme.Name, StartView: m.startView}
	return func() tea.Msg {
		_ = prefs.Save(path, saved)
		return prefsSavedMsg{}
	}
}

// Helpers

func dayStart(loc *time.Location, t time.Time) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
