package picker

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runger/fitwheel/internal/measure"
)

// DefaultFrameInterval drives animations at roughly 60 frames per second.
const DefaultFrameInterval = time.Second / 60

// settleBudget bounds how many frames finish() simulates when the user
// confirms mid-animation.
const settleBudget = 1000

// frameMsg is one animation tick. Only the tick carrying the current frameID
// is accepted; older ones are leftovers from a restarted loop.
type frameMsg struct {
	id uint64
	at time.Time
}

// initMsg is sent by Init so the first frame is scheduled through Update,
// where state mutations are kept.
type initMsg struct{}

// Options configures a Model.
type Options struct {
	// Units is the starting unit system. UnitsToggle enables the unit key.
	Units       measure.UnitSystem
	UnitsToggle bool

	FrameInterval time.Duration
	Logger        *slog.Logger
	// Now is the clock used for pointer velocity; defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model hosting one or more picker screens. Screens
// are visited in order; Enter on the last one finishes.
type Model struct {
	screens []Screen
	page    int
	focus   int

	units       measure.UnitSystem
	unitsToggle bool

	keys     keyMap
	help     help.Model
	showHelp bool

	interval  time.Duration
	frameID   uint64
	ticking   bool
	lastFrame time.Time
	now       func() time.Time

	// pressed is the column receiving pointer motion, or -1.
	pressed int

	width  int
	height int

	done      bool
	cancelled bool
	err       error

	logger *slog.Logger
}

// NewModel creates a Model over screens.
func NewModel(screens []Screen, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Units == "" {
		opts.Units = measure.Metric
	}
	keys := defaultKeyMap()
	keys.Units.SetEnabled(opts.UnitsToggle)
	return Model{
		screens:     screens,
		units:       opts.Units,
		unitsToggle: opts.UnitsToggle,
		keys:        keys,
		help:        help.New(),
		interval:    opts.FrameInterval,
		now:         opts.Now,
		pressed:     -1,
		logger:      orDiscard(opts.Logger),
	}
}

// Done reports whether the user confirmed the last screen.
func (m Model) Done() bool { return m.done }

// Cancelled reports whether the user quit without confirming.
func (m Model) Cancelled() bool { return m.cancelled }

// Err returns the last error raised while handling input, if any.
func (m Model) Err() error { return m.err }

// Screens returns the hosted screens.
func (m Model) Screens() []Screen { return m.screens }

// Units returns the unit system currently displayed.
func (m Model) Units() measure.UnitSystem { return m.units }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return initMsg{} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initMsg:
		cmd := m.kick()
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		return m.handleFrame(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelled = true
		m.stopFrames()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		m.finish()
		if m.page < len(m.screens)-1 {
			m.page++
			m.focus = 0
			return m, nil
		}
		m.done = true
		m.stopFrames()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.page > 0 {
			m.finish()
			m.page--
			m.focus = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Units):
		return m.toggleUnits()

	case key.Matches(msg, m.keys.Left):
		if n := len(m.columns()); n > 0 {
			m.focus = (m.focus - 1 + n) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if n := len(m.columns()); n > 0 {
			m.focus = (m.focus + 1) % n
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.step(-1)
	case key.Matches(msg, m.keys.Down):
		return m.step(1)
	case key.Matches(msg, m.keys.PageUp):
		return m.step(-pageStep)
	case key.Matches(msg, m.keys.PageDown):
		return m.step(pageStep)
	}
	return m, nil
}

func (m Model) step(n int) (tea.Model, tea.Cmd) {
	c := m.focused()
	if c == nil || c.Dragging() {
		return m, nil
	}
	c.Step(n)
	cmd := m.kick()
	return m, cmd
}

func (m Model) toggleUnits() (tea.Model, tea.Cmd) {
	if !m.unitsToggle {
		return m, nil
	}
	m.finish()
	next := m.units.Toggle()
	for _, s := range m.screens {
		if err := s.SetUnits(next); err != nil {
			m.err = err
			m.logger.Warn("unit switch failed", "screen", s.Title(), "error", err)
			return m, nil
		}
	}
	m.units = next
	m.focus = min(m.focus, max(len(m.columns())-1, 0))
	m.logger.Debug("units toggled", "units", string(next))
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()
	now := m.now()

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		i := m.layout().columnAt(msg.X)
		if i < 0 {
			i = m.focus
		}
		if i >= len(cols) || cols[i].Dragging() {
			return m, nil
		}
		m.focus = i
		n := 1
		if msg.Button == tea.MouseButtonWheelUp {
			n = -1
		}
		cols[i].Step(n)
		cmd := m.kick()
		return m, cmd

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		l := m.layout()
		i := l.columnAt(msg.X)
		if i < 0 || i >= len(cols) || !l.inRows(msg.Y) {
			return m, nil
		}
		m.focus = i
		m.pressed = i
		cols[i].PressAt(now, msg.Y)
		return m, nil

	case msg.Action == tea.MouseActionMotion:
		if m.pressed >= 0 && m.pressed < len(cols) {
			cols[m.pressed].DragTo(now, msg.Y)
		}
		return m, nil

	case msg.Action == tea.MouseActionRelease:
		if m.pressed >= 0 && m.pressed < len(cols) {
			cols[m.pressed].DragTo(now, msg.Y)
			cols[m.pressed].Release(now)
		}
		m.pressed = -1
		cmd := m.kick()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.frameID || !m.ticking {
		return m, nil
	}
	dt := msg.at.Sub(m.lastFrame)
	if dt < 0 {
		dt = 0
	}
	m.lastFrame = msg.at

	animating := false
	for _, s := range m.screens {
		for _, c := range s.Columns() {
			if c.Tick(dt) {
				animating = true
			}
		}
	}
	if !animating {
		m.ticking = false
		return m, nil
	}
	cmd := m.nextFrame()
	return m, cmd
}

// kick starts the frame loop if any column needs frames and none is running.
func (m *Model) kick() tea.Cmd {
	if m.ticking || !m.animating() {
		return nil
	}
	m.ticking = true
	m.lastFrame = m.now()
	return m.nextFrame()
}

func (m *Model) nextFrame() tea.Cmd {
	m.frameID++
	id := m.frameID
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg{id: id, at: t}
	})
}

func (m *Model) stopFrames() {
	m.ticking = false
	m.frameID++
}

func (m Model) animating() bool {
	for _, s := range m.screens {
		for _, c := range s.Columns() {
			if c.Animating() {
				return true
			}
		}
	}
	return false
}

// finish releases any drag and runs every animation to rest so the values
// read afterwards are settled ones.
func (m *Model) finish() {
	now := m.now()
	for _, s := range m.screens {
		for _, c := range s.Columns() {
			if c.Dragging() {
				c.Release(now)
			}
			for i := 0; i < settleBudget && c.Tick(maxFrameStep); i++ {
			}
		}
	}
	m.pressed = -1
	m.stopFrames()
}

func (m Model) current() Screen {
	if m.page < 0 || m.page >= len(m.screens) {
		return nil
	}
	return m.screens[m.page]
}

func (m Model) columns() []*Column {
	if s := m.current(); s != nil {
		return s.Columns()
	}
	return nil
}

func (m Model) focused() *Column {
	cols := m.columns()
	if m.focus < 0 || m.focus >= len(cols) {
		return nil
	}
	return cols[m.focus]
}
