package picker

import (
	"log/slog"
	"math"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/runger/fitwheel/internal/wheel"
)

// maxFrameStep caps a single frame so a stalled terminal does not teleport
// the wheel.
const maxFrameStep = 100 * time.Millisecond

// Column is one wheel in a screen. Pointer input arrives in terminal rows and
// is scaled to wheel units, one row per item extent.
type Column struct {
	Title string

	wheel   *wheel.Picker[int]
	tracker wheel.VelocityTracker

	onSettle func(value, index int)
	settles  int
}

// NewColumn builds a column over items. onSettle may be nil.
func NewColumn(title string, items []wheel.Item[int], cfg wheel.Config, initial int, logger *slog.Logger, onSettle func(value, index int)) (*Column, error) {
	logger = orDiscard(logger)
	c := &Column{Title: title, onSettle: onSettle}
	p, err := wheel.New(items, cfg,
		wheel.WithInitialValue(initial),
		wheel.WithOnValueChanged(c.settled),
		wheel.WithLogger[int](logger.With("column", title)),
	)
	if err != nil {
		return nil, err
	}
	c.wheel = p
	return c, nil
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

func (c *Column) settled(value, index int) {
	c.settles++
	if c.onSettle != nil {
		c.onSettle(value, index)
	}
}

// Wheel exposes the underlying picker.
func (c *Column) Wheel() *wheel.Picker[int] {
	return c.wheel
}

// Value returns the settled value, or 0 when the column is empty.
func (c *Column) Value() int {
	v, err := c.wheel.Value()
	if err != nil {
		return 0
	}
	return v
}

// Settles counts settle notifications since construction, including the
// initial one.
func (c *Column) Settles() int {
	return c.settles
}

func (c *Column) extent() float64 {
	return c.wheel.Config().ItemExtent
}

// PressAt starts a drag at terminal row y.
func (c *Column) PressAt(at time.Time, y int) {
	c.tracker.Begin(at, float64(y)*c.extent())
	c.wheel.DragStart()
}

// DragTo moves the pointer to terminal row y.
func (c *Column) DragTo(at time.Time, y int) {
	if !c.tracker.Active() {
		return
	}
	c.wheel.DragUpdate(c.tracker.Move(at, float64(y)*c.extent()))
}

// Release ends the drag; the wheel decays or snaps from here.
func (c *Column) Release(at time.Time) {
	if !c.tracker.Active() {
		return
	}
	c.wheel.DragEnd(c.tracker.End(at))
}

// Dragging reports whether a pointer gesture is in progress.
func (c *Column) Dragging() bool {
	return c.tracker.Active()
}

// Step moves the selection by n items.
func (c *Column) Step(n int) {
	c.wheel.Step(n)
}

// Tick advances the column's animation.
func (c *Column) Tick(dt time.Duration) bool {
	return c.wheel.Tick(min(dt, maxFrameStep))
}

// Animating reports whether the column needs frames.
func (c *Column) Animating() bool {
	return c.wheel.Animating()
}

// Width is the display width of the widest label plus padding.
func (c *Column) Width() int {
	w := runewidth.StringWidth(c.Title)
	for _, it := range c.wheel.Registry().Items() {
		w = max(w, runewidth.StringWidth(it.Text()))
	}
	return w + 4
}

// Row is one rendered line of a column.
type Row struct {
	Label     string
	Transform wheel.Transform
	Empty     bool
}

// Rows lays the current frame onto VisibleCount terminal rows. Each item
// lands on the row containing its projected center.
func (c *Column) Rows() []Row {
	cfg := c.wheel.Config()
	rows := make([]Row, cfg.VisibleCount)
	for i := range rows {
		rows[i].Empty = true
	}
	reg := c.wheel.Registry()
	for _, t := range c.wheel.Frame() {
		r := int(math.Floor(t.Center / cfg.ItemExtent))
		if r < 0 || r >= len(rows) || t.Hidden {
			continue
		}
		it, err := reg.ItemAt(t.Index)
		if err != nil {
			continue
		}
		rows[r] = Row{Label: it.Text(), Transform: t}
	}
	return rows
}
