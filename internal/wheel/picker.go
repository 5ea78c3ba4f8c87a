// Package wheel implements the motion model of a wheel-style value picker:
// drag tracking, inertial decay, snapping to the nearest item, and a
// per-frame projection of item geometry. It has no rendering or input
// dependencies; hosts deliver drag deltas, release velocities and frame
// ticks, and read back MotionState and Frame each frame.
//
// A Picker is not safe for concurrent use. Drive it from the host's UI loop.
package wheel

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Mode is the interaction phase of a picker.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeDecaying
	ModeSnapping
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDragging:
		return "dragging"
	case ModeDecaying:
		return "decaying"
	case ModeSnapping:
		return "snapping"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MotionState is the scroll state read by renderers every frame.
type MotionState struct {
	Offset   float64
	Velocity float64
	Mode     Mode
}

// SelectionResult is a settled selection.
type SelectionResult[T comparable] struct {
	Index int
	Value T
}

// Option configures a Picker at construction.
type Option[T comparable] func(*Picker[T])

// WithInitialValue selects the first item holding v. Absent values fall back
// to the initial index.
func WithInitialValue[T comparable](v T) Option[T] {
	return func(p *Picker[T]) {
		p.initValue = &v
	}
}

// WithInitialIndex selects item i, clamped to the registry.
func WithInitialIndex[T comparable](i int) Option[T] {
	return func(p *Picker[T]) {
		p.initIndex = i
	}
}

// WithOnValueChanged registers the settle callback.
func WithOnValueChanged[T comparable](fn func(value T, index int)) Option[T] {
	return func(p *Picker[T]) {
		p.onChange = fn
	}
}

// WithLogger sets the logger used for debug tracing of transitions.
func WithLogger[T comparable](l *slog.Logger) Option[T] {
	return func(p *Picker[T]) {
		if l != nil {
			p.logger = l
		}
	}
}

// Picker is one wheel column: a registry, its geometry and the motion state
// machine
//
//	Idle -> Dragging -> (Decaying ->) Snapping -> Idle
//
// The settle callback fires when Snapping completes, and synchronously on
// construction and registry or config replacement. It never fires while
// Dragging or Decaying, and an interrupted animation fires nothing.
type Picker[T comparable] struct {
	cfg   Config
	reg   *Registry[T]
	geo   Geometry
	state MotionState

	drag   drag
	decay  *Decay
	settle settleMotion
	target int // index the running settle motion is heading to

	selected int // last settled index, -1 when empty

	onChange func(value T, index int)
	logger   *slog.Logger

	initValue *T
	initIndex int
}

// New builds a picker over items. An invalid config fails with
// ErrInvalidConfig. When the registry is non-empty the settle callback fires
// once, synchronously, for the initial selection.
func New[T comparable](items []Item[T], cfg Config, opts ...Option[T]) (*Picker[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Picker[T]{
		cfg:      cfg,
		reg:      NewRegistry(items),
		selected: -1,
		target:   -1,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.geo = NewGeometry(cfg, p.reg.Size())

	idx := p.initIndex
	if p.initValue != nil {
		if i, ok := p.reg.IndexOf(*p.initValue); ok {
			idx = i
		}
	}
	p.placeAt(idx)
	return p, nil
}

// MustNew is New for configurations known to be valid.
func MustNew[T comparable](items []Item[T], cfg Config, opts ...Option[T]) *Picker[T] {
	p, err := New(items, cfg, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// placeAt jumps to index i without animation and settles there.
func (p *Picker[T]) placeAt(i int) {
	p.cancelMotion()
	p.state.Mode = ModeIdle
	p.state.Velocity = 0
	if p.reg.Size() == 0 {
		p.state.Offset = p.geo.MaxOffset()
		p.selected = -1
		return
	}
	i = p.reg.clampIndex(i)
	p.state.Offset = p.geo.CenterOffset(i)
	p.settleAt(i)
}

// settleAt records the selection and notifies.
func (p *Picker[T]) settleAt(i int) {
	p.selected = i
	p.state.Mode = ModeIdle
	p.state.Velocity = 0
	it := p.reg.items[i]
	p.logger.Debug("wheel settled", "index", i, "label", it.Text(), "offset", p.state.Offset)
	if p.onChange != nil {
		p.onChange(it.Value, i)
	}
}

func (p *Picker[T]) cancelMotion() {
	p.decay = nil
	p.settle = nil
	p.target = -1
}

func (p *Picker[T]) setMode(m Mode) {
	if p.state.Mode != m {
		p.logger.Debug("wheel mode", "from", p.state.Mode.String(), "to", m.String(), "offset", p.state.Offset)
	}
	p.state.Mode = m
}

// DragStart begins a gesture from the current offset, interrupting any
// decay or snap in flight.
func (p *Picker[T]) DragStart() {
	if p.reg.Size() == 0 {
		return
	}
	p.cancelMotion()
	p.drag = drag{origin: p.state.Offset}
	p.state.Velocity = 0
	p.setMode(ModeDragging)
}

// DragUpdate applies a pointer delta. The offset is hard-clamped to the
// bounds.
func (p *Picker[T]) DragUpdate(deltaY float64) {
	if p.state.Mode != ModeDragging {
		return
	}
	p.drag.cumulative += deltaY
	p.state.Offset = p.drag.offset(p.geo)
}

// DragEnd releases the gesture. Speeds strictly above the velocity threshold
// decay; anything else snaps straight away.
func (p *Picker[T]) DragEnd(velocityY float64) {
	if p.state.Mode != ModeDragging {
		return
	}
	if p.cfg.decayAllowed() && math.Abs(velocityY) > p.cfg.VelocityThreshold {
		p.decay = NewDecay(p.state.Offset, velocityY, p.cfg, p.geo)
		p.state.Velocity = velocityY
		p.setMode(ModeDecaying)
		return
	}
	p.state.Velocity = 0
	p.snapFrom(p.state.Offset)
}

// snapFrom resolves offset and eases onto the nearest item.
func (p *Picker[T]) snapFrom(offset float64) {
	to, idx := p.geo.Resolve(offset)
	p.startSettle(newEaseMotion(offset, to, p.cfg.snapDuration(), easingFor(p.cfg.Easing)), idx)
}

func (p *Picker[T]) startSettle(m settleMotion, idx int) {
	p.decay = nil
	p.settle = m
	p.target = idx
	p.setMode(ModeSnapping)
	// Zero-length motions complete without waiting for a frame.
	p.advanceSettle(0)
}

func (p *Picker[T]) advanceSettle(dt time.Duration) {
	off, done := p.settle.step(dt)
	p.state.Offset = off
	if !done {
		return
	}
	idx := p.target
	p.cancelMotion()
	p.settleAt(idx)
}

// Tick advances any running animation by dt and reports whether the picker
// still needs frames.
func (p *Picker[T]) Tick(dt time.Duration) bool {
	switch p.state.Mode {
	case ModeDecaying:
		off, v, done := p.decay.Step(dt)
		p.state.Offset, p.state.Velocity = off, v
		if done {
			p.state.Velocity = 0
			p.snapFrom(off)
		}
	case ModeSnapping:
		p.advanceSettle(dt)
	}
	return p.Animating()
}

// Animating reports whether the picker is decaying or snapping.
func (p *Picker[T]) Animating() bool {
	return p.state.Mode == ModeDecaying || p.state.Mode == ModeSnapping
}

// SetValue moves to the first item holding v and settles there, firing the
// callback once when the motion completes (synchronously for instant
// motion). Selecting the current value still re-settles and fires. A value
// not in the registry resolves to the nearest item by offset. No-op on an
// empty registry.
func (p *Picker[T]) SetValue(v T) {
	if p.reg.Size() == 0 {
		return
	}
	idx, ok := p.reg.IndexOf(v)
	if !ok {
		_, idx = p.geo.Resolve(p.state.Offset)
	}
	p.SetIndex(idx)
}

// SetIndex moves to item i, clamped, using the configured set motion.
func (p *Picker[T]) SetIndex(i int) {
	if p.reg.Size() == 0 {
		return
	}
	i = p.reg.clampIndex(i)
	from := p.state.Offset
	to := p.geo.CenterOffset(i)
	p.drag = drag{}
	p.state.Velocity = 0

	switch p.cfg.setMotion() {
	case SetMotionInstant:
		p.cancelMotion()
		p.state.Offset = to
		p.settleAt(i)
	case SetMotionSpring:
		p.startSettle(newSpringMotion(from, to, p.cfg.Spring), i)
	default:
		p.startSettle(newEaseMotion(from, to, p.cfg.snapDuration(), easingFor(p.cfg.Easing)), i)
	}
}

// Step moves the selection by n items relative to the settled index, the
// target of a running settle, or the item under a running decay.
func (p *Picker[T]) Step(n int) {
	if p.reg.Size() == 0 {
		return
	}
	base := p.selected
	switch {
	case p.settle != nil && p.target >= 0:
		base = p.target
	case p.state.Mode == ModeDecaying:
		_, base = p.geo.Resolve(p.state.Offset)
	}
	p.SetIndex(base + n)
}

// SetItems replaces the registry and re-resolves the selection: the current
// value is kept when still present, otherwise the nearest index by offset.
// Settles synchronously.
func (p *Picker[T]) SetItems(items []Item[T]) {
	var keep *T
	if p.selected >= 0 {
		v := p.reg.items[p.selected].Value
		keep = &v
	}
	offset := p.state.Offset

	p.reg = NewRegistry(items)
	p.geo = NewGeometry(p.cfg, p.reg.Size())
	p.reresolve(keep, offset)
}

// SetItemsValue replaces the registry and selects v, falling back to the
// nearest index by offset. Settles synchronously.
func (p *Picker[T]) SetItemsValue(items []Item[T], v T) {
	offset := p.state.Offset
	p.reg = NewRegistry(items)
	p.geo = NewGeometry(p.cfg, p.reg.Size())
	p.reresolve(&v, offset)
}

// SetConfig replaces the configuration and re-resolves the selection.
func (p *Picker[T]) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var keep *T
	if p.selected >= 0 {
		v := p.reg.items[p.selected].Value
		keep = &v
	}
	// Keep the fractional position across a change of extent.
	pos := 0.0
	if p.reg.Size() > 0 {
		pos = (p.geo.CenterOffset(0) - p.state.Offset) / p.geo.ItemExtent
	}
	p.cfg = cfg
	p.geo = NewGeometry(cfg, p.reg.Size())
	p.reresolve(keep, p.geo.CenterOffset(0)-pos*p.geo.ItemExtent)
	return nil
}

func (p *Picker[T]) reresolve(keep *T, offset float64) {
	if p.reg.Size() == 0 {
		p.placeAt(0)
		return
	}
	if keep != nil {
		if i, ok := p.reg.IndexOf(*keep); ok {
			p.placeAt(i)
			return
		}
	}
	_, idx := p.geo.Resolve(p.geo.Clamp(offset))
	p.placeAt(idx)
}

// Value returns the settled value.
func (p *Picker[T]) Value() (T, error) {
	if p.selected < 0 {
		var zero T
		return zero, ErrNoSelection
	}
	return p.reg.items[p.selected].Value, nil
}

// Index returns the settled index, or -1 when the registry is empty.
func (p *Picker[T]) Index() int {
	return p.selected
}

// Selection returns the settled index and value.
func (p *Picker[T]) Selection() (SelectionResult[T], error) {
	v, err := p.Value()
	if err != nil {
		return SelectionResult[T]{}, err
	}
	return SelectionResult[T]{Index: p.selected, Value: v}, nil
}

// State returns the current motion state.
func (p *Picker[T]) State() MotionState {
	return p.state
}

// Geometry returns the current layout.
func (p *Picker[T]) Geometry() Geometry {
	return p.geo
}

// Config returns the active configuration.
func (p *Picker[T]) Config() Config {
	return p.cfg
}

// Registry returns the active registry.
func (p *Picker[T]) Registry() *Registry[T] {
	return p.reg
}

// Frame projects every item that intersects the viewport at the current
// offset. Hidden items are included; renderers decide whether to skip them.
func (p *Picker[T]) Frame() []Transform {
	start, end := p.geo.VisibleRange(p.state.Offset)
	out := make([]Transform, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, Project(p.geo, p.cfg, i, p.state.Offset))
	}
	return out
}
