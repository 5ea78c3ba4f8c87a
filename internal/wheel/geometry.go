package wheel

import "math"

// Geometry is the fixed layout derived from a config and item count.
// Offsets decrease as the index increases: scrolling down reveals later items.
type Geometry struct {
	ItemExtent     float64
	VisibleCount   int
	ViewportHeight float64
	Count          int
}

// NewGeometry derives the layout for n items.
func NewGeometry(cfg Config, n int) Geometry {
	return Geometry{
		ItemExtent:     cfg.ItemExtent,
		VisibleCount:   cfg.VisibleCount,
		ViewportHeight: cfg.ItemExtent * float64(cfg.VisibleCount),
		Count:          n,
	}
}

// CenterOffset is the offset that places item i at the viewport center.
func (g Geometry) CenterOffset(i int) float64 {
	return -float64(i)*g.ItemExtent + (g.ViewportHeight-g.ItemExtent)/2
}

// MaxOffset centers the first item.
func (g Geometry) MaxOffset() float64 {
	return g.CenterOffset(0)
}

// MinOffset centers the last item. With no items it equals MaxOffset.
func (g Geometry) MinOffset() float64 {
	if g.Count == 0 {
		return g.CenterOffset(0)
	}
	return g.CenterOffset(g.Count - 1)
}

// Clamp bounds an offset to [MinOffset, MaxOffset].
func (g Geometry) Clamp(offset float64) float64 {
	return math.Min(math.Max(offset, g.MinOffset()), g.MaxOffset())
}

// resolveTolerance absorbs rounding in the division so midpoints between
// items computed from non-dyadic extents still resolve to the higher index.
const resolveTolerance = 1e-9

// Resolve returns the index nearest to offset and the offset centering it.
// Exact halves resolve to the higher index. With no items it returns
// (offset, -1).
func (g Geometry) Resolve(offset float64) (float64, int) {
	if g.Count == 0 {
		return offset, -1
	}
	x := (g.CenterOffset(0) - offset) / g.ItemExtent
	idx := int(math.Floor(x + 0.5 + resolveTolerance))
	if idx < 0 {
		idx = 0
	}
	if idx > g.Count-1 {
		idx = g.Count - 1
	}
	return g.CenterOffset(idx), idx
}

// Radius is the cylinder radius used by the 3D projection.
func (g Geometry) Radius() float64 {
	return float64(g.VisibleCount) / 2 * g.ItemExtent
}

// VisibleRange returns the half-open index window [start, end) of items whose
// rows intersect the viewport at the given offset.
func (g Geometry) VisibleRange(offset float64) (start, end int) {
	if g.Count == 0 {
		return 0, 0
	}
	// Item i occupies [i*E+offset, (i+1)*E+offset).
	start = int(math.Floor(-offset / g.ItemExtent))
	end = int(math.Ceil((g.ViewportHeight - offset) / g.ItemExtent))
	if start < 0 {
		start = 0
	}
	if end > g.Count {
		end = g.Count
	}
	if end < start {
		end = start
	}
	return start, end
}
