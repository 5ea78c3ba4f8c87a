package wheel

import "fmt"

// Item is a single selectable row.
type Item[T comparable] struct {
	Value T
	Label string
}

// Text returns the label, falling back to the formatted value.
func (it Item[T]) Text() string {
	if it.Label != "" {
		return it.Label
	}
	return fmt.Sprint(it.Value)
}

// Registry is an immutable ordered list of items. Index, not value, is the
// addressing key; duplicate values are allowed and IndexOf returns the first.
type Registry[T comparable] struct {
	items []Item[T]
}

// NewRegistry copies items into a new registry. A nil or empty slice is valid.
func NewRegistry[T comparable](items []Item[T]) *Registry[T] {
	cp := make([]Item[T], len(items))
	copy(cp, items)
	return &Registry[T]{items: cp}
}

// Size returns the number of items.
func (r *Registry[T]) Size() int {
	return len(r.items)
}

// ItemAt returns the item at index i.
func (r *Registry[T]) ItemAt(i int) (Item[T], error) {
	if i < 0 || i >= len(r.items) {
		var zero Item[T]
		return zero, fmt.Errorf("item %d of %d: %w", i, len(r.items), ErrOutOfRange)
	}
	return r.items[i], nil
}

// IndexOf returns the index of the first item holding v.
func (r *Registry[T]) IndexOf(v T) (int, bool) {
	for i, it := range r.items {
		if it.Value == v {
			return i, true
		}
	}
	return -1, false
}

// Items returns a copy of the items.
func (r *Registry[T]) Items() []Item[T] {
	cp := make([]Item[T], len(r.items))
	copy(cp, r.items)
	return cp
}

// clampIndex bounds i to a valid index. Callers must check Size() > 0.
func (r *Registry[T]) clampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(r.items) {
		return len(r.items) - 1
	}
	return i
}

// Range builds items for every value from min to max inclusive, stepping by
// step. label formats each value; a nil label leaves Label empty.
func Range(min, max, step int, label func(int) string) []Item[int] {
	if step <= 0 || max < min {
		return nil
	}
	items := make([]Item[int], 0, (max-min)/step+1)
	for v := min; v <= max; v += step {
		it := Item[int]{Value: v}
		if label != nil {
			it.Label = label(v)
		}
		items = append(items, it)
	}
	return items
}
