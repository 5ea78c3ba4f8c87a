package picker

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Screen layout, top to bottom: page header, blank line, column titles, the
// wheel rows, then summary and help.
const (
	headerLines = 3
	leftMargin  = 2
	columnGap   = 2
)

// faintBelow is the foreshortening under which a row is drawn faint.
const faintBelow = 0.55

var (
	labelColor = mustHex("#e4e4e4")
	backColor  = mustHex("#1c1c1c")

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	pageStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("214"))
	bandStyle    = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	focusBand    = lipgloss.NewStyle().Background(lipgloss.Color("62"))
	summaryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// fade blends the label color toward the background; opacity 1 is the full
// label color.
func fade(opacity float64) lipgloss.Color {
	t := 1 - math.Max(0, math.Min(1, opacity))
	return lipgloss.Color(labelColor.BlendLab(backColor, t).Clamped().Hex())
}

// layout locates columns on screen for pointer hit-testing. It is derived
// from state alone so View and Update agree without caching.
type layout struct {
	xs     []int
	widths []int
	top    int
	rows   int
}

func (m Model) layout() layout {
	l := layout{top: headerLines}
	x := leftMargin
	for _, c := range m.columns() {
		w := c.Width()
		l.xs = append(l.xs, x)
		l.widths = append(l.widths, w)
		x += w + columnGap
		l.rows = max(l.rows, c.Wheel().Config().VisibleCount)
	}
	return l
}

// columnAt returns the column under terminal column x, or -1.
func (l layout) columnAt(x int) int {
	for i, start := range l.xs {
		if x >= start && x < start+l.widths[i] {
			return i
		}
	}
	return -1
}

func (l layout) inRows(y int) bool {
	return y >= l.top && y < l.top+l.rows
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	s := m.current()
	if s == nil {
		return dimStyle.Render("Nothing to pick")
	}

	var b strings.Builder
	b.WriteString(m.viewHeader(s))
	b.WriteString("\n\n")
	b.WriteString(m.viewColumns())
	b.WriteString("\n\n")
	if sum := s.Summary(); sum != "" {
		b.WriteString(strings.Repeat(" ", leftMargin))
		b.WriteString(summaryStyle.Render(sum))
	} else {
		b.WriteString(strings.Repeat(" ", leftMargin))
		b.WriteString(dimStyle.Render("(empty)"))
	}
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %s", m.err)))
		b.WriteRune('\n')
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) viewHeader(s Screen) string {
	h := headerStyle.Render(" " + s.Title() + " ")
	if len(m.screens) > 1 {
		h += pageStyle.Render(fmt.Sprintf("  %d/%d", m.page+1, len(m.screens)))
	}
	if m.unitsToggle {
		h += pageStyle.Render("  " + string(m.units))
	}
	return h
}

func (m Model) viewColumns() string {
	cols := m.columns()
	if len(cols) == 0 {
		return ""
	}
	blocks := make([]string, 0, 2*len(cols)+1)
	blocks = append(blocks, strings.Repeat(" ", leftMargin))
	for i, c := range cols {
		if i > 0 {
			blocks = append(blocks, strings.Repeat(" ", columnGap))
		}
		blocks = append(blocks, renderColumn(c, i == m.focus))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderColumn draws the title line and one line per visible row. The band
// marks the viewport center row; labels pass under it as the wheel turns.
func renderColumn(c *Column, focused bool) string {
	w := c.Width()
	lines := make([]string, 0, c.Wheel().Config().VisibleCount+1)

	title := CenterPad(c.Title, w)
	if focused {
		lines = append(lines, focusStyle.Render(title))
	} else {
		lines = append(lines, titleStyle.Render(title))
	}

	rows := c.Rows()
	band := len(rows) / 2
	for i, r := range rows {
		text := strings.Repeat(" ", w)
		style := lipgloss.NewStyle()
		if !r.Empty {
			inner := max(1, int(math.Round(float64(w)*r.Transform.Scale)))
			text = CenterPad(MiddleTruncate(r.Label, inner), w)
			style = style.Foreground(fade(r.Transform.Opacity))
			if r.Transform.Selected {
				style = style.Bold(true)
			}
			if r.Transform.Foreshortening < faintBelow {
				style = style.Faint(true)
			}
		}
		if i == band {
			if focused {
				style = style.Inherit(focusBand)
			} else {
				style = style.Inherit(bandStyle)
			}
		}
		lines = append(lines, style.Render(text))
	}
	return strings.Join(lines, "\n")
}
