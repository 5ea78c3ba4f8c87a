package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Source supplies the lines offered by a free-form list picker.
type Source interface {
	Lines(ctx context.Context) ([]string, error)
}

// ReaderSource reads newline separated items. Blank lines are skipped and
// labels are cleaned for display.
type ReaderSource struct {
	R io.Reader
	// Limit keeps only the last Limit lines when positive.
	Limit int
	// Unique drops repeats, keeping the last occurrence.
	Unique bool
}

var _ Source = (*ReaderSource)(nil)

// maxLineBytes bounds a single input line.
const maxLineBytes = 64 * 1024

// Lines implements Source.
func (s *ReaderSource) Lines(ctx context.Context) ([]string, error) {
	sc := bufio.NewScanner(s.R)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var lines []string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := CleanLabel(sc.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	if s.Unique {
		lines = lastOccurrences(lines)
	}
	if s.Limit > 0 && len(lines) > s.Limit {
		lines = lines[len(lines)-s.Limit:]
	}
	return lines, nil
}

// lastOccurrences removes duplicates while keeping each line at the
// position of its final appearance.
func lastOccurrences(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		if _, ok := seen[lines[i]]; ok {
			continue
		}
		seen[lines[i]] = struct{}{}
		out = append(out, lines[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}
