package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// Second is one second in document time units (microseconds).
const Second int64 = 1_000_000

// DefaultMinDuration is the shortest time an image stays on screen.
const DefaultMinDuration = 5 * Second

// ErrInvalidDuration is returned for a non-positive minimum duration.
var ErrInvalidDuration = errors.New("minimum duration must be positive")

// Window is an allocated interval for one image segment.
type Window struct {
	Start    int64 `yaml:"start"`
	Duration int64 `yaml:"duration"`
}

func (w Window) End() int64 {
	return w.Start + w.Duration
}

// Allocate turns anchor start times into one window per anchor, or a single
// default window when there are none.
//
// Each window starts where the previous one ended and lasts until the first
// anchor at least minDuration away, or exactly minDuration when no such
// anchor exists. Anchors closer together than minDuration are skipped over,
// so with dense subtitles later windows run past the anchors they were
// counted for.
func Allocate(anchors []int64, minDuration int64) ([]Window, error) {
	if minDuration <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, minDuration)
	}
	if len(anchors) == 0 {
		return []Window{{Start: 0, Duration: minDuration}}, nil
	}

	sorted := make([]int64, len(anchors))
	copy(sorted, anchors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	windows := make([]Window, 0, len(sorted))
	var cursor int64
	for range sorted {
		duration := minDuration
		if next, ok := nextAnchor(sorted, cursor+minDuration); ok {
			duration = next - cursor
		}
		windows = append(windows, Window{Start: cursor, Duration: duration})
		cursor += duration
	}
	return windows, nil
}

// nextAnchor finds the smallest anchor >= floor in an ascending slice.
func nextAnchor(sorted []int64, floor int64) (int64, bool) {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] >= floor })
	if i == len(sorted) {
		return 0, false
	}
	return sorted[i], true
}

// TotalDuration is the end of the last window.
func TotalDuration(windows []Window) int64 {
	if len(windows) == 0 {
		return 0
	}
	return windows[len(windows)-1].End()
}
