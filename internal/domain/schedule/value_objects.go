package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidWindow      = errors.New("window start must be before end within one day")
	ErrOverlappingWindows = errors.New("windows within a day must not overlap")
)

// Window is one bookable range of wall-clock minutes within a local day.
// 540-1020 means 09:00-17:00 in the schedule timezone, whatever UTC
// offset that day happens to carry.
type Window struct {
	startMin int
	endMin   int
}

func NewWindow(startMin, endMin int) (Window, error) {
	if startMin < 0 || endMin > minutesPerDay || startMin >= endMin {
		return Window{}, ErrInvalidWindow
	}
	return Window{startMin: startMin, endMin: endMin}, nil
}

func (w Window) StartMinute() int { return w.startMin }
func (w Window) EndMinute() int   { return w.endMin }

func (w Window) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d",
		w.startMin/60, w.startMin%60, w.endMin/60, w.endMin%60)
}

// WeeklyWindows maps a weekday to its non-overlapping, ascending windows.
type WeeklyWindows map[time.Weekday][]Window

func NewWeeklyWindows(byDay map[time.Weekday][]Window) (WeeklyWindows, error) {
	out := make(WeeklyWindows, len(byDay))
	for day, windows := range byDay {
		if len(windows) == 0 {
			continue
		}
		sorted := make([]Window, len(windows))
		copy(sorted, windows)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].startMin < sorted[j].startMin })
		for i := 1; i < len(sorted); i++ {
			if sorted[i].startMin < sorted[i-1].endMin {
				return nil, ErrOverlappingWindows
			}
		}
		out[day] = sorted
	}
	return out, nil
}

// ForDay returns the windows for a weekday, ascending. Nil when the day
// is fully unavailable.
func (ww WeeklyWindows) ForDay(day time.Weekday) []Window {
	return ww[day]
}
