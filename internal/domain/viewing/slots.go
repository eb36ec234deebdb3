package viewing

import (
	"time"

	"github.com/BruksfildServices01/rental-platform/internal/models"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func NewWindow(start time.Time, minutes int) Window {
	return Window{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

func WindowOf(v models.ViewingSchedule) Window {
	return NewWindow(v.ScheduledDate, v.DurationMinutes)
}

func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Grid is the daily candidate grid for an agent's viewings.
type Grid struct {
	Location *time.Location
	DayStart string
	DayEnd   string
	Step     time.Duration
	Buffer   time.Duration
}

func DefaultGrid() Grid {
	return Grid{
		Location: time.UTC,
		DayStart: "09:00",
		DayEnd:   "18:00",
		Step:     30 * time.Minute,
		Buffer:   30 * time.Minute,
	}
}

// Candidates returns every start from DayStart through DayEnd inclusive.
func (g Grid) Candidates(date time.Time) ([]time.Time, error) {
	first, err := clockOn(date, g.DayStart, g.Location)
	if err != nil {
		return nil, err
	}
	last, err := clockOn(date, g.DayEnd, g.Location)
	if err != nil {
		return nil, err
	}

	var out []time.Time
	for cur := first; !cur.After(last); cur = cur.Add(g.Step) {
		out = append(out, cur)
	}
	return out, nil
}

// AvailableSlots keeps the candidates whose window overlaps none of the
// scheduled viewings. No buffer applies here.
func (g Grid) AvailableSlots(date time.Time, minutes int, scheduled []models.ViewingSchedule) ([]time.Time, error) {
	if err := ValidateDuration(minutes); err != nil {
		return nil, err
	}
	candidates, err := g.Candidates(date)
	if err != nil {
		return nil, err
	}

	busy := scheduledWindows(scheduled)
	out := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		w := NewWindow(c, minutes)
		if !overlapsAny(w, busy) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Conflicts reports whether a viewing at candidate collides with a scheduled
// one. The window is widened by Buffer on its lower side only, so an agent
// keeps Buffer free after the end of a previous viewing.
func (g Grid) Conflicts(candidate Window, scheduled []models.ViewingSchedule) bool {
	widened := Window{Start: candidate.Start.Add(-g.Buffer), End: candidate.End}
	return overlapsAny(widened, scheduledWindows(scheduled))
}

// LookbackFor is how far before candidate.Start a scheduled viewing can
// begin and still conflict.
func (g Grid) LookbackFor(candidate Window) time.Time {
	return candidate.Start.Add(-g.Buffer - MaxDurationMinutes*time.Minute)
}

func scheduledWindows(vs []models.ViewingSchedule) []Window {
	out := make([]Window, 0, len(vs))
	for _, v := range vs {
		if Status(v.ViewingStatus) != StatusScheduled {
			continue
		}
		out = append(out, WindowOf(v))
	}
	return out
}

func overlapsAny(w Window, others []Window) bool {
	for _, o := range others {
		if w.Overlaps(o) {
			return true
		}
	}
	return false
}

func clockOn(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	hm, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hm.Hour(), hm.Minute(), 0, 0, loc), nil
}
