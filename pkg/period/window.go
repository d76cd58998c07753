package period

import "time"

// Epoch is the period start shared by every lifetime counter.
var Epoch = time.Unix(0, 0).UTC()

// Window is a canonical accounting window. Every timestamp inside the same
// window maps to the same Start, so counters keyed by Start never fragment.
type Window struct {
	Period Period
	Start  time.Time
	End    *time.Time // nil for lifetime
}

// WindowAt returns the window of period p that contains now.
func WindowAt(p Period, now time.Time) Window {
	start := Start(p, now)
	return Window{
		Period: p,
		Start:  start,
		End:    End(p, start),
	}
}

// Start returns the first instant of the period containing now.
// Weeks start on Monday at local midnight of now's location.
func Start(p Period, now time.Time) time.Time {
	switch p {
	case Monthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case Weekly:
		// time.Weekday is Sunday-first; shift so Monday is 0.
		offset := (int(now.Weekday()) + 6) % 7
		day := now.AddDate(0, 0, -offset)
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	default:
		return Epoch
	}
}

// End returns the last instant of the period that begins at start,
// or nil for lifetime periods.
func End(p Period, start time.Time) *time.Time {
	var end time.Time
	switch p {
	case Monthly:
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	case Weekly:
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	default:
		return nil
	}
	return &end
}

// Next returns the start of the window following the one that contains now.
// Lifetime windows never roll over, so the zero time is returned.
func Next(p Period, now time.Time) time.Time {
	switch p {
	case Monthly:
		return Start(p, now).AddDate(0, 1, 0)
	case Weekly:
		return Start(p, now).AddDate(0, 0, 7)
	default:
		return time.Time{}
	}
}
