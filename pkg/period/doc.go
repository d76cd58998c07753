// Package period maps a point in time to the canonical accounting window used
// by usage counters.
//
// Three periods are supported: Lifetime, Weekly and Monthly. Lifetime windows
// all start at Epoch and never end; monthly windows start on the first instant
// of the calendar month; weekly windows start on Monday at midnight. Window
// boundaries are computed in the location of the supplied time, so callers
// should use one location across the whole system (UTC is the default in
// svc/usage) or counters for the same week will land on different rows.
//
// Basic usage:
//
//	w := period.WindowAt(period.Weekly, time.Now().UTC())
//	fmt.Println(w.Start, *w.End)
package period
