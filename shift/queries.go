/*
queries.go - Read-side helpers over the shift collection

Pure filters backing the home/agenda views: the next shift in line, the
upcoming queue, and the agenda/history partition. All of them take the
collection as loaded from the store (ascending by start) and never mutate.
*/
package shift

import (
	"sort"
	"time"
)

// Next returns the first future shift still owned by the user (swapped-out
// shifts no longer belong on the queue). ok is false when the agenda is
// clear.
func Next(shifts []Shift, now time.Time) (Shift, bool) {
	for _, s := range sortedByStart(shifts) {
		if s.Start.After(now) && s.Status != StatusSwappedOut {
			return s, true
		}
	}
	return Shift{}, false
}

// Upcoming returns up to limit future shifts after the next one - the
// "following in line" list under the headline card.
func Upcoming(shifts []Shift, now time.Time, limit int) []Shift {
	var future []Shift
	for _, s := range sortedByStart(shifts) {
		if s.Start.After(now) && s.Status != StatusSwappedOut {
			future = append(future, s)
		}
	}
	if len(future) <= 1 {
		return nil
	}
	future = future[1:]
	if len(future) > limit {
		future = future[:limit]
	}
	return future
}

// Agenda returns the open forward-looking entries: not yet started, not
// marked done, not given away. Ascending by start.
func Agenda(shifts []Shift, now time.Time) []Shift {
	var out []Shift
	for _, s := range sortedByStart(shifts) {
		if !s.Start.Before(now) && !s.IsWorkDone && s.Status != StatusSwappedOut {
			out = append(out, s)
		}
	}
	return out
}

// History returns everything already lived through or otherwise resolved:
// past start, user-asserted done, or either swap direction. Descending by
// start (most recent first).
func History(shifts []Shift, now time.Time) []Shift {
	var out []Shift
	for _, s := range shifts {
		if s.Start.Before(now) || s.IsWorkDone || s.Status.IsSwap() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out
}

func sortedByStart(shifts []Shift) []Shift {
	out := make([]Shift, len(shifts))
	copy(out, shifts)
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
