package event

import "time"

// LiveCandidates expands league events and keeps every event or session whose
// calendar days include now. Day boundaries follow the time zone of each
// item's start.
func LiveCandidates(events []Event, now time.Time) []Event {
	out := make([]Event, 0, len(events))
	for _, item := range events {
		for _, expanded := range Expand(item) {
			if coversDay(expanded, now) {
				out = append(out, expanded)
			}
		}
	}
	return out
}

// StartedOn reports whether e starts on the calendar day of at.
func StartedOn(e Event, at time.Time) bool {
	if e.Start.IsZero() {
		return false
	}
	return SameDay(e.Start, at.In(e.Start.Location()))
}

func SameDay(left, right time.Time) bool {
	ly, lm, ld := left.Date()
	ry, rm, rd := right.Date()
	return ly == ry && lm == rm && ld == rd
}

func coversDay(e Event, now time.Time) bool {
	if e.Start.IsZero() {
		return false
	}
	loc := e.Start.Location()
	today := startOfDay(now.In(loc))
	first := startOfDay(e.Start)
	last := first
	if !e.End.IsZero() {
		last = startOfDay(e.End.In(loc))
	}
	return !today.Before(first) && !today.After(last)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
