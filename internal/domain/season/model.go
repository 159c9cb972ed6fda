package season

import "time"

// Season is one yearly competition cycle of a program.
type Season struct {
	ID        int
	ProgramID int
	Name      string
	Start     time.Time
	End       time.Time
	YearStart int
	YearEnd   int
}

// Covers reports whether at falls inside the season window.
func (s Season) Covers(at time.Time) bool {
	if s.Start.IsZero() || s.End.IsZero() {
		return false
	}
	return !at.Before(s.Start) && !at.After(s.End)
}

// Current picks the season covering now, else the one that started most
// recently before now. It returns false when seasons is empty.
func Current(seasons []Season, now time.Time) (Season, bool) {
	var (
		best  Season
		found bool
	)
	for _, item := range seasons {
		if item.Covers(now) {
			return item, true
		}
		if item.Start.After(now) {
			continue
		}
		if !found || item.Start.After(best.Start) {
			best = item
			found = true
		}
	}
	if found {
		return best, true
	}
	for _, item := range seasons {
		if !found || item.ID > best.ID {
			best = item
			found = true
		}
	}
	return best, found
}
