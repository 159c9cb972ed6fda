package match

import "time"

// ReportsPlayed is true when upstream marked the match started and published
// a meaningful score: at least one positive score, or scores that are not
// uniformly zero/null.
func (m Match) ReportsPlayed() bool {
	if !m.Started {
		return false
	}
	return hasPositiveScore(m.Alliances) || !uniformlyZeroOrNull(m.Alliances)
}

// ClassifyPlayed returns one flag per match. A match counts as played when it
// reports itself played, or when any later-numbered match in the same
// division has been scored.
//
// Known misclassification: the second rule also marks a cancelled or skipped
// match as played once any later match in its division is scored.
func ClassifyPlayed(matches []Match) []bool {
	latestScored := make(map[int]int, 4)
	for _, m := range matches {
		if !m.Scored() {
			continue
		}
		if ordinal := m.Ordinal(); ordinal > latestScored[m.DivisionID] {
			latestScored[m.DivisionID] = ordinal
		}
	}

	out := make([]bool, len(matches))
	for i, m := range matches {
		out[i] = m.ReportsPlayed() || m.Ordinal() < latestScored[m.DivisionID]
	}
	return out
}

// Summary counts match completion for one event.
type Summary struct {
	Total       int
	Played      int
	ActiveToday int
}

func (s Summary) Complete() bool {
	return s.Total > 0 && s.Played == s.Total
}

// Summarize classifies matches and counts the unplayed ones that are either
// scheduled on the day of now or carry no schedule at all.
func Summarize(matches []Match, now time.Time) Summary {
	played := ClassifyPlayed(matches)
	out := Summary{Total: len(matches)}
	for i, m := range matches {
		if played[i] {
			out.Played++
			continue
		}
		if m.Scheduled == nil || m.ScheduledOn(now) {
			out.ActiveToday++
		}
	}
	return out
}

func hasPositiveScore(alliances []Alliance) bool {
	for _, alliance := range alliances {
		if alliance.Score != nil && *alliance.Score > 0 {
			return true
		}
	}
	return false
}

func uniformlyZeroOrNull(alliances []Alliance) bool {
	for _, alliance := range alliances {
		if alliance.Score != nil && *alliance.Score != 0 {
			return false
		}
	}
	return true
}
