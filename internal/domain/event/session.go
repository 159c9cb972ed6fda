package event

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	dateKeyLayout    = "2006-01-02"
	sessionStartHour = 9
	sessionEndHour   = 17
)

var sessionSuffixRegex = regexp.MustCompile(`\s+-\s+Session\s+\d+$`)

// Expand turns a league event into one pseudo-event per competition date,
// numbered from 1 in ascending date order. Events with at most one valid
// date are returned unchanged as a single-element list.
//
// Session times are 09:00-17:00 in the time zone of the event start, or
// time.Local when the event carries no start.
func Expand(e Event) []Event {
	if len(e.Locations) <= 1 {
		return []Event{normalizeProgram(e)}
	}

	loc := e.Start.Location()
	if e.Start.IsZero() {
		loc = time.Local
	}

	type datedLocation struct {
		day      time.Time
		key      string
		location Location
	}
	dates := make([]datedLocation, 0, len(e.Locations))
	for key, location := range e.Locations {
		day, ok := parseDateKey(key, loc)
		if !ok {
			continue
		}
		dates = append(dates, datedLocation{day: day, key: key, location: location})
	}
	if len(dates) <= 1 {
		return []Event{normalizeProgram(e)}
	}
	sort.Slice(dates, func(i, j int) bool {
		if !dates[i].day.Equal(dates[j].day) {
			return dates[i].day.Before(dates[j].day)
		}
		return dates[i].key < dates[j].key
	})

	total := len(dates)
	out := make([]Event, 0, total)
	for i, item := range dates {
		number := i + 1
		session := normalizeProgram(e)
		session.Name = e.Name + " - Session " + strconv.Itoa(number)
		session.Start = atHour(item.day, sessionStartHour)
		session.End = atHour(item.day, sessionEndHour)
		session.Location = item.location
		session.Locations = nil
		session.Session = &Session{
			OriginalEventID: e.ID,
			OriginalSKU:     e.SKU,
			Number:          number,
			Total:           total,
			UIID:            strconv.Itoa(e.ID) + "-session-" + strconv.Itoa(number),
		}
		out = append(out, session)
	}

	return out
}

// Collapse maps a session back to its parent league event so favourites are
// stored once per league. Non-session events are returned unchanged.
func Collapse(e Event) Event {
	if e.Session == nil {
		return e
	}

	out := e
	out.ID = e.Session.OriginalEventID
	out.SKU = e.Session.OriginalSKU
	out.Name = StripSessionSuffix(e.Name)
	out.Session = nil
	return out
}

func StripSessionSuffix(name string) string {
	return sessionSuffixRegex.ReplaceAllString(strings.TrimSpace(name), "")
}

// atHour returns the wall-clock hour on day in day's location.
func atHour(day time.Time, hour int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, day.Location())
}

func parseDateKey(key string, loc *time.Location) (time.Time, bool) {
	key = strings.TrimSpace(key)
	if len(key) < len(dateKeyLayout) {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(dateKeyLayout, key[:len(dateKeyLayout)], loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

func normalizeProgram(e Event) Event {
	e.ProgramCode = strings.ToUpper(strings.TrimSpace(e.ProgramCode))
	if e.Divisions != nil {
		e.Divisions = append([]Division(nil), e.Divisions...)
	}
	return e
}
