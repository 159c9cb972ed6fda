package event

import (
	"strconv"
	"time"
)

type Division struct {
	ID    int
	Name  string
	Order int
}

type Location struct {
	Venue    string
	Address  string
	City     string
	Region   string
	Country  string
	Postcode string
}

// Event is one competition. A league event carries more than one entry in
// Locations, keyed by calendar date (YYYY-MM-DD).
type Event struct {
	ID          int
	SKU         string
	Name        string
	Start       time.Time
	End         time.Time
	SeasonID    int
	ProgramID   int
	ProgramCode string
	Level       string
	Location    Location
	Locations   map[string]Location
	Divisions   []Division
	Session     *Session
}

// Session is set on pseudo-events derived from one date of a league event.
type Session struct {
	OriginalEventID int
	OriginalSKU     string
	Number          int
	Total           int
	UIID            string
}

func (e Event) IsSession() bool {
	return e.Session != nil
}

func (e Event) IsLeague() bool {
	return len(e.Locations) > 1
}

// SourceID is the upstream event id that owns matches, rankings and awards.
func (e Event) SourceID() int {
	if e.Session != nil {
		return e.Session.OriginalEventID
	}
	return e.ID
}

// UIID is unique per rendered item, including every session of a league.
func (e Event) UIID() string {
	if e.Session != nil {
		return e.Session.UIID
	}
	return strconv.Itoa(e.ID)
}
