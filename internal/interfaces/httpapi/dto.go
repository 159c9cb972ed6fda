package httpapi

import (
	"sort"
	"time"

	"github.com/riskibarqy/robo-companion/internal/domain/award"
	"github.com/riskibarqy/robo-companion/internal/domain/event"
	"github.com/riskibarqy/robo-companion/internal/domain/match"
	"github.com/riskibarqy/robo-companion/internal/domain/program"
	"github.com/riskibarqy/robo-companion/internal/domain/ranking"
	"github.com/riskibarqy/robo-companion/internal/domain/rawdata"
	"github.com/riskibarqy/robo-companion/internal/domain/season"
	"github.com/riskibarqy/robo-companion/internal/domain/team"
	"github.com/riskibarqy/robo-companion/internal/platform/cache"
	"github.com/riskibarqy/robo-companion/internal/usecase"
)

type programDTO struct {
	ID                       int      `json:"id"`
	Code                     string   `json:"code"`
	Name                     string   `json:"name"`
	Family                   string   `json:"family"`
	Grades                   []string `json:"grades"`
	SupportsSecondaryRanking bool     `json:"supports_secondary_ranking"`
	LimitedMode              bool     `json:"limited_mode"`
}

type seasonDTO struct {
	ID        int    `json:"id"`
	ProgramID int    `json:"program_id"`
	Name      string `json:"name"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	YearStart int    `json:"year_start"`
	YearEnd   int    `json:"year_end"`
	Current   bool   `json:"current"`
}

type locationDTO struct {
	Venue    string `json:"venue,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`
	Country  string `json:"country,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

type divisionDTO struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type sessionDTO struct {
	OriginalEventID int    `json:"original_event_id"`
	OriginalSKU     string `json:"original_sku"`
	Number          int    `json:"number"`
	Total           int    `json:"total"`
}

type eventDTO struct {
	ID          int                    `json:"id"`
	UIID        string                 `json:"ui_id"`
	SKU         string                 `json:"sku"`
	Name        string                 `json:"name"`
	Start       string                 `json:"start,omitempty"`
	End         string                 `json:"end,omitempty"`
	SeasonID    int                    `json:"season_id"`
	ProgramID   int                    `json:"program_id"`
	ProgramCode string                 `json:"program_code"`
	Level       string                 `json:"level,omitempty"`
	Location    locationDTO            `json:"location"`
	Locations   map[string]locationDTO `json:"locations,omitempty"`
	Divisions   []divisionDTO          `json:"divisions"`
	Session     *sessionDTO            `json:"session,omitempty"`
}

type eventDetailDTO struct {
	Event    eventDTO   `json:"event"`
	IsLeague bool       `json:"is_league"`
	Sessions []eventDTO `json:"sessions"`
}

type teamRefDTO struct {
	ID     int    `json:"id"`
	Number string `json:"number,omitempty"`
	Name   string `json:"name,omitempty"`
}

type teamDTO struct {
	ID           int    `json:"id"`
	Number       string `json:"number"`
	Name         string `json:"name"`
	RobotName    string `json:"robot_name,omitempty"`
	Organization string `json:"organization,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region,omitempty"`
	Country      string `json:"country,omitempty"`
	ProgramID    int    `json:"program_id"`
	Grade        string `json:"grade,omitempty"`
	Registered   bool   `json:"registered"`
}

type allianceDTO struct {
	Color string       `json:"color"`
	Score *int         `json:"score"`
	Teams []teamRefDTO `json:"teams"`
}

type matchDTO struct {
	ID         int           `json:"id"`
	EventID    int           `json:"event_id"`
	DivisionID int           `json:"division_id"`
	Name       string        `json:"name"`
	Round      int           `json:"round"`
	Instance   int           `json:"instance"`
	Number     int           `json:"number"`
	Field      string        `json:"field,omitempty"`
	Scheduled  string        `json:"scheduled,omitempty"`
	Started    bool          `json:"started"`
	StartedAt  string        `json:"started_at,omitempty"`
	Alliances  []allianceDTO `json:"alliances"`
}

type rankingDTO struct {
	Rank          int        `json:"rank"`
	Team          teamRefDTO `json:"team"`
	Wins          int        `json:"wins"`
	Losses        int        `json:"losses"`
	Ties          int        `json:"ties"`
	WP            int        `json:"wp"`
	AP            int        `json:"ap"`
	SP            int        `json:"sp"`
	HighScore     int        `json:"high_score"`
	AveragePoints float64    `json:"average_points"`
	TotalPoints   int        `json:"total_points"`
}

type skillDTO struct {
	Rank             int        `json:"rank"`
	Team             teamRefDTO `json:"team"`
	Organization     string     `json:"organization,omitempty"`
	Region           string     `json:"region,omitempty"`
	Country          string     `json:"country,omitempty"`
	Grade            string     `json:"grade"`
	Score            int        `json:"score"`
	ProgrammingScore int        `json:"programming_score"`
	DriverScore      int        `json:"driver_score"`
}

type awardDTO struct {
	ID             int          `json:"id"`
	Title          string       `json:"title"`
	Order          int          `json:"order"`
	Qualifications []string     `json:"qualifications"`
	Teams          []teamRefDTO `json:"teams"`
	Individuals    []string     `json:"individuals"`
}

type liveResolutionDTO struct {
	Outcome    string                    `json:"outcome"`
	Reason     string                    `json:"reason"`
	Event      *eventDTO                 `json:"event,omitempty"`
	Candidates []usecase.CandidateReport `json:"candidates"`
}

type upstreamStatusDTO struct {
	Adapter                string `json:"adapter"`
	InFailure              bool   `json:"in_failure"`
	ShouldShowNotification bool   `json:"should_show_notification"`
	Message                string `json:"message,omitempty"`
}

type cacheEntryDTO struct {
	Cache     string `json:"cache"`
	Key       string `json:"key"`
	State     string `json:"state"`
	Items     int    `json:"items"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type archiveStatsDTO struct {
	Source      string `json:"source"`
	Payloads    int64  `json:"payloads"`
	LastFetched string `json:"last_fetched,omitempty"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}

func programToDTO(p program.Descriptor) programDTO {
	grades := make([]string, 0, len(p.Grades))
	for _, grade := range p.Grades {
		grades = append(grades, string(grade))
	}
	return programDTO{
		ID:                       p.ID,
		Code:                     p.Code,
		Name:                     p.Name,
		Family:                   string(p.Family),
		Grades:                   grades,
		SupportsSecondaryRanking: p.SupportsSecondaryRanking,
		LimitedMode:              p.LimitedMode,
	}
}

func seasonToDTO(s season.Season, currentID int) seasonDTO {
	return seasonDTO{
		ID:        s.ID,
		ProgramID: s.ProgramID,
		Name:      s.Name,
		Start:     formatTime(s.Start),
		End:       formatTime(s.End),
		YearStart: s.YearStart,
		YearEnd:   s.YearEnd,
		Current:   s.ID == currentID,
	}
}

func locationToDTO(l event.Location) locationDTO {
	return locationDTO(l)
}

func eventToDTO(e event.Event) eventDTO {
	out := eventDTO{
		ID:          e.ID,
		UIID:        e.UIID(),
		SKU:         e.SKU,
		Name:        e.Name,
		Start:       formatTime(e.Start),
		End:         formatTime(e.End),
		SeasonID:    e.SeasonID,
		ProgramID:   e.ProgramID,
		ProgramCode: e.ProgramCode,
		Level:       e.Level,
		Location:    locationToDTO(e.Location),
		Divisions:   make([]divisionDTO, 0, len(e.Divisions)),
	}
	if len(e.Locations) > 0 {
		out.Locations = make(map[string]locationDTO, len(e.Locations))
		for day, location := range e.Locations {
			out.Locations[day] = locationToDTO(location)
		}
	}
	for _, division := range e.Divisions {
		out.Divisions = append(out.Divisions, divisionDTO(division))
	}
	if e.Session != nil {
		out.Session = &sessionDTO{
			OriginalEventID: e.Session.OriginalEventID,
			OriginalSKU:     e.Session.OriginalSKU,
			Number:          e.Session.Number,
			Total:           e.Session.Total,
		}
	}
	return out
}

func eventsToDTO(items []event.Event) []eventDTO {
	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventToDTO(item))
	}
	return out
}

func teamRefToDTO(ref team.Ref) teamRefDTO {
	return teamRefDTO(ref)
}

func teamRefsToDTO(refs []team.Ref) []teamRefDTO {
	out := make([]teamRefDTO, 0, len(refs))
	for _, ref := range refs {
		out = append(out, teamRefToDTO(ref))
	}
	return out
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:           t.ID,
		Number:       t.Number,
		Name:         t.Name,
		RobotName:    t.RobotName,
		Organization: t.Organization,
		City:         t.City,
		Region:       t.Region,
		Country:      t.Country,
		ProgramID:    t.ProgramID,
		Grade:        string(t.Grade),
		Registered:   t.Registered,
	}
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:         m.ID,
		EventID:    m.EventID,
		DivisionID: m.DivisionID,
		Name:       m.Name,
		Round:      m.Round,
		Instance:   m.Instance,
		Number:     m.Number,
		Field:      m.Field,
		Scheduled:  formatOptionalTime(m.Scheduled),
		Started:    m.Started,
		StartedAt:  formatOptionalTime(m.StartedAt),
		Alliances:  make([]allianceDTO, 0, len(m.Alliances)),
	}
	for _, alliance := range m.Alliances {
		out.Alliances = append(out.Alliances, allianceDTO{
			Color: alliance.Color,
			Score: alliance.Score,
			Teams: teamRefsToDTO(alliance.Teams),
		})
	}
	return out
}

func rankingToDTO(r ranking.Ranking) rankingDTO {
	return rankingDTO{
		Rank:          r.Rank,
		Team:          teamRefToDTO(r.Team),
		Wins:          r.Wins,
		Losses:        r.Losses,
		Ties:          r.Ties,
		WP:            r.WP,
		AP:            r.AP,
		SP:            r.SP,
		HighScore:     r.HighScore,
		AveragePoints: r.AveragePoints,
		TotalPoints:   r.TotalPoints,
	}
}

func skillToDTO(s ranking.SkillRecord) skillDTO {
	return skillDTO{
		Rank:             s.Rank,
		Team:             teamRefToDTO(s.Team),
		Organization:     s.Organization,
		Region:           s.Region,
		Country:          s.Country,
		Grade:            string(s.Grade),
		Score:            s.Score,
		ProgrammingScore: s.ProgrammingScore,
		DriverScore:      s.DriverScore,
	}
}

func awardToDTO(a award.Award) awardDTO {
	return awardDTO{
		ID:             a.ID,
		Title:          a.Title,
		Order:          a.Order,
		Qualifications: nonNilStrings(a.Qualifications),
		Teams:          teamRefsToDTO(a.Teams),
		Individuals:    nonNilStrings(a.Individuals),
	}
}

func liveResolutionToDTO(res usecase.LiveResolution) liveResolutionDTO {
	out := liveResolutionDTO{
		Outcome:    string(res.Outcome),
		Reason:     res.Reason,
		Candidates: res.Candidates,
	}
	if out.Candidates == nil {
		out.Candidates = []usecase.CandidateReport{}
	}
	if res.Outcome != usecase.LiveOutcomeNoLiveEvent {
		item := eventToDTO(res.Event)
		out.Event = &item
	}
	return out
}

func upstreamStatusToDTO(status map[string]usecase.FailureInfo) []upstreamStatusDTO {
	out := make([]upstreamStatusDTO, 0, len(status))
	for name, info := range status {
		out = append(out, upstreamStatusDTO{
			Adapter:                name,
			InFailure:              info.InFailure,
			ShouldShowNotification: info.ShouldShowNotification,
			Message:                info.Message,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Adapter < out[j].Adapter })
	return out
}

func cacheEntriesToDTO(entries map[string][]cache.EntryInfo) []cacheEntryDTO {
	out := make([]cacheEntryDTO, 0)
	for name, items := range entries {
		for _, item := range items {
			out = append(out, cacheEntryDTO{
				Cache:     name,
				Key:       item.Key.String(),
				State:     item.State.String(),
				Items:     item.Items,
				UpdatedAt: formatTime(item.UpdatedAt),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cache != out[j].Cache {
			return out[i].Cache < out[j].Cache
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func archiveStatsToDTO(stats []rawdata.SourceStats) []archiveStatsDTO {
	out := make([]archiveStatsDTO, 0, len(stats))
	for _, item := range stats {
		out = append(out, archiveStatsDTO{
			Source:      item.Source,
			Payloads:    item.Payloads,
			LastFetched: formatTime(item.LastFetched),
		})
	}
	return out
}

func nonNilStrings(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
