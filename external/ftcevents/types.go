package ftcevents

type apiIndex struct {
	Name          string `json:"name"`
	APIVersion    string `json:"apiVersion"`
	CurrentSeason int    `json:"currentSeason"`
	MaxSeason     int    `json:"maxSeason"`
}

type apiEvent struct {
	Code         string `json:"code"`
	DivisionCode string `json:"divisionCode"`
	Name         string `json:"name"`
	TypeName     string `json:"typeName"`
	Venue        string `json:"venue"`
	Address      string `json:"address"`
	City         string `json:"city"`
	StateProv    string `json:"stateprov"`
	Country      string `json:"country"`
	Timezone     string `json:"timezone"`
	DateStart    string `json:"dateStart"`
	DateEnd      string `json:"dateEnd"`
	Published    bool   `json:"published"`
}

type apiEventList struct {
	Events     []apiEvent `json:"events"`
	EventCount int        `json:"eventCount"`
}

type apiTeam struct {
	TeamNumber int    `json:"teamNumber"`
	NameFull   string `json:"nameFull"`
	NameShort  string `json:"nameShort"`
	SchoolName string `json:"schoolName"`
	City       string `json:"city"`
	StateProv  string `json:"stateProv"`
	Country    string `json:"country"`
	RobotName  string `json:"robotName"`
	RookieYear int    `json:"rookieYear"`
}

// Team listings are the only paged FTC resource.
type apiTeamList struct {
	Teams          []apiTeam `json:"teams"`
	TeamCountTotal int       `json:"teamCountTotal"`
	PageCurrent    int       `json:"pageCurrent"`
	PageTotal      int       `json:"pageTotal"`
}

type apiRanking struct {
	Rank          int     `json:"rank"`
	TeamNumber    int     `json:"teamNumber"`
	TeamName      string  `json:"teamName"`
	SortOrder1    float64 `json:"sortOrder1"`
	SortOrder2    float64 `json:"sortOrder2"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	QualAverage   float64 `json:"qualAverage"`
	MatchesPlayed int     `json:"matchesPlayed"`
}

type apiRankingList struct {
	Rankings []apiRanking `json:"rankings"`
}

type apiScheduleTeam struct {
	TeamNumber int    `json:"teamNumber"`
	Station    string `json:"station"`
	Surrogate  bool   `json:"surrogate"`
	NoShow     bool   `json:"noShow"`
}

type apiScheduleMatch struct {
	Description     string            `json:"description"`
	Field           string            `json:"field"`
	TournamentLevel string            `json:"tournamentLevel"`
	Series          int               `json:"series"`
	MatchNumber     int               `json:"matchNumber"`
	StartTime       *string           `json:"startTime"`
	ActualStartTime *string           `json:"actualStartTime"`
	PostResultTime  *string           `json:"postResultTime"`
	ScoreRedFinal   *int              `json:"scoreRedFinal"`
	ScoreBlueFinal  *int              `json:"scoreBlueFinal"`
	Teams           []apiScheduleTeam `json:"teams"`
}

type apiSchedule struct {
	Schedule []apiScheduleMatch `json:"schedule"`
}

// Awards come back one row per winner.
type apiAward struct {
	AwardID    int     `json:"awardId"`
	Name       string  `json:"name"`
	Series     int     `json:"series"`
	EventCode  string  `json:"eventCode"`
	TeamNumber *int    `json:"teamNumber"`
	Person     *string `json:"person"`
}

type apiAwardList struct {
	Awards []apiAward `json:"awards"`
}
