package robotevents

type pageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

type pageEnvelope[T any] struct {
	Meta pageMeta `json:"meta"`
	Data []T      `json:"data"`
}

type idRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type apiSeason struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Program    idRef  `json:"program"`
	Start      string `json:"start"`
	End        string `json:"end"`
	YearsStart int    `json:"years_start"`
	YearsEnd   int    `json:"years_end"`
}

type apiLocation struct {
	Venue    string `json:"venue"`
	Address1 string `json:"address_1"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type apiDivision struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type apiEvent struct {
	ID        int                    `json:"id"`
	SKU       string                 `json:"sku"`
	Name      string                 `json:"name"`
	Start     string                 `json:"start"`
	End       string                 `json:"end"`
	Season    idRef                  `json:"season"`
	Program   idRef                  `json:"program"`
	Location  apiLocation            `json:"location"`
	Locations map[string]apiLocation `json:"locations"`
	Divisions []apiDivision          `json:"divisions"`
	Level     string                 `json:"level"`
}

type apiTeam struct {
	ID           int         `json:"id"`
	Number       string      `json:"number"`
	TeamName     string      `json:"team_name"`
	RobotName    string      `json:"robot_name"`
	Organization string      `json:"organization"`
	Location     apiLocation `json:"location"`
	Registered   bool        `json:"registered"`
	Program      idRef       `json:"program"`
	Grade        string      `json:"grade"`
}

type apiAllianceTeam struct {
	Team    idRef `json:"team"`
	Sitting bool  `json:"sitting"`
}

type apiAlliance struct {
	Color string            `json:"color"`
	Score *int              `json:"score"`
	Teams []apiAllianceTeam `json:"teams"`
}

type apiMatch struct {
	ID        int           `json:"id"`
	Event     idRef         `json:"event"`
	Division  idRef         `json:"division"`
	Round     int           `json:"round"`
	Instance  int           `json:"instance"`
	MatchNum  int           `json:"matchnum"`
	Scheduled *string       `json:"scheduled"`
	Started   *string       `json:"started"`
	Field     string        `json:"field"`
	Scored    bool          `json:"scored"`
	Name      string        `json:"name"`
	Alliances []apiAlliance `json:"alliances"`
}

type apiRanking struct {
	ID            int     `json:"id"`
	Event         idRef   `json:"event"`
	Division      idRef   `json:"division"`
	Rank          int     `json:"rank"`
	Team          idRef   `json:"team"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	WP            int     `json:"wp"`
	AP            int     `json:"ap"`
	SP            int     `json:"sp"`
	HighScore     int     `json:"high_score"`
	AveragePoints float64 `json:"average_points"`
	TotalPoints   int     `json:"total_points"`
}

type apiTeamWinner struct {
	Division idRef `json:"division"`
	Team     idRef `json:"team"`
}

type apiAward struct {
	ID                int             `json:"id"`
	Event             idRef           `json:"event"`
	Order             int             `json:"order"`
	Title             string          `json:"title"`
	Qualifications    []string        `json:"qualifications"`
	TeamWinners       []apiTeamWinner `json:"teamWinners"`
	IndividualWinners []string        `json:"individualWinners"`
}

// The skills leaderboard lives outside the versioned API and is not paged.
type apiSkillEntry struct {
	Rank   int            `json:"rank"`
	Team   apiSkillTeam   `json:"team"`
	Scores apiSkillScores `json:"scores"`
}

type apiSkillTeam struct {
	ID           int    `json:"id"`
	Team         string `json:"team"`
	TeamName     string `json:"teamName"`
	Organization string `json:"organization"`
	Region       string `json:"region"`
	Country      string `json:"country"`
	GradeLevel   string `json:"gradeLevel"`
}

type apiSkillScores struct {
	Score          int `json:"score"`
	Programming    int `json:"programming"`
	Driver         int `json:"driver"`
	ProgStopTime   int `json:"progStopTime"`
	DriverStopTime int `json:"driverStopTime"`
}
