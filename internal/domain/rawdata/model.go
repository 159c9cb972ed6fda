package rawdata

import "time"

// Payload is one raw upstream response body kept for audit.
type Payload struct {
	Source      string
	EntityType  string
	EntityKey   string
	ProgramID   int
	PayloadJSON string
	PayloadHash string
	FetchedAt   time.Time
}

// SourceStats summarizes what is archived for one upstream source.
type SourceStats struct {
	Source      string
	Payloads    int64
	LastFetched time.Time
}
