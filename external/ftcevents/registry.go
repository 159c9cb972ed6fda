package ftcevents

import (
	"hash/fnv"
	"strings"
	"sync"
)

// eventCodeSpace bounds the code part of an event id. Ids stay below 2^53
// for seasons up to 9006, so JSON clients read them exactly.
const eventCodeSpace int64 = 1_000_000_000_000

type eventKey struct {
	season int
	code   string
}

// eventRegistry maps the synthetic integer ids handed to callers back to
// the season and event code upstream understands. The season is encoded in
// the id itself; the code is recovered by listing that season's events.
type eventRegistry struct {
	mu       sync.RWMutex
	byID     map[int]eventKey
	complete map[int]bool
}

func newEventRegistry() *eventRegistry {
	return &eventRegistry{
		byID:     make(map[int]eventKey),
		complete: make(map[int]bool),
	}
}

func (r *eventRegistry) register(season int, code string) int {
	code = strings.ToUpper(strings.TrimSpace(code))
	id := eventID(season, code)

	r.mu.Lock()
	r.byID[id] = eventKey{season: season, code: code}
	r.mu.Unlock()
	return id
}

func (r *eventRegistry) lookup(id int) (eventKey, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.byID[id]
	return key, ok
}

// markComplete records that every event of season has been registered.
func (r *eventRegistry) markComplete(season int) {
	r.mu.Lock()
	r.complete[season] = true
	r.mu.Unlock()
}

func (r *eventRegistry) isComplete(season int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.complete[season]
}

func eventID(season int, code string) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(code))
	return int(int64(season)*eventCodeSpace + int64(h.Sum64()%uint64(eventCodeSpace)))
}

// seasonOfEventID returns the season encoded in id.
func seasonOfEventID(id int) int {
	if id <= 0 {
		return 0
	}
	return int(int64(id) / eventCodeSpace)
}
