package schedule

import (
	"sync"
	"time"
)

type State string

const (
	// StateIdle means no API key or no channels are configured; nothing
	// was fetched and nothing is an error.
	StateIdle State = "idle"
	StateOK   State = "ok"
)

// Result is one completed refresh cycle's full output. Results are swapped
// in wholesale; entries from different cycles are never mixed.
type Result struct {
	State       State          `json:"state"`
	Entries     []Entry        `json:"entries"` // filtered and sorted
	Days        []DaySection   `json:"days"`
	Errors      []ChannelError `json:"errors"`
	Timezone    string         `json:"timezone"`
	RefreshedAt time.Time      `json:"refreshedAt"`
}

// ResultStore holds the latest published cycle result. StartCycle hands
// out monotonically increasing sequence numbers and Publish refuses
// results carrying an older sequence than one already applied, so a slow
// in-flight cycle cannot overwrite fresher data after overlapping refreshes.
type ResultStore struct {
	mu        sync.RWMutex
	started   uint64
	published uint64
	result    Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{
		result: Result{State: StateIdle},
	}
}

// StartCycle registers a new cycle and returns its sequence number.
func (s *ResultStore) StartCycle() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	return s.started
}

// Publish applies a cycle's result unless a newer cycle already published.
// Reports whether the result was applied.
func (s *ResultStore) Publish(seq uint64, result Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.published {
		return false
	}
	s.published = seq
	s.result = result
	return true
}

// Latest returns the most recently published result. The contained slices
// are read-only by convention; cycles always build fresh ones.
func (s *ResultStore) Latest() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}
