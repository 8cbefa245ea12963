package schedule

import (
	"sort"
	"time"
)

// Past entries older than this are dropped regardless of the look-ahead
// setting. A fixed design constant, not derived from the look-ahead.
const pastHorizon = 72 * time.Hour

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run keeps live entries unconditionally, upcoming entries whose start time
// is within the look-ahead horizon and past entries within the fixed
// trailing window, then sorts ascending by start time. The sort is stable:
// entries sharing a start time keep their input order.
func (f *Filterer) Run(entries []Entry, now time.Time, lookAheadHours int) []Entry {
	cutoff := now.Add(time.Duration(lookAheadHours) * time.Hour)
	oldest := now.Add(-pastHorizon)

	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		switch entry.Status {
		case StatusLive:
			kept = append(kept, entry)
		case StatusUpcoming:
			if !entry.StartTime.After(cutoff) {
				kept = append(kept, entry)
			}
		default:
			if !entry.StartTime.Before(oldest) {
				kept = append(kept, entry)
			}
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].StartTime.Before(kept[j].StartTime)
	})

	return kept
}
