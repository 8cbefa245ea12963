package schedule

import (
	"time"
)

const dayKeyFormat = "2006-01-02"

// GroupByDay buckets entries by their civil date in loc, not by UTC day
// boundaries. Section order follows first appearance, which is
// chronological because the input arrives pre-sorted by start time; entries
// keep their order within a day.
func GroupByDay(entries []Entry, loc *time.Location) []DaySection {
	sections := make([]DaySection, 0)
	index := make(map[string]int)

	for _, entry := range entries {
		key := entry.StartTime.In(loc).Format(dayKeyFormat)
		i, ok := index[key]
		if !ok {
			i = len(sections)
			index[key] = i
			sections = append(sections, DaySection{
				Date:  key,
				Label: FormatDayHeader(key, loc),
			})
		}
		sections[i].Entries = append(sections[i].Entries, entry)
	}

	return sections
}

// FormatDayHeader renders a day key as a human-readable header. The key is
// interpreted as local midnight in loc so the weekday matches the civil
// date rather than its UTC equivalent.
func FormatDayHeader(dayKey string, loc *time.Location) string {
	d, err := time.ParseInLocation(dayKeyFormat, dayKey, loc)
	if err != nil {
		return dayKey
	}
	return d.Format("Monday, January 2, 2006")
}
