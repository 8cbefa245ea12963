package schedule

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusLive     Status = "live"
	StatusUpcoming Status = "upcoming"
	StatusPast     Status = "past"
)

// Entry is the canonical schedule item produced by the normalizer. Entries
// are rebuilt from scratch every refresh cycle and never mutated afterwards.
type Entry struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"videoId"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail"`
	Status       Status    `json:"status"`
	StartTime    time.Time `json:"startTime"`
}

// DaySection groups entries sharing a civil date in the display timezone.
type DaySection struct {
	Date    string  `json:"date"`  // YYYY-MM-DD in the display timezone
	Label   string  `json:"label"` // e.g. "Monday, March 11, 2024"
	Entries []Entry `json:"entries"`
}

// Fetch stages a ChannelError can originate from.
const (
	StageSearch = "search"
	StageVideos = "videos"
)

// ChannelError records an isolated per-channel fetch failure. A failed
// channel contributes no entries for the cycle but never aborts siblings.
type ChannelError struct {
	ChannelID string `json:"channelId"`
	Stage     string `json:"stage"`
	Message   string `json:"message"`
}

func (e ChannelError) Error() string {
	return fmt.Sprintf("channel %s (%s stage): %s", e.ChannelID, e.Stage, e.Message)
}
