package youtube

import (
	"time"
)

// Wire types for the YouTube Data API v3 responses consumed by the
// schedule pipeline. Only the fields the pipeline reads are declared.

type SearchResponse struct {
	Items []SearchItem `json:"items"`
}

type SearchItem struct {
	ID SearchItemID `json:"id"`
}

type SearchItemID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

type VideosResponse struct {
	Items []Video `json:"items"`
}

// Video is a full record from the /videos endpoint. LiveStreamingDetails is
// nil for plain uploads that were never scheduled as a broadcast.
type Video struct {
	ID                   string                `json:"id"`
	Snippet              Snippet               `json:"snippet"`
	LiveStreamingDetails *LiveStreamingDetails `json:"liveStreamingDetails,omitempty"`
}

type Snippet struct {
	PublishedAt  time.Time  `json:"publishedAt"`
	ChannelID    string     `json:"channelId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ChannelTitle string     `json:"channelTitle"`
	Thumbnails   Thumbnails `json:"thumbnails"`
}

type Thumbnails struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// LiveStreamingDetails timestamps arrive as RFC 3339 strings; absent fields
// stay zero, which is what the status classifier keys on.
type LiveStreamingDetails struct {
	ScheduledStartTime time.Time `json:"scheduledStartTime"`
	ActualStartTime    time.Time `json:"actualStartTime"`
	ActualEndTime      time.Time `json:"actualEndTime"`
	ConcurrentViewers  string    `json:"concurrentViewers"`
}

type ChannelsResponse struct {
	Items []ChannelItem `json:"items"`
}

type ChannelItem struct {
	ID string `json:"id"`
}
