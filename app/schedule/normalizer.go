package schedule

import (
	"errors"
	"time"

	"github.com/kittipatv/yt-sched/app/youtube"
)

// Served when a video carries no thumbnail variants at all.
const placeholderThumbnailURL = "https://i.ytimg.com/vi/000/default.jpg"

// ErrMissingTimestamp marks a record with no usable start time. Callers
// drop the record from the cycle instead of failing the batch.
var ErrMissingTimestamp = errors.New("video has no usable start time")

// ClassifyStatus derives the live status purely from which broadcast
// timestamps are populated. It never consults the wall clock, so a
// finished broadcast classifies as past no matter when it runs; a replay
// that has both a schedule and an end is past too.
func ClassifyStatus(ls *youtube.LiveStreamingDetails) Status {
	if ls == nil {
		return StatusPast
	}
	if !ls.ActualStartTime.IsZero() && ls.ActualEndTime.IsZero() {
		return StatusLive
	}
	if !ls.ScheduledStartTime.IsZero() && ls.ActualStartTime.IsZero() {
		return StatusUpcoming
	}
	return StatusPast
}

// NormalizeVideo maps a raw API record onto a canonical Entry for the
// owning channel. Pure; returns ErrMissingTimestamp when neither the
// broadcast details nor the snippet provide a start time.
func NormalizeVideo(v youtube.Video, channelID string) (Entry, error) {
	startTime := startTimeOf(v)
	if startTime.IsZero() {
		return Entry{}, ErrMissingTimestamp
	}

	return Entry{
		ID:           v.ID,
		VideoID:      v.ID,
		ChannelID:    channelID,
		ChannelTitle: v.Snippet.ChannelTitle,
		Title:        v.Snippet.Title,
		Description:  v.Snippet.Description,
		ThumbnailURL: pickThumbnail(v.Snippet.Thumbnails),
		Status:       ClassifyStatus(v.LiveStreamingDetails),
		StartTime:    startTime,
	}, nil
}

// startTimeOf applies the fallback priority scheduled start, actual start,
// publish time.
func startTimeOf(v youtube.Video) time.Time {
	if ls := v.LiveStreamingDetails; ls != nil {
		if !ls.ScheduledStartTime.IsZero() {
			return ls.ScheduledStartTime
		}
		if !ls.ActualStartTime.IsZero() {
			return ls.ActualStartTime
		}
	}
	return v.Snippet.PublishedAt
}

// pickThumbnail returns the best-available resolution variant.
func pickThumbnail(t youtube.Thumbnails) string {
	for _, thumb := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.URL != "" {
			return thumb.URL
		}
	}
	return placeholderThumbnailURL
}
