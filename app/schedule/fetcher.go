package schedule

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kittipatv/yt-sched/app/youtube"
)

// VideoFinder discovers the most recent video IDs for a channel. Both the
// API search endpoint and the uploads-feed client satisfy it.
type VideoFinder interface {
	RecentVideoIDs(ctx context.Context, channelID string) ([]string, error)
}

// VideoLister resolves video IDs into full records with live details.
type VideoLister interface {
	ListVideos(ctx context.Context, ids []string) ([]youtube.Video, error)
}

// Fetcher fans out one discovery-then-details sequence per channel and
// merges the results. Failures stay isolated per channel.
type Fetcher struct {
	finder VideoFinder
	lister VideoLister
}

func NewFetcher(finder VideoFinder, lister VideoLister) *Fetcher {
	return &Fetcher{
		finder: finder,
		lister: lister,
	}
}

type channelResult struct {
	entries []Entry
	err     *ChannelError
}

// Run fetches every configured channel concurrently and resolves only
// after all of them have settled. Duplicate channel IDs are fetched once.
// The returned entry set is merged but neither filtered nor sorted; the
// caller applies the window filter and day grouper downstream.
func (f *Fetcher) Run(ctx context.Context, channels []string) ([]Entry, []ChannelError) {
	channels = DedupeChannels(channels)

	results := make(chan channelResult, len(channels))
	var wg sync.WaitGroup
	for _, channelID := range channels {
		wg.Add(1)
		go func(channelID string) {
			defer wg.Done()
			results <- f.fetchChannel(ctx, channelID)
		}(channelID)
	}
	wg.Wait()
	close(results)

	var entries []Entry
	var errs []ChannelError
	for result := range results {
		if result.err != nil {
			errs = append(errs, *result.err)
			continue
		}
		entries = append(entries, result.entries...)
	}

	return entries, errs
}

// fetchChannel runs the two-stage lookup for one channel. The details
// stage is strictly sequenced after discovery because it needs the
// discovered IDs. No stage is retried; a failed channel waits for the next
// cycle.
func (f *Fetcher) fetchChannel(ctx context.Context, channelID string) channelResult {
	ids, err := f.finder.RecentVideoIDs(ctx, channelID)
	if err != nil {
		return channelResult{err: &ChannelError{ChannelID: channelID, Stage: StageSearch, Message: err.Error()}}
	}
	if len(ids) == 0 {
		return channelResult{}
	}

	videos, err := f.lister.ListVideos(ctx, ids)
	if err != nil {
		return channelResult{err: &ChannelError{ChannelID: channelID, Stage: StageVideos, Message: err.Error()}}
	}

	entries := make([]Entry, 0, len(videos))
	for _, video := range videos {
		entry, err := NormalizeVideo(video, channelID)
		if err != nil {
			slog.Debug("Skipping video without usable start time", "channel", channelID, "video", video.ID)
			continue
		}
		entries = append(entries, entry)
	}

	return channelResult{entries: entries}
}
