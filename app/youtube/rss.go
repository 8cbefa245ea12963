package youtube

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

const DefaultUploadsFeedURL = "https://www.youtube.com/feeds/videos.xml"

// Items in a channel uploads feed carry GUIDs of the form "yt:video:<id>".
const videoGUIDPrefix = "yt:video:"

// RSSClient discovers recent video IDs through the public per-channel
// uploads feed instead of the search endpoint. The feed costs no API quota,
// which matters because every refresh cycle hits every configured channel.
// It only replaces the discovery stage; the details lookup still needs the
// Data API.
type RSSClient struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	feedURL    string
	userAgent  string
}

func NewRSSClient(httpClient *http.Client, userAgent string) *RSSClient {
	return &RSSClient{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		feedURL:    DefaultUploadsFeedURL,
		userAgent:  userAgent,
	}
}

// WithFeedURL overrides the uploads feed endpoint, used in tests.
func (c *RSSClient) WithFeedURL(feedURL string) *RSSClient {
	c.feedURL = strings.TrimRight(feedURL, "/")
	return c
}

// RecentVideoIDs fetches the channel uploads feed and extracts the video
// IDs in feed order (newest first, at most 15 per the platform's feed).
func (c *RSSClient) RecentVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	data, err := c.fetchFeed(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("uploads feed fetch failed for channel %s: %w", channelID, err)
	}

	feed, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse uploads feed for channel %s: %w", channelID, err)
	}

	ids := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		id, ok := strings.CutPrefix(item.GUID, videoGUIDPrefix)
		if !ok || id == "" {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (c *RSSClient) fetchFeed(ctx context.Context, channelID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.feedURL+"?channel_id="+url.QueryEscape(channelID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
