package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

const (
	searchMaxResults = 30
	videosMaxResults = 50
)

// Client is a thin wrapper around the YouTube Data API v3 endpoints used by
// the schedule pipeline. Clients are constructed per refresh cycle with the
// API key current at that moment; the HTTP client and rate limiter are
// shared so construction stays cheap.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	userAgent  string
}

func NewClient(httpClient *http.Client, limiter *rate.Limiter, apiKey string, userAgent string) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    limiter,
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
	}
}

// WithBaseURL overrides the API host, used in tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// RecentVideoIDs queries the search endpoint for the most recent videos of
// a channel, newest first, and returns their IDs. An empty result is not an
// error; the channel simply has nothing to show.
func (c *Client) RecentVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("maxResults", fmt.Sprintf("%d", searchMaxResults))

	var response SearchResponse
	if err := c.getJSON(ctx, "search", params, &response); err != nil {
		return nil, fmt.Errorf("search failed for channel %s: %w", channelID, err)
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}

	return ids, nil
}

// ListVideos resolves video IDs into full records including snippet and
// live-broadcast details in a single batched call. At most 50 IDs are sent;
// surplus IDs are dropped.
func (c *Client) ListVideos(ctx context.Context, ids []string) ([]Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > videosMaxResults {
		ids = ids[:videosMaxResults]
	}

	params := url.Values{}
	params.Set("part", "snippet,liveStreamingDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", fmt.Sprintf("%d", videosMaxResults))

	var response VideosResponse
	if err := c.getJSON(ctx, "videos", params, &response); err != nil {
		return nil, fmt.Errorf("video lookup failed: %w", err)
	}

	return response.Items, nil
}

// ResolveHandle resolves a human @handle into a channel ID. A leading "@"
// is stripped before the lookup.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return "", fmt.Errorf("handle is empty")
	}

	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", handle)

	var response ChannelsResponse
	if err := c.getJSON(ctx, "channels", params, &response); err != nil {
		return "", fmt.Errorf("handle lookup failed for @%s: %w", handle, err)
	}

	if len(response.Items) == 0 {
		return "", fmt.Errorf("no channel found for handle @%s", handle)
	}

	return response.Items[0].ID, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
