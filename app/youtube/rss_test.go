package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleUploadsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns="http://www.w3.org/2005/Atom">
  <id>yt:channel:test</id>
  <title>Test Channel</title>
  <entry>
    <id>yt:video:abc123</id>
    <title>Newest upload</title>
    <published>2024-03-12T10:00:00+00:00</published>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <title>Older upload</title>
    <published>2024-03-10T10:00:00+00:00</published>
  </entry>
</feed>`

func TestRSSRecentVideoIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("channel_id"); got != "UCtest" {
			t.Errorf("Expected channel_id=UCtest, got %q", got)
		}
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(sampleUploadsFeed))
	}))
	defer server.Close()

	client := NewRSSClient(server.Client(), "test-agent/1.0").WithFeedURL(server.URL)

	ids, err := client.RecentVideoIDs(context.Background(), "UCtest")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(ids) != 2 || ids[0] != "abc123" || ids[1] != "def456" {
		t.Errorf("Expected [abc123 def456], got %v", ids)
	}
}

func TestRSSRecentVideoIDsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewRSSClient(server.Client(), "test-agent/1.0").WithFeedURL(server.URL)

	if _, err := client.RecentVideoIDs(context.Background(), "UCmissing"); err == nil {
		t.Error("Expected an error for HTTP 404")
	}
}

func TestRSSRecentVideoIDsInvalidFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	defer server.Close()

	client := NewRSSClient(server.Client(), "test-agent/1.0").WithFeedURL(server.URL)

	if _, err := client.RecentVideoIDs(context.Background(), "UCtest"); err == nil {
		t.Error("Expected a parse error for a non-feed body")
	}
}
