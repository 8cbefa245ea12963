package youtube

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// Resolver resolves @handles with a per-call API key. The admin API reads
// the key from the settings store at request time, so it cannot be baked
// into a long-lived Client.
type Resolver struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

func NewResolver(httpClient *http.Client, limiter *rate.Limiter, userAgent string) *Resolver {
	return &Resolver{
		httpClient: httpClient,
		limiter:    limiter,
		userAgent:  userAgent,
		baseURL:    DefaultBaseURL,
	}
}

// WithBaseURL overrides the API host, used in tests.
func (r *Resolver) WithBaseURL(baseURL string) *Resolver {
	r.baseURL = baseURL
	return r
}

func (r *Resolver) ResolveHandle(ctx context.Context, apiKey string, handle string) (string, error) {
	client := NewClient(r.httpClient, r.limiter, apiKey, r.userAgent).WithBaseURL(r.baseURL)
	return client.ResolveHandle(ctx, handle)
}
