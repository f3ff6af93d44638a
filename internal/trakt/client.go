// Package trakt is a client for the trakt.tv v2 API implementing
// media.Catalog.
package trakt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Digital-Shane/trakt-watch/internal/media"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the trakt API endpoint.
	DefaultBaseURL = "https://api.trakt.tv"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "trakt-watch"
	rateWindow       = 10 * time.Second
)

// Options configures a Client.
type Options struct {
	BaseURL  string
	ClientID string
	Timeout  time.Duration
	// CacheTTL enables an in-memory response cache when positive.
	CacheTTL time.Duration
	// RateLimit is the number of requests allowed per ten seconds; zero
	// disables limiting.
	RateLimit int
	// Transport overrides the base HTTP transport.
	Transport http.RoundTripper
	Logger    zerolog.Logger
}

// Client talks to the trakt API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	cache       *cache.Cache
	rateLimiter *rateLimiter
	log         zerolog.Logger
}

var _ media.Catalog = (*Client)(nil)

// New creates a client. A client id is required by the API.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.ClientID) == "" {
		return nil, ErrMissingClientID
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newAPITransport(opts.Transport, opts.ClientID, defaultUserAgent),
		},
		baseURL: baseURL,
		log:     opts.Logger,
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	if opts.RateLimit > 0 {
		c.rateLimiter = newRateLimiter(opts.RateLimit, rateWindow)
	}
	return c, nil
}

// get performs a GET against path and decodes the JSON body into out.
// Successful bodies are cached by path and query when caching is enabled.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			if body, ok := cached.([]byte); ok {
				c.log.Debug().Str("path", key).Msg("cache hit")
				return json.Unmarshal(body, out)
			}
		}
	}

	waited, err := c.rateLimiter.wait(ctx)
	if err != nil {
		return err
	}
	if waited > 0 {
		c.log.Debug().Dur("waited", waited).Msg("rate limited")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+key, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trakt %s: %w", path, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", key).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("trakt request")

	if resp.StatusCode != http.StatusOK {
		return newAPIError(path, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("trakt %s: read body: %w", path, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("trakt %s: decode: %w", path, err)
	}

	if c.cache != nil {
		c.cache.Set(key, body, cache.DefaultExpiration)
	}
	return nil
}
