package directory

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rileyhilliard/cfx/internal/errors"
	"github.com/rileyhilliard/cfx/internal/logger"
	"github.com/rileyhilliard/cfx/internal/server"
	"golang.org/x/time/rate"
)

// Defaults for the public FiveM directory.
const (
	DefaultBaseURL        = "https://servers-frontend.fivem.net/api/servers"
	DefaultListURL        = "https://servers.fivem.net/servers/list"
	DefaultRequestTimeout = 15 * time.Second
	DefaultSearchTimeout  = 10 * time.Second
	DefaultRateLimit      = 2.0
	DefaultRateBurst      = 4
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL        string
	ListURL        string
	UserAgent      string
	RequestTimeout time.Duration
	SearchTimeout  time.Duration
	RateLimit      float64 // requests per second, shared by all calls
	RateBurst      int
	HTTPClient     *http.Client
	Logger         logger.Logger
}

// Client retrieves and normalizes server data from the directory service.
// Safe for concurrent use.
type Client struct {
	baseURL        string
	listURL        string
	userAgent      string
	requestTimeout time.Duration
	searchTimeout  time.Duration
	http           *http.Client
	limiter        *rate.Limiter
	log            logger.Logger
}

// New creates a directory client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		listURL:        opts.ListURL,
		userAgent:      opts.UserAgent,
		requestTimeout: opts.RequestTimeout,
		searchTimeout:  opts.SearchTimeout,
		http:           opts.HTTPClient,
		log:            opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.listURL == "" {
		c.listURL = DefaultListURL
	}
	if c.userAgent == "" {
		c.userAgent = "cfx"
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = DefaultRequestTimeout
	}
	if c.searchTimeout <= 0 {
		c.searchTimeout = DefaultSearchTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.log == nil {
		c.log = logger.Default()
	}

	limit := opts.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	burst := opts.RateBurst
	if burst <= 0 {
		burst = DefaultRateBurst
	}
	c.limiter = rate.NewLimiter(rate.Limit(limit), burst)

	return c
}

// FetchOne looks up a single server by join code or endpoint.
// No retry is attempted; the caller owns the retry policy.
func (c *Client) FetchOne(ctx context.Context, code string) (server.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	endpoint := c.baseURL + "/single/" + url.PathEscape(code)
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return server.Snapshot{}, c.transportError(ctx, err, "Couldn't fetch server data")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return server.Snapshot{}, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Server '%s' not found", code),
			"Check the join code, or paste the full cfx.re/join link")
	case resp.StatusCode == http.StatusTooManyRequests:
		return server.Snapshot{}, rateLimitedError()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return server.Snapshot{}, statusError(resp, "Couldn't fetch server data")
	}

	var raw rawServer
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return server.Snapshot{}, timeoutError(err, "Server lookup timed out")
		}
		return server.Snapshot{}, errors.WrapWithCode(err, errors.ErrNetwork,
			"Couldn't read server response",
			"The directory returned an unexpected payload, try again shortly")
	}
	if raw.Data == nil {
		return server.Snapshot{}, errors.New(errors.ErrNotFound,
			fmt.Sprintf("Server '%s' not found", code),
			"The server may be offline or the code may have expired")
	}

	snap := normalize(raw, code)
	c.log.Debug("fetched %s: %d/%d players", snap.ID, snap.Players, snap.MaxPlayers)
	return snap, nil
}

// SearchMany runs a free-text search against the directory. The whole
// operation is bounded by the search timeout; nothing is returned on failure.
func (c *Client) SearchMany(ctx context.Context, query string) ([]server.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.searchTimeout)
	defer cancel()

	endpoint := c.baseURL + "/search?q=" + url.QueryEscape(query)
	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, c.transportError(ctx, err, "Server search failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, rateLimitedError()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp, "Server search failed")
	}

	var env rawSearch
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, timeoutError(err, "Search timed out")
		}
		return nil, noResultsError(query)
	}

	var items []rawServer
	if len(env.Data) == 0 || json.Unmarshal(env.Data, &items) != nil || len(items) == 0 {
		return nil, noResultsError(query)
	}

	out := make([]server.Snapshot, 0, len(items))
	for _, item := range items {
		out = append(out, normalize(item, ""))
	}
	c.log.Debug("search %q returned %d servers", query, len(out))
	return out, nil
}

// ListAll fetches the full directory listing.
func (c *Client) ListAll(ctx context.Context) ([]server.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.get(ctx, c.listURL)
	if err != nil {
		return nil, c.transportError(ctx, err, "Couldn't fetch the server list")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, rateLimitedError()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp, "Couldn't fetch the server list")
	}

	var list rawList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil || list.Servers == nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, timeoutError(err, "Server list timed out")
		}
		return nil, errors.WrapWithCode(err, errors.ErrNoResults,
			"The server list was empty or unreadable",
			"Try again shortly")
	}

	out := make([]server.Snapshot, 0, len(*list.Servers))
	for _, entry := range *list.Servers {
		out = append(out, normalizeListEntry(entry))
	}
	return out, nil
}

// get waits for the rate limiter and issues a GET.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// The limiter refuses waits that would outlast the deadline.
		return nil, context.DeadlineExceeded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return c.http.Do(req)
}

// transportError classifies a failed request as a timeout or a network error.
func (c *Client) transportError(ctx context.Context, err error, message string) error {
	if ctx.Err() == context.DeadlineExceeded || stderrors.Is(err, context.DeadlineExceeded) {
		return timeoutError(err, message+": timed out")
	}
	c.log.Debug("%s: %v", message, err)
	return errors.WrapWithCode(err, errors.ErrNetwork, message,
		"Check your internet connection and try again")
}

func timeoutError(err error, message string) error {
	return errors.WrapWithCode(err, errors.ErrTimeout, message,
		"The directory is slow to respond, try again in a moment")
}

func rateLimitedError() error {
	return errors.New(errors.ErrRateLimited,
		"Too many requests to the server directory",
		"Wait a little and try again")
}

func noResultsError(query string) error {
	return errors.New(errors.ErrNoResults,
		fmt.Sprintf("No servers found for '%s'", query),
		"Try a shorter or different search term")
}

func statusError(resp *http.Response, message string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cause := fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	return errors.WrapWithCode(cause, errors.ErrNetwork, message,
		"The directory service returned an error, try again shortly")
}
