package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	// DefaultEndpoint is the PageSpeed Insights v5 API.
	DefaultEndpoint = "https://www.googleapis.com/pagespeedonline/v5/runPagespeed"

	// DefaultTimeout bounds a single scorecard request. Lighthouse runs
	// take tens of seconds on slow pages.
	DefaultTimeout = 90 * time.Second

	// maxResponseSize limits the decoded scorecard body.
	maxResponseSize = 20 * 1024 * 1024
)

// Strategy selects the device Lighthouse emulates.
type Strategy string

const (
	StrategyDesktop Strategy = "desktop"
	StrategyMobile  Strategy = "mobile"
)

// ErrRequestFailed is returned when the metrics API answers with a non-200 status.
var ErrRequestFailed = errors.New("metrics request failed")

// Client fetches Lighthouse scorecards from PageSpeed Insights.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(cl *Client) {
		cl.endpoint = endpoint
	}
}

// WithAPIKey sets the API key sent as the "key" query parameter.
func WithAPIKey(key string) ClientOption {
	return func(cl *Client) {
		cl.apiKey = key
	}
}

// WithRateLimit limits requests per second with the given burst.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient creates a PageSpeed Insights client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		endpoint:   DefaultEndpoint,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the scorecard of pageURL for one strategy.
func (c *Client) Fetch(ctx context.Context, pageURL string, strategy Strategy) (*Scorecard, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(pageURL, strategy), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build metrics request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metrics request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s strategy returned status %d", ErrRequestFailed, strategy, resp.StatusCode)
	}

	var card Scorecard
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&card); err != nil {
		return nil, fmt.Errorf("failed to decode scorecard: %w", err)
	}
	return &card, nil
}

// FetchAll retrieves the desktop and mobile scorecards in parallel. A
// failed side is logged and left nil; FetchAll itself never fails.
func (c *Client) FetchAll(ctx context.Context, pageURL string) External {
	var ext External
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		card, err := c.Fetch(gctx, pageURL, StrategyDesktop)
		if err != nil {
			c.logger.Warn("desktop metrics unavailable", "url", pageURL, "error", err)
			return nil
		}
		ext.Desktop = card
		return nil
	})
	g.Go(func() error {
		card, err := c.Fetch(gctx, pageURL, StrategyMobile)
		if err != nil {
			c.logger.Warn("mobile metrics unavailable", "url", pageURL, "error", err)
			return nil
		}
		ext.Mobile = card
		return nil
	})

	_ = g.Wait() //nolint:errcheck // goroutines never return errors
	return ext
}

func (c *Client) requestURL(pageURL string, strategy Strategy) string {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("strategy", string(strategy))
	for _, category := range []string{CategoryPerformance, CategoryAccessibility, CategoryBestPractices, CategorySEO} {
		q.Add("category", category)
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	return c.endpoint + "?" + q.Encode()
}
