package forecast

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

	"golang.org/x/time/rate"

	"github.com/weathersage/sage/pkg/logger"
)

const maxResponseSize = 4 << 20 // 4MB

// Source provides the current 3-hourly forecast.
type Source interface {
	ThreeHourly(ctx context.Context) (SiteRep, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Default: 15s timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithRateLimit limits upstream requests to r per second with the given burst.
// Default: one request per second, burst 2.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(r, burst)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// Client talks to the Met Office DataPoint API.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
	dataURL string
	apiKey  string
}

// NewClient creates a client for the site forecast at dataURL, e.g.
// "http://datapoint.metoffice.gov.uk/public/data/val/wxfcs/all/json/310069".
func NewClient(dataURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		logger:  logger.NewNope(),
		dataURL: dataURL,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ThreeHourly fetches the 3-hourly forecast (res=3hourly).
func (c *Client) ThreeHourly(ctx context.Context) (SiteRep, error) {
	if c.apiKey == "" {
		return SiteRep{}, ErrMissingAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return SiteRep{}, err
	}

	u, err := url.Parse(c.dataURL)
	if err != nil {
		return SiteRep{}, fmt.Errorf("%w: invalid data url: %w", ErrUpstream, err)
	}
	q := u.Query()
	q.Set("res", "3hourly")
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return SiteRep{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error would echo the api key.
		return SiteRep{}, fmt.Errorf("%w: %w", ErrUpstream, unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "forecast fetched",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return SiteRep{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&out); err != nil {
		return SiteRep{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return out.SiteRep, nil
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

var _ Source = (*Client)(nil)
