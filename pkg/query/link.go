package query

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Link is the transport a Client uses to run procedures.
type Link interface {
	Query(ctx context.Context, procedure string, input json.RawMessage) (json.RawMessage, error)
}

// LinkFunc adapts a function to the Link interface.
type LinkFunc func(ctx context.Context, procedure string, input json.RawMessage) (json.RawMessage, error)

func (f LinkFunc) Query(ctx context.Context, procedure string, input json.RawMessage) (json.RawMessage, error) {
	return f(ctx, procedure, input)
}

// LocalLink calls procedures on an in-process router.
func LocalLink(r *Router) Link {
	return LinkFunc(func(ctx context.Context, procedure string, input json.RawMessage) (json.RawMessage, error) {
		out, err := r.invoke(ctx, procedure, input)
		if err != nil {
			return nil, toError(err)
		}
		data, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
		}
		return data, nil
	})
}

// HTTPLinkOption configures an HTTPLink.
type HTTPLinkOption func(*HTTPLink)

// WithHTTPClient sets the HTTP client. Default: 10s timeout.
func WithHTTPClient(c *http.Client) HTTPLinkOption {
	return func(l *HTTPLink) {
		if c != nil {
			l.client = c
		}
	}
}

// HTTPLink calls procedures on a remote Router.
type HTTPLink struct {
	client  *http.Client
	baseURL string
}

// NewHTTPLink creates a link for the router mounted at baseURL,
// e.g. "http://localhost:8080/api/trpc".
func NewHTTPLink(baseURL string, opts ...HTTPLinkOption) *HTTPLink {
	l := &HTTPLink{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Query performs GET {baseURL}/{procedure}?input={json}.
func (l *HTTPLink) Query(ctx context.Context, procedure string, input json.RawMessage) (json.RawMessage, error) {
	u := l.baseURL + "/" + url.PathEscape(procedure)
	if len(input) > 0 && string(input) != "null" {
		u += "?input=" + url.QueryEscape(string(input))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("query: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query: %s: %w", procedure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("query: read %s: %w", procedure, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: status %d", ErrInvalidResponse, procedure, resp.StatusCode)
	}
	if env.Error != nil {
		return nil, env.Error
	}
	if env.Result == nil {
		return nil, fmt.Errorf("%w: %s: missing result", ErrInvalidResponse, procedure)
	}
	return env.Result.Data, nil
}

var _ Link = (*HTTPLink)(nil)
