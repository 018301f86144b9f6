package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Client runs procedures through a Link and memoizes successful results.
// It is safe for concurrent use. A client lives as long as the document it
// was created for; there is no expiry.
type Client struct {
	link    Link
	group   singleflight.Group
	mu      sync.RWMutex
	results map[string]json.RawMessage
}

// NewClient creates a client. A nil link makes every query fail with ErrNoLink.
func NewClient(link Link) *Client {
	return &Client{
		link:    link,
		results: make(map[string]json.RawMessage),
	}
}

// Query runs procedure with input and returns the raw result.
// Identical queries are answered from memory after the first success.
func (c *Client) Query(ctx context.Context, procedure string, input any) (json.RawMessage, error) {
	if c.link == nil {
		return nil, ErrNoLink
	}

	raw, err := encodeInput(input)
	if err != nil {
		return nil, err
	}
	key := procedure + "?" + string(raw)

	c.mu.RLock()
	cached, ok := c.results[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		data, err := c.link.Query(context.WithoutCancel(ctx), procedure, raw)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.results[key] = data
		c.mu.Unlock()
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(json.RawMessage), nil
	}
}

// Invalidate drops memoized results for procedure, for every input.
func (c *Client) Invalidate(procedure string) {
	prefix := procedure + "?"

	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.results {
		if strings.HasPrefix(k, prefix) {
			delete(c.results, k)
		}
	}
}

// Call runs a typed query through the client found in ctx.
//
// Example:
//
//	s, err := query.Call[sage.Summary](ctx, "forecast.summary", nil)
func Call[T any](ctx context.Context, procedure string, input any) (T, error) {
	var out T

	c := FromContext(ctx)
	if c == nil {
		return out, ErrNoClient
	}

	data, err := c.Query(ctx, procedure, input)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: %s: %w", ErrInvalidResponse, procedure, err)
	}
	return out, nil
}

func encodeInput(input any) (json.RawMessage, error) {
	switch v := input.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case json.RawMessage:
		if len(v) == 0 {
			return json.RawMessage("null"), nil
		}
		return v, nil
	}

	raw, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return raw, nil
}

type clientKey struct{}

// WithClient returns a copy of ctx carrying c.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

// FromContext returns the client in ctx, or nil.
func FromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(clientKey{}).(*Client)
	return c
}
