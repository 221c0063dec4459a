// Package api is the JSON/HTTP client for the moneybook REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"moneybook/internal/cache"
	"moneybook/internal/log"
)

const (
	pathTransactions = "/transactions"
	pathSummary      = "/transactions/summary"
	pathTypes        = "/transactions/types"
	pathLogin        = "/auth/login"
	pathRegister     = "/auth/register"

	headerRequestID = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// TokenSource supplies the bearer token for authenticated calls. An empty
// token sends no Authorization header.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	cache   cache.Cache[[]byte]
	logger  *log.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

// WithCache caches GET response bodies. Every write purges it.
func WithCache(ch cache.Cache[[]byte]) Option {
	return func(c *Client) { c.cache = ch }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(log.ComponentAPI) }
}

func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		tokens:  TokenFunc(func() string { return "" }),
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Invalidate drops every cached read.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.cache != nil {
		if body, ok := c.cache.Get(path); ok {
			c.logger.DebugContext(ctx, "Cached response", log.FieldPath, path, log.FieldCacheHit, true)
			return decode(body, out)
		}
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := decode(body, out); err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if c.cache != nil {
		c.cache.Set(path, body)
	}
	return nil
}

// send performs a write and purges the read cache whatever the outcome.
func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	defer c.Invalidate()

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := decode(body, out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "Request failed",
			log.NewFields().WithRequestID(requestID).WithHTTPCall(method, path, 0, time.Since(start).Milliseconds()).
				WithError(err).WithErrorType(log.ErrorTypeNetwork).ToSlice()...)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	c.logger.DebugContext(ctx, "Request completed",
		log.NewFields().WithRequestID(requestID).
			WithHTTPCall(method, path, resp.StatusCode, time.Since(start).Milliseconds()).ToSlice()...)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}
	return body, nil
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
