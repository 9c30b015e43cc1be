// Package moviedb is the client for the remote movie API. The API owns all
// business logic; this package only shapes requests, attaches credentials,
// normalizes the response envelopes and maps failures onto a small error
// taxonomy.
package moviedb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// TokenSource supplies the current session bearer token, or "" when logged
// out.
type TokenSource interface {
	Token() string
}

// TokenHolder is the trivial shared TokenSource the session store writes to
// and the client reads from. Safe for concurrent use.
type TokenHolder struct {
	mu  sync.RWMutex
	tok string
}

func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tok
}

func (h *TokenHolder) Set(tok string) {
	h.mu.Lock()
	h.tok = tok
	h.mu.Unlock()
}

// ClientConfig holds configurable settings for the API client.
type ClientConfig struct {
	AppToken       string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Config     ClientConfig
	CB         *gobreaker.CircuitBreaker
	Tokens     TokenSource
	Cache      Cache
	Log        *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.CB = cb }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.Log = log }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.Tokens = ts }
}

func WithCache(cache Cache) Option {
	return func(c *Client) { c.Cache = cache }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func New(baseURL string, cfg ClientConfig, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = 500 * time.Millisecond
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Config:     cfg,
		Log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) token() string {
	if c.Tokens == nil {
		return ""
	}
	return c.Tokens.Token()
}

// get runs an idempotent GET through cache, circuit breaker and bounded
// retries, in that order. Authenticated GETs bypass the cache so favorites
// are always re-fetched.
func (c *Client) get(ctx context.Context, path string, q url.Values, authed bool) ([]byte, error) {
	key := path
	if len(q) > 0 {
		key += "?" + q.Encode()
	}
	cacheable := c.Cache != nil && !authed
	if cacheable {
		if raw, ok := c.Cache.Get(key); ok {
			return raw, nil
		}
	}

	raw, err := c.withBreaker(func() ([]byte, error) {
		return c.getWithRetry(ctx, path, q, authed)
	})
	if err != nil {
		return nil, err
	}
	if cacheable {
		c.Cache.Set(key, raw)
	}
	return raw, nil
}

// send runs a mutating request. No cache, no retry: mutations must not be
// replayed on ambiguous failure.
func (c *Client) send(ctx context.Context, method, path string, body any, authed bool) ([]byte, error) {
	return c.withBreaker(func() ([]byte, error) {
		return c.do(ctx, method, path, nil, body, authed)
	})
}

func (c *Client) withBreaker(call func() ([]byte, error)) ([]byte, error) {
	if c.CB == nil {
		return call()
	}
	result, err := c.CB.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) getWithRetry(ctx context.Context, path string, q url.Values, authed bool) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.Config.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.Config.RetryBaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			c.Log.Debug("retrying request", zap.String("path", path), zap.Int("attempt", attempt), zap.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
		raw, err := c.do(ctx, http.MethodGet, path, q, nil, authed)
		if err == nil {
			return raw, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
		c.Log.Warn("request failed", zap.String("path", path), zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, lastErr
}

// retryable reports whether a failed GET is worth repeating: transport
// failures and server-side 5xx only. 4xx responses are definitive.
func retryable(err error) bool {
	switch e := err.(type) {
	case *NetworkError:
		return true
	case *HTTPError:
		return e.Status >= 500
	default:
		return false
	}
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body any, authed bool) ([]byte, error) {
	tok := c.token()
	if authed && tok == "" {
		return nil, ErrUnauthorized
	}

	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-App-Token", c.Config.AppToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}

// decode unmarshals a full response body into a typed value.
func decode[T any](raw []byte, out *T) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// unwrapList normalizes the envelope shapes list endpoints serve: a bare
// array, or an object wrapping the array under "data", "results" or
// "favorites". This is the only place envelope shapes are guessed; every
// endpoint wrapper hands callers a typed slice.
func unwrapList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := decode(trimmed, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env struct {
		Data      json.RawMessage `json:"data"`
		Results   json.RawMessage `json:"results"`
		Favorites json.RawMessage `json:"favorites"`
	}
	if err := decode(trimmed, &env); err != nil {
		return nil, err
	}
	for _, inner := range []json.RawMessage{env.Data, env.Results, env.Favorites} {
		t := bytes.TrimSpace(inner)
		if len(t) > 0 && t[0] == '[' {
			var out []T
			if err := decode(t, &out); err != nil {
				return nil, err
			}
			return out, nil
		}
	}
	return []T{}, nil
}
