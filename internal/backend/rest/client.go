// Package rest implements service.Service over the task-tracking HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"tasktrack/internal/log"
	"tasktrack/internal/metrics"
	"tasktrack/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = 10 * time.Second

	// SessionCookie is the cookie the backend keeps the session JWT in.
	SessionCookie = "token"

	// RequestIDHeader carries a per-request id for log correlation.
	RequestIDHeader = "X-Request-Id"
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
	Clear() error
}

// ClientConfig is the configuration for the REST client.
type ClientConfig struct {
	BaseURL     string
	AuthPath    string
	PersonsPath string
	TasksPath   string
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int

	// Tokens stores the session token. Defaults to in-memory only.
	Tokens TokenStore
	// HTTPClient is the base client. Its transport gets wrapped with metrics.
	HTTPClient *http.Client
	Metrics    *metrics.Recorder
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if c.AuthPath == "" {
		c.AuthPath = "/auth"
	}
	if c.PersonsPath == "" {
		c.PersonsPath = "/persons"
	}
	if c.TasksPath == "" {
		c.TasksPath = "/tasks"
	}
	if c.Timeout <= 0 {
		c.Timeout = APITimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = float64(rate.Inf)
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 1
	}
	if c.Tokens == nil {
		c.Tokens = &memoryTokens{}
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "backend.REST"})
	return nil
}

// Client implements service.Service.
type Client struct {
	base        *url.URL
	authPath    string
	personsPath string
	tasksPath   string
	timeout     time.Duration
	http        *http.Client
	limiter     *rate.Limiter
	tokens      TokenStore
	logger      log.Logger

	mu    sync.RWMutex
	token *oauth2.Token
}

var _ service.Service = (*Client)(nil)

// New creates a client and restores the stored session token, if any.
func New(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	token, err := cfg.Tokens.Load()
	if err != nil {
		// A corrupt token file just means no session.
		cfg.Logger.Warningf("ignoring stored session: %v", err)
		token = nil
	}

	httpClient := *cfg.HTTPClient
	if cfg.Metrics != nil {
		httpClient.Transport = cfg.Metrics.RoundTripper(httpClient.Transport)
	}

	return &Client{
		base:        base,
		authPath:    cfg.AuthPath,
		personsPath: cfg.PersonsPath,
		tasksPath:   cfg.TasksPath,
		timeout:     cfg.Timeout,
		http:        &httpClient,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		tokens:      cfg.Tokens,
		logger:      cfg.Logger,
		token:       token,
	}, nil
}

// SessionExpiry returns when the stored session token expires, if known.
func (c *Client) SessionExpiry() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil || c.token.Expiry.IsZero() {
		return time.Time{}, false
	}
	return c.token.Expiry, true
}

func (c *Client) endpoint(base string, elem ...string) *url.URL {
	return c.base.JoinPath(append([]string{base}, elem...)...)
}

func pageElem(page int) string { return strconv.Itoa(page) }

func idElem(id int64) string { return strconv.FormatInt(id, 10) }

// do performs one API call. body is JSON-encoded when non-nil; out is decoded when non-nil.
func (c *Client) do(ctx context.Context, method string, u *url.URL, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return wrapError(err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := ulid.Make().String()
	req.Header.Set(RequestIDHeader, reqID)
	c.attachSession(req)

	logger := c.logger.WithValues(log.Kv{"request-id": reqID})
	logger.Debugf("%s %s", method, u.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.captureSession(resp)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(err)
	}
	logger.Debugf("%s %s -> %d", method, u.Path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &service.APIError{
			StatusCode: resp.StatusCode,
			Payload:    service.ParseErrorPayload(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode response from %s: %w", u.Path, err)
	}
	return nil
}

// wrapError turns transport failures into API errors with a readable message.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &service.APIError{Payload: service.TransportPayload{Err: errors.New("request timed out")}}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return &service.APIError{Payload: service.TransportPayload{Err: err}}
}

// memoryTokens keeps the token for the client's lifetime. Responses on
// concurrent requests save and clear it from their own goroutines.
type memoryTokens struct {
	mu    sync.Mutex
	token *oauth2.Token
}

func (m *memoryTokens) Load() (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryTokens) Save(token *oauth2.Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memoryTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}
