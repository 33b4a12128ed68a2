// Package api is the HTTP client for the task tracker REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// cacheSize bounds the number of task details kept in memory.
const cacheSize = 128

// TokenFunc returns the bearer token for a request. It is called lazily so
// commands that never reach the API do not need a token.
type TokenFunc func() (string, error)

// Options configures a Client.
type Options struct {
	BaseURL           string
	Token             TokenFunc
	Timeout           time.Duration
	RequestsPerMinute int
	// CacheTTL is how long task details are reused; zero disables caching
	CacheTTL   time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Client talks to the task tracker.
type Client struct {
	baseURL    string
	token      TokenFunc
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *expirable.LRU[string, Task]
	logger     *log.Logger
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	burst := rpm / 10
	if burst < 1 {
		burst = 1
	}

	var cache *expirable.LRU[string, Task]
	if opts.CacheTTL > 0 {
		cache = expirable.NewLRU[string, Task](cacheSize, nil, opts.CacheTTL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst),
		cache:      cache,
		logger:     logger,
	}
}

// BaseURL returns the tracker URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTask fetches task details via GET /tasks/{id}.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	if c.cache != nil {
		if task, ok := c.cache.Get(id); ok {
			c.logger.Debug("task cache hit", "task", id)
			return &task, nil
		}
	}

	var task Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	if task.ID == "" {
		task.ID = id
	}

	if c.cache != nil {
		c.cache.Add(id, task)
	}
	return &task, nil
}

// LogTime submits a time entry via POST /tasks/{id}/time_logs.
// idempotencyKey lets the tracker drop duplicates of a retried submission.
func (c *Client) LogTime(ctx context.Context, id string, entry TimeLog, idempotencyKey string) (*TimeLogReceipt, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers["Idempotency-Key"] = idempotencyKey
	}

	receipt := TimeLogReceipt{}
	if err := c.do(ctx, http.MethodPost, taskPath(id)+"/time_logs", timeLogRequest{TimeLog: entry}, headers, &receipt); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.Remove(id)
	}

	if receipt.TaskID == "" {
		receipt.TaskID = id
	}
	if receipt.Minutes == 0 {
		receipt.Minutes = entry.Minutes
		receipt.Note = entry.Note
	}
	return &receipt, nil
}

// Ping checks that the tracker is reachable and accepts the token by
// requesting GET /me.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/me", nil, nil, nil)
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	if c.baseURL == "" {
		return ErrMissingBaseURL
	}
	if c.token == nil {
		return ErrMissingToken
	}
	token, err := c.token()
	if err != nil {
		return err
	}
	if token == "" {
		return ErrMissingToken
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call task tracker: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/tasks/"):
		return ErrTaskNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsAuthError reports whether err means the user has to (re)enter a token.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrUnauthorized)
}
