package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"postersync/internal/config"
	"postersync/internal/logging"
)

const (
	productName    = "postersync"
	productVersion = "1.0.0"
	userAgent      = "postersync-go/1.0.0"

	defaultTimeout = 30 * time.Second
	errorBodyLimit = 2048
)

// ErrUnauthorized reports that Plex rejected the configured token.
var ErrUnauthorized = errors.New("plex rejected the token (401 unauthorized)")

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL          string
	Token            string
	ClientIdentifier string
	Timeout          time.Duration
	// RequestsPerSecond paces outgoing requests; zero or less disables pacing.
	RequestsPerSecond float64
	// HTTP overrides the transport, mostly for tests.
	HTTP   HTTPDoer
	Logger *slog.Logger
}

// Client issues authenticated requests against one Plex server.
type Client struct {
	baseURL  string
	token    string
	clientID string
	http     HTTPDoer
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewClient constructs a Plex client.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	doer := opts.HTTP
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		token:    strings.TrimSpace(opts.Token),
		clientID: strings.TrimSpace(opts.ClientIdentifier),
		http:     doer,
		limiter:  limiter,
		logger:   logging.NewComponentLogger(opts.Logger, "plex"),
	}
}

// NewFromConfig builds a client from the [plex] section of cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.RequireServer(); err != nil {
		return nil, err
	}
	return NewClient(Options{
		BaseURL:           cfg.Plex.URL,
		Token:             cfg.Plex.Token,
		ClientIdentifier:  cfg.Plex.ClientIdentifier,
		Timeout:           time.Duration(cfg.Plex.TimeoutSeconds) * time.Second,
		RequestsPerSecond: cfg.Plex.RequestsPerSecond,
		Logger:            logger,
	}), nil
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request. A body is sent with its exact Content-Length, never
// chunked, because Plex rejects chunked poster uploads. When out is non-nil
// the JSON body is decoded into it; otherwise the body is drained.
func (c *Client) do(ctx context.Context, ep Endpoint, body io.Reader, size int64, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	target := ep.URL(c.baseURL)
	req, err := http.NewRequestWithContext(ctx, ep.Method(), target, body)
	if err != nil {
		return fmt.Errorf("build plex %s request: %w", ep.Kind, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Plex-Token", c.token)
	if body != nil {
		req.ContentLength = size
		if size == 0 {
			req.Body = http.NoBody
		}
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	applyStandardHeaders(req, c.clientID)

	c.logger.Debug("plex request",
		logging.String("method", req.Method),
		logging.String("path", req.URL.Path),
		logging.String("kind", ep.Kind.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("plex %s request failed: %w", ep.Kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusBadRequest {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return fmt.Errorf("plex %s %s returned %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode plex %s response: %w", ep.Kind, err)
	}
	return nil
}

func (c *Client) container(ctx context.Context, ep Endpoint) (*mediaContainer, error) {
	var resp apiResponse
	if err := c.do(ctx, ep, nil, 0, &resp); err != nil {
		return nil, err
	}
	return &resp.MediaContainer, nil
}

func applyStandardHeaders(req *http.Request, clientIdentifier string) {
	if clientIdentifier != "" {
		req.Header.Set("X-Plex-Client-Identifier", clientIdentifier)
	}
	req.Header.Set("X-Plex-Product", productName)
	req.Header.Set("X-Plex-Version", productVersion)
	req.Header.Set("X-Plex-Device-Name", productName)
	req.Header.Set("X-Plex-Platform", runtime.GOOS)
}
