// Package transport implements the HTTP client of the remote board service.
//
// Each operation performs exactly one round trip and normalizes the
// response's 2-D rows into a flat core.BoardState. The client neither
// retries nor keeps state between calls; that belongs to the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// RequestIDHeader carries a per-call identifier for log correlation.
const RequestIDHeader = "X-Request-ID"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 1 << 20

// Config holds configuration for the client.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:8080".
	BaseURL string

	// Timeout bounds a single round trip. Zero means no timeout.
	Timeout time.Duration

	// Protocol selects the response format.
	Protocol Protocol
}

// DefaultConfig returns a config pointing at a local service.
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:8080",
		Timeout:  5 * time.Second,
		Protocol: ProtocolV2,
	}
}

// Client talks to the remote board service.
type Client struct {
	baseURL  string
	protocol Protocol
	http     *http.Client
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for per-call debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the given config.
func New(cfg Config, opts ...Option) *Client {
	protocol := cfg.Protocol
	if protocol == "" {
		protocol = ProtocolV2
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		protocol: protocol,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the current board without changing it.
func (c *Client) Load(ctx context.Context) (core.BoardState, error) {
	return c.do(ctx, "load", http.MethodGet, "/board", nil)
}

// Move submits one directional move and returns the post-move board.
func (c *Client) Move(ctx context.Context, dir core.Direction) (core.BoardState, error) {
	if !dir.Valid() {
		return core.BoardState{}, fmt.Errorf("transport: invalid direction %d", dir)
	}

	body, err := json.Marshal(moveRequest{Action: dir.String()})
	if err != nil {
		return core.BoardState{}, fmt.Errorf("transport: encode move: %w", err)
	}
	return c.do(ctx, "move", http.MethodPost, "/board/move", body)
}

// Reset starts a fresh game. A fresh game always has score 0.
func (c *Client) Reset(ctx context.Context) (core.BoardState, error) {
	state, err := c.do(ctx, "reset", http.MethodPost, "/board/reset", nil)
	if err != nil {
		return state, err
	}
	if state.Score() != 0 {
		return core.BoardState{}, &ProtocolError{
			Op:     "reset",
			Field:  "score",
			Reason: fmt.Sprintf("fresh board reported score %d", state.Score()),
		}
	}
	return state, nil
}

// do performs one round trip.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte) (core.BoardState, error) {
	url := c.baseURL + path
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return core.BoardState{}, &TransportError{Op: op, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", requestID, "error", err)
		return core.BoardState{}, &TransportError{Op: op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("response",
		"op", op,
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return core.BoardState{}, &TransportError{
			Op:         op,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", strings.TrimSpace(string(snippet))),
		}
	}

	state, err := decodeBoard(op, c.protocol, io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			return core.BoardState{}, perr
		}
		return core.BoardState{}, &TransportError{Op: op, URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return state, nil
}
