// internal/backend/client.go
// HTTP client for the debate orchestration backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	streamPath  = "/api/debate/stream"
	healthPath  = "/api/debate/health"
	symbolsPath = "/api/debate/symbols"
)

// DebateRequest is the request body for a streaming debate.
type DebateRequest struct {
	Query     string `json:"query"`
	Symbol    string `json:"symbol"`
	MaxRounds int    `json:"max_rounds,omitempty"`
}

// SymbolInfo describes one supported market symbol.
type SymbolInfo struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	ID     string `json:"id"`
}

// Client talks to the orchestration backend. The streaming endpoint gets
// a plain long-lived client and exactly one request per call; the side
// endpoints go through the retrying client.
type Client struct {
	baseURL   string
	streaming *http.Client
	side      *retryableClient
	logger    *log.Logger
}

// New creates a backend client for the given base URL.
func New(baseURL string, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		streaming: &http.Client{
			// No overall timeout: a debate stream stays open for minutes.
			Timeout: 0,
		},
		side:   newRetryableClient(DefaultRetryConfig()),
		logger: logger,
	}
}

// Stream opens the debate event stream. The caller owns the returned body
// and must close it; aborting is done by cancelling ctx. The request is
// never re-issued.
func (c *Client) Stream(ctx context.Context, req DebateRequest) (io.ReadCloser, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+streamPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	c.logger.Debug("opening debate stream", "symbol", req.Symbol, "query", req.Query)

	resp, err := c.streaming.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return resp.Body, nil
}

// Health reports whether the backend is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return err
	}

	resp, err := c.side.doWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	if status.Status != "healthy" {
		return fmt.Errorf("backend unhealthy: %s", status.Status)
	}
	return nil
}

// Symbols returns the symbols the backend supports.
func (c *Client) Symbols(ctx context.Context) ([]SymbolInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+symbolsPath, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.side.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch symbols: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Symbols []SymbolInfo `json:"symbols"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("fetch symbols: %w", err)
	}
	return out.Symbols, nil
}

// SymbolsWithTimeout is a convenience wrapper for UI validation paths.
func (c *Client) SymbolsWithTimeout(d time.Duration) ([]SymbolInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return c.Symbols(ctx)
}
