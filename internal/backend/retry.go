// internal/backend/retry.go
package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// Errors surfaced for retryable HTTP statuses
var (
	ErrRateLimit      = errors.New("rate limit exceeded (429)")
	ErrServerBusy     = errors.New("server busy (503)")
	ErrBadGateway     = errors.New("bad gateway (502)")
	ErrGatewayTimeout = errors.New("gateway timeout (504)")
)

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryConfig returns sensible defaults
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
	}
}

// retryableClient wraps http.Client with retry logic. Used only for the
// side endpoints (health, symbols); the streaming debate request is issued
// exactly once and never retried.
type retryableClient struct {
	client *http.Client
	config RetryConfig
}

func newRetryableClient(config RetryConfig) *retryableClient {
	return &retryableClient{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   10 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
			},
		},
		config: config,
	}
}

// doWithRetry executes a request, retrying transient failures with
// exponential backoff.
func (c *retryableClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	delay := c.config.BaseDelay

	for attempt := 0; attempt < c.config.MaxAttempts; attempt++ {
		reqClone := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			reqClone.Body = body
		}

		resp, err := c.client.Do(reqClone)
		if err != nil {
			if !isRetryableError(err) {
				return nil, err
			}
			lastErr = err
		} else if shouldRetryStatus(resp.StatusCode) {
			resp.Body.Close()
			lastErr = statusError(resp.StatusCode)
		} else {
			return resp, nil
		}

		if attempt < c.config.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				delay = min(delay*2, c.config.MaxDelay)
			}
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", c.config.MaxAttempts, lastErr)
}

// isRetryableError checks if a network error is worth retrying
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary()
	}

	return false
}

// shouldRetryStatus checks if an HTTP status code warrants a retry
func shouldRetryStatus(code int) bool {
	switch code {
	case 429, 502, 503, 504:
		return true
	default:
		return false
	}
}

// statusError returns a descriptive error for HTTP status
func statusError(code int) error {
	switch code {
	case 429:
		return ErrRateLimit
	case 502:
		return ErrBadGateway
	case 503:
		return ErrServerBusy
	case 504:
		return ErrGatewayTimeout
	default:
		return fmt.Errorf("HTTP %d", code)
	}
}
