package dandolo

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
	"github.com/rs/zerolog/log"
)

// request performs one logical API operation: build, send, classify. Only
// 5xx responses, timeouts, and connection failures are retried; everything
// else is terminal on the first attempt. Each retry waits retryDelay * 2^k.
func (c *Client) request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	if method != http.MethodGet && method != http.MethodPost {
		return nil, &Error{
			Code:    ErrCodeUnsupportedMethod,
			Message: fmt.Sprintf("unsupported HTTP method: %s", method),
		}
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("dandolo: failed to marshal request body: %w", err)
		}
	}

	endpoint := c.baseURL + path

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, retry, err := c.attempt(ctx, method, endpoint, path, payload)
		if err == nil {
			return raw, nil
		}
		if !retry || attempt == c.maxRetries {
			return nil, err
		}

		delay := c.retryDelay * time.Duration(1<<attempt)
		log.Warn().
			Str("path", path).
			Int("attempt", attempt+1).
			Dur("backoff", delay).
			Err(err).
			Msg("Transient failure, retrying")

		if werr := c.wait(ctx, delay); werr != nil {
			return nil, werr
		}
	}

	return nil, &Error{Code: ErrCodeMaxRetries, Message: "max retries exceeded"}
}

// attempt sends one HTTP request and classifies the outcome. The retry
// return reports whether the failure is transient.
func (c *Client) attempt(ctx context.Context, method, endpoint, path string, payload []byte) (json.RawMessage, bool, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, false, fmt.Errorf("dandolo: failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Msg("Dispatching API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Caller cancellation is not a transient failure.
		if ctx.Err() != nil {
			return nil, false, fmt.Errorf("dandolo: request aborted: %w", ctx.Err())
		}
		if isTimeout(err) {
			return nil, true, &Error{Code: ErrCodeTimeout, Message: "request timeout"}
		}
		return nil, true, &Error{Code: ErrCodeConnection, Message: "connection error"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, &Error{Code: ErrCodeConnection, Message: "connection error"}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.RawMessage(respBody), false, nil

	case resp.StatusCode == http.StatusUnauthorized:
		return nil, false, &Error{
			Code:       ErrCodeAuthentication,
			Message:    "invalid API key",
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, false, &Error{
			Code:       ErrCodeRateLimit,
			Message:    errorMessage(respBody, "rate limit exceeded"),
			StatusCode: resp.StatusCode,
			RetryAfter: resp.Header.Get("Retry-After"),
		}

	case resp.StatusCode == http.StatusNotFound:
		if strings.Contains(path, "model") {
			return nil, false, &Error{
				Code:       ErrCodeModelNotFound,
				Message:    "specified model not found",
				StatusCode: resp.StatusCode,
			}
		}
		return nil, false, &Error{
			Code:       ErrCodeAPI,
			Message:    fmt.Sprintf("endpoint not found: %s", path),
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode == http.StatusBadRequest:
		return nil, false, &Error{
			Code:       ErrCodeValidation,
			Message:    errorMessage(respBody, "invalid request"),
			StatusCode: resp.StatusCode,
		}

	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, &Error{
			Code:       ErrCodeServer,
			Message:    fmt.Sprintf("server error: %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}

	default:
		return nil, false, &Error{
			Code:       ErrCodeAPI,
			Message:    errorMessage(respBody, fmt.Sprintf("unknown error: %d", resp.StatusCode)),
			StatusCode: resp.StatusCode,
		}
	}
}

// wait blocks for the backoff delay, or until the context is cancelled.
// Only the calling goroutine sleeps.
func (c *Client) wait(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("dandolo: retry aborted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func isTimeout(err error) bool {
	urlErr, ok := err.(*url.Error)
	return ok && urlErr.Timeout()
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.request(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.request(ctx, http.MethodPost, path, body)
}
