package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// maxResponseBodySize caps how many body bytes a call will accept. The
// ceiling counts raw bytes received from the transport, never decoded
// characters, so it is deterministic regardless of the body's text
// encoding.
const maxResponseBodySize = 10 * 1024 * 1024 // 10 MiB

// send runs one request/response exchange: encode, dispatch, size-limit,
// classify, and return the response document as bytes the caller owns.
// Validation has already happened by the time send runs.
func (c *Client) send(ctx context.Context, path string, reqBody any) (json.RawMessage, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	callID := uuid.NewString()
	start := time.Now()
	c.logger.DebugContext(ctx, "routing call start",
		"call_id", callID,
		"path", path,
		"request_bytes", len(payload),
	)
	if c.verbose {
		c.logger.DebugContext(ctx, "routing call request body",
			"call_id", callID,
			"body", truncateForLog(payload),
		)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("Accept", "application/json")
	// The auth header goes on this request value only. The http.Client and
	// its transport may be shared across clients and concurrent calls, so
	// their defaults are never touched.
	if c.authHeader != "" {
		httpReq.Header.Set(c.authHeader, c.authValue)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = c.classifyAbort(ctx, err)
		c.logAbort(ctx, callID, path, start, err)
		return nil, err
	}
	defer httpResp.Body.Close()

	// Declared length first: a body the server admits is over the ceiling
	// is rejected without reading a single byte of it.
	if httpResp.ContentLength > maxResponseBodySize {
		err := fmt.Errorf("%w: declared content length %d", ErrResponseTooLarge, httpResp.ContentLength)
		c.logAbort(ctx, callID, path, start, err)
		return nil, err
	}

	body, err := readCapped(httpResp.Body, maxResponseBodySize)
	if err != nil {
		if !errors.Is(err, ErrResponseTooLarge) {
			// A mid-body failure can still be the caller's cancellation or
			// the deadline firing while streaming.
			err = c.classifyAbort(ctx, err)
		}
		c.logAbort(ctx, callID, path, start, err)
		return nil, err
	}

	duration := time.Since(start)
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		re := newRemoteError(httpResp.StatusCode, body)
		c.logger.WarnContext(ctx, "routing call failed",
			"call_id", callID,
			"path", path,
			"status", httpResp.StatusCode,
			"error_code", re.ErrorCode,
			"duration_ms", duration.Milliseconds(),
		)
		return nil, re
	}

	c.logger.InfoContext(ctx, "routing call complete",
		"call_id", callID,
		"path", path,
		"status", httpResp.StatusCode,
		"duration_ms", duration.Milliseconds(),
		"response_bytes", len(body),
	)
	if c.verbose {
		c.logger.DebugContext(ctx, "routing call response body",
			"call_id", callID,
			"body", truncateForLog(body),
		)
	}

	// The document handed onward must not alias pipeline scratch space.
	return json.RawMessage(bytes.Clone(body)), nil
}

// readCapped reads at most limit raw bytes. Crossing the limit mid-stream
// discards everything buffered and fails; a body with no declared length is
// counted byte by byte as it arrives.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: limit + 1}
	body, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: body exceeded %d bytes", ErrResponseTooLarge, limit)
	}
	return body, nil
}

// classifyAbort distinguishes the caller's cancellation from the configured
// timeout. Both surface as the same context primitive underneath, so the
// decision is which context actually fired: the caller's means cancelled,
// otherwise an observed deadline means timed out.
func (c *Client) classifyAbort(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if ctx.Err() == context.DeadlineExceeded || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %v: %v", ErrTimeout, c.timeout, err)
	}
	return fmt.Errorf("execute request: %w", err)
}

func (c *Client) logAbort(ctx context.Context, callID, path string, start time.Time, err error) {
	c.logger.WarnContext(ctx, "routing call aborted",
		"call_id", callID,
		"path", path,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err.Error(),
	)
}

// truncateForLog bounds verbose body logging to the same cap as RemoteError
// bodies.
func truncateForLog(body []byte) string {
	if len(body) > maxErrorBodySize {
		return string(body[:maxErrorBodySize]) + "...(truncated)"
	}
	return string(body)
}
