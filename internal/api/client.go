// Package api is the single gateway for every outbound request to the
// ticketing backend. It enforces the domain allow-list, retries transient
// failures with exponential backoff, classifies errors, and records each
// attempt in the diagnostic activity log.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/3fenban/fanban-cli/internal/config"
	"github.com/3fenban/fanban-cli/internal/model"
	"github.com/3fenban/fanban-cli/internal/storage"
)

// Request describes one HTTP call. It is created per call site and owned by
// the dispatch that issues it.
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    any           // JSON-serialized when non-nil
	Timeout time.Duration // per-attempt; 0 means the configured timeout
}

// Response is a completed HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues requests against the configured backend.
type Client struct {
	cfg  config.Config
	http *http.Client
	log  *Recorder

	// sleep is the backoff wait, replaced in tests. The default honors
	// context cancellation.
	sleep func(ctx context.Context, d time.Duration) error
	// backoffUnit is the base of the 2^attempt backoff, one second in
	// production.
	backoffUnit time.Duration
}

// NewClient returns a Client that logs activity to store.
func NewClient(cfg config.Config, store storage.Store) *Client {
	return &Client{
		cfg:         cfg,
		http:        &http.Client{},
		log:         NewRecorder(store),
		sleep:       sleepCtx,
		backoffUnit: time.Second,
	}
}

// Config returns the client's resolved configuration.
func (c *Client) Config() config.Config {
	return c.cfg
}

// Log returns the activity recorder, for diagnostics commands.
func (c *Client) Log() *Recorder {
	return c.log
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type requestPayload struct {
	URL     string `json:"url"`
	Method  string `json:"method"`
	Attempt int    `json:"attempt"`
}

type responsePayload struct {
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
	DataSize   string `json:"data_size"`
}

type errorPayload struct {
	URL     string `json:"url"`
	Attempt int    `json:"attempt,omitempty"`
	Error   string `json:"error"`
}

// Dispatch issues req with the configured retry count.
func (c *Client) Dispatch(ctx context.Context, req Request) (*Response, error) {
	return c.DispatchWithRetry(ctx, req, c.cfg.RetryCount)
}

// DispatchWithRetry issues req with an explicit retry budget: up to
// retryCount+1 attempts including the first. Attempts within one dispatch
// are strictly sequential, separated by 2^attempt seconds of backoff.
// Non-retryable failures (HTTP 400/401/403, disallowed domain) surface on
// first occurrence; a URL outside the allow-list is rejected before any
// attempt is made.
func (c *Client) DispatchWithRetry(ctx context.Context, req Request, retryCount int) (*Response, error) {
	requestID := uuid.NewString()

	if !config.IsDomainAllowed(req.URL, c.cfg.Environment) {
		reqErr := &RequestError{
			Kind:       KindDomain,
			RawMessage: fmt.Sprintf("url not in domain list: %s", req.URL),
		}
		c.log.Record(EventError, requestID, errorPayload{URL: req.URL, Error: reqErr.Error()})
		return nil, fmt.Errorf("%s: %w", Classify(reqErr).Message, reqErr)
	}
	if retryCount < 0 {
		retryCount = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retryCount; attempt++ {
		c.log.Record(EventRequest, requestID, requestPayload{
			URL:     req.URL,
			Method:  req.Method,
			Attempt: attempt + 1,
		})

		resp, err := c.do(ctx, req)
		if err == nil {
			c.log.Record(EventResponse, requestID, responsePayload{
				URL:        req.URL,
				StatusCode: resp.StatusCode,
				DataSize:   humanize.Bytes(uint64(len(resp.Body))),
			})
			return resp, nil
		}

		lastErr = err
		c.log.Record(EventError, requestID, errorPayload{
			URL:     req.URL,
			Attempt: attempt + 1,
			Error:   err.Error(),
		})

		verdict := Classify(err)
		if !verdict.Retryable || attempt == retryCount {
			return nil, fmt.Errorf("%s: %w", verdict.Message, err)
		}
		if err := c.sleep(ctx, time.Duration(1<<attempt)*c.backoffUnit); err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s: %w", Classify(lastErr).Message, lastErr)
}

// do issues exactly one attempt with the per-attempt timeout.
func (c *Client) do(ctx context.Context, req Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fromTransport(unwrapURLError(err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fromTransport(err)
	}
	if httpResp.StatusCode >= http.StatusBadRequest {
		return nil, &RequestError{
			Kind:       KindHTTP,
			HTTPStatus: httpResp.StatusCode,
			RawMessage: httpResp.Status,
		}
	}
	return &Response{StatusCode: httpResp.StatusCode, Body: body}, nil
}

// CallEnvelope dispatches to an endpoint path and decodes the business
// response envelope. Transport and HTTP failures return an error; a
// success=false envelope is returned as data, not an error, so callers can
// surface the server's message inline.
func (c *Client) CallEnvelope(ctx context.Context, endpoint, method string, body any) (*model.Envelope, error) {
	resp, err := c.Dispatch(ctx, Request{
		URL:    c.cfg.BuildURL(endpoint),
		Method: method,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	// Endpoints that return bare payloads (no success flag) get wrapped in a
	// synthetic successful envelope.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &probe); err != nil {
		return &model.Envelope{Success: true, Data: resp.Body}, nil
	}
	if _, ok := probe["success"]; !ok {
		return &model.Envelope{Success: true, Data: resp.Body}, nil
	}
	var env model.Envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}
	if env.Data == nil {
		env.Data = resp.Body
	}
	return &env, nil
}
