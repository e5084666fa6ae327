// Package api is the REST client for the raven backend. It owns bearer
// attachment, JSON and multipart encoding, and the normalization of the
// backend's loosely shaped payloads into the canonical domain types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxResponseSize caps response bodies before decoding.
const maxResponseSize = 1 << 20 // 1MB

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Error carries the HTTP status and the human-readable message extracted
// from the backend's error body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

type request struct {
	method string
	path   string
	token  string
	query  url.Values
	body   any // JSON-encoded unless it is a *Form
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	var bodyReader io.Reader
	var contentType string

	if req.body != nil {
		if form, ok := req.body.(*Form); ok {
			ct, buf, err := form.encode()
			if err != nil {
				return fmt.Errorf("encode form: %w", err)
			}
			bodyReader = buf
			contentType = ct
		} else {
			data, err := json.Marshal(req.body)
			if err != nil {
				return fmt.Errorf("marshal request: %w", err)
			}
			bodyReader = bytes.NewReader(data)
			contentType = "application/json"
		}
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	if req.method != http.MethodGet && req.method != http.MethodHead {
		// Client-generated key so the backend can drop duplicate submits
		// (double-clicked Approve, retried POSTs).
		httpReq.Header.Set("Idempotency-Key", uuid.New().String())
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp, body)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorFromResponse extracts a human-readable message from an error body.
// The backend is inconsistent about error shapes, so the fallback chain is
// deliberately long: detail, message, error, non_field_errors, the first
// string-valued field, the raw body text, then a generic message.
func errorFromResponse(resp *http.Response, body []byte) *Error {
	generic := fmt.Sprintf("Request failed: %d", resp.StatusCode)

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			if msg := extractMessage(data); msg != "" {
				return &Error{Status: resp.StatusCode, Message: msg}
			}
		}
		return &Error{Status: resp.StatusCode, Message: generic}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return &Error{Status: resp.StatusCode, Message: text}
	}
	return &Error{Status: resp.StatusCode, Message: generic}
}

func extractMessage(data any) string {
	switch v := data.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"detail", "message", "error"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
		if arr, ok := v["non_field_errors"].([]any); ok && len(arr) > 0 {
			if s, ok := arr[0].(string); ok && s != "" {
				return s
			}
		}
		// Field-keyed validation errors: take the first string-valued
		// field, scanning keys in sorted order so the pick is stable.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch fv := v[k].(type) {
			case string:
				if fv != "" {
					return fv
				}
			case []any:
				if len(fv) > 0 {
					if s, ok := fv[0].(string); ok && s != "" {
						return s
					}
				}
			}
		}
	}
	return ""
}
