// Package api provides the HTTP client for the interview template backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/interview-template-editor/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "TemplateEditor/1.0"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// Error represents a failed backend call.
type Error struct {
	Op         string
	URL        string
	StatusCode int
	Message    string
	// ServerMessage is the human-readable message from the error payload, if any.
	ServerMessage string
	Cause         error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.ServerMessage != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.ServerMessage)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Op, e.URL, msg, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.URL, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns the backend's own error message, or "" if it sent none.
func (e *Error) UserMessage() string {
	return e.ServerMessage
}

// Options configures the client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Verbose   bool
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the template backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	verbose    bool
}

// NewClient creates a client for the backend at opts.BaseURL.
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, &Error{
			Op:      "init",
			URL:     opts.BaseURL,
			Message: "invalid base URL",
			Cause:   err,
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		headers:    opts.Headers,
		verbose:    opts.Verbose,
	}, nil
}

// GetTemplate fetches a template with its questions.
func (c *Client) GetTemplate(ctx context.Context, id string) (*types.TemplateResponse, error) {
	body, err := c.do(ctx, "get template", http.MethodGet, c.templatePath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeTemplate("get template", c.templatePath(id), body)
}

// GetTemplateKeywords fetches the scoring keywords of a template.
func (c *Client) GetTemplateKeywords(ctx context.Context, id string) (*types.KeywordsResponse, error) {
	path := c.templatePath(id) + "/keywords"
	body, err := c.do(ctx, "get keywords", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var resp types.KeywordsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Op: "get keywords", URL: path, Message: "failed to parse response", Cause: err}
	}
	return &resp, nil
}

// UpdateTemplate replaces the template's title, description and questions.
// The returned template is nil when the backend answers without a body.
func (c *Client) UpdateTemplate(ctx context.Context, id string, req *types.UpdateTemplateRequest) (*types.TemplateResponse, error) {
	path := c.templatePath(id)
	if err := req.Validate(); err != nil {
		return nil, &Error{Op: "update template", URL: path, Message: "invalid request", Cause: err}
	}
	body, err := c.do(ctx, "update template", http.MethodPut, path, req)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	resp, err := decodeTemplate("update template", path, body)
	if err != nil {
		// The update itself succeeded; an unreadable body only loses the new ids.
		log.Printf("[API] Ignoring unreadable update response for template %s: %v", id, err)
		return nil, nil
	}
	return resp, nil
}

// ReplaceKeywords replaces the template's whole keyword set.
func (c *Client) ReplaceKeywords(ctx context.Context, id string, req *types.ReplaceKeywordsRequest) error {
	path := c.templatePath(id) + "/keywords"
	if err := req.Validate(); err != nil {
		return &Error{Op: "replace keywords", URL: path, Message: "invalid request", Cause: err}
	}
	_, err := c.do(ctx, "replace keywords", http.MethodPost, path, req)
	return err
}

func (c *Client) templatePath(id string) string {
	return "/templates/" + url.PathEscape(id)
}

// do sends a JSON request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	target := c.baseURL.String() + path

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Op: op, URL: target, Message: "failed to encode request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, &Error{Op: op, URL: target, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, URL: target, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if c.verbose {
		log.Printf("[API] %s %s -> %d in %v", method, path, resp.StatusCode, time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Op:            op,
			URL:           target,
			StatusCode:    resp.StatusCode,
			Message:       fmt.Sprintf("HTTP status %d", resp.StatusCode),
			ServerMessage: parseErrorMessage(data),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, URL: target, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}
	return data, nil
}

// decodeTemplate accepts both a bare template object and one wrapped as
// {"template": {...}}.
func decodeTemplate(op, path string, body []byte) (*types.TemplateResponse, error) {
	var envelope struct {
		Template json.RawMessage `json:"template"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Template) > 0 && envelope.Template[0] == '{' {
		body = envelope.Template
	}

	var resp types.TemplateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Op: op, URL: path, Message: "failed to parse response", Cause: err}
	}
	return &resp, nil
}

// parseErrorMessage extracts the message from an error payload; "" if the body
// is not a recognisable error object.
func parseErrorMessage(body []byte) string {
	var payload types.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Text())
}
