package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/metrics"
)

const errorBodyReadLimit int64 = 4096

// Client is the typed HTTP client for the procurement backend. Every call
// carries the caller's upstream bearer token; the client itself holds no
// credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics attaches upstream call metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the procurement backend client.
func NewClient(cfg config.UpstreamConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client, nil
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, token, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, token, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, token, path, body, out)
}

func (c *Client) patchJSON(ctx context.Context, token, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, token, path, body, out)
}

func (c *Client) deleteJSON(ctx context.Context, token, path string) error {
	return c.doJSON(ctx, http.MethodDelete, token, path, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, token, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode upstream request body")
		}
		reader = bytes.NewReader(payload)
	}
	return c.do(ctx, method, token, path, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, token, path string, body io.Reader, contentType string, out any) error {
	if c == nil || c.httpClient == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "procurement backend client not configured")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upstream request")
	}
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncFailure(method, resourceLabel(path))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reach procurement backend")
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.ObserveRequest(method, resourceLabel(path), resp.StatusCode, time.Since(started))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.remoteError(resp, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode upstream response")
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decode upstream payload")
	}
	return nil
}

// remoteError converts a non-2xx upstream response into a coded error
// carrying the backend's message field when present.
func (c *Client) remoteError(resp *http.Response, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	var parsed struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &parsed)
	message := strings.TrimSpace(parsed.Message)
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}

	remote := &pkgerrors.RemoteError{
		Status:   resp.StatusCode,
		Endpoint: path,
		Message:  message,
	}
	return pkgerrors.Wrap(codeForStatus(resp.StatusCode), remote, "procurement backend call failed")
}

func codeForStatus(status int) pkgerrors.Code {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return pkgerrors.CodeValidation
	case http.StatusUnauthorized:
		return pkgerrors.CodeUnauthorized
	case http.StatusForbidden:
		return pkgerrors.CodeForbidden
	case http.StatusNotFound:
		return pkgerrors.CodeNotFound
	case http.StatusConflict:
		return pkgerrors.CodeConflict
	default:
		return pkgerrors.CodeUpstream
	}
}

func (c *Client) buildURL(path string) string {
	return fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
}

// resourceLabel keeps metric cardinality bounded by reporting only the first
// path segment.
func resourceLabel(path string) string {
	trimmed := strings.TrimLeft(path, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if idx := strings.IndexByte(trimmed, '?'); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}

// uploadMultipart streams a single file plus form fields to an upstream
// endpoint.
func (c *Client) uploadMultipart(ctx context.Context, token, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build multipart payload")
	}
	if _, err := io.Copy(part, file); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copy upload content")
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write upload field")
		}
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize multipart payload")
	}
	return c.do(ctx, http.MethodPost, token, path, &buf, writer.FormDataContentType(), out)
}

func listQuery(limit int, cursor, search string) string {
	values := url.Values{}
	if limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", limit))
	}
	if strings.TrimSpace(cursor) != "" {
		values.Set("cursor", strings.TrimSpace(cursor))
	}
	if strings.TrimSpace(search) != "" {
		values.Set("search", strings.TrimSpace(search))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
