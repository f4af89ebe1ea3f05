package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("resource not found")
)

// FieldError is one entry of the backend's structured validation error list.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// APIError carries a decoded upstream error response.
type APIError struct {
	StatusCode    int
	Message       string       `json:"message"`
	ErrorMessages []FieldError `json:"errorMessages"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream error: status=%d", e.StatusCode)
}

// IsDuplicateKey reports whether the backend rejected the request because of a
// unique-index collision, and returns the offending field path when known.
func (e *APIError) IsDuplicateKey() (string, bool) {
	if !strings.Contains(e.Message, "Duplicate key error") {
		return "", false
	}
	field := "field"
	if len(e.ErrorMessages) > 0 && e.ErrorMessages[0].Path != "" {
		field = e.ErrorMessages[0].Path
	}
	return field, true
}

// UserMessage renders the error the way the admin UI presents it: duplicate keys
// get a field-specific message, structured validation lists are aggregated per
// path, anything else falls back to the backend message or a generic one.
func (e *APIError) UserMessage() string {
	if field, ok := e.IsDuplicateKey(); ok {
		return fmt.Sprintf("This %s is already in use by another product. Please choose a different one.", field)
	}
	if len(e.ErrorMessages) > 0 {
		parts := make([]string, 0, len(e.ErrorMessages))
		for _, fe := range e.ErrorMessages {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Path, fe.Message))
		}
		return strings.Join(parts, "\n")
	}
	if e.Message != "" {
		return e.Message
	}
	return "Failed to save product"
}

// envelope is the backend's uniform {"data": ...} response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Client talks to the external catalog backend. All product and taxonomy data is
// owned by that service; this client only shuttles requests and decodes the
// response envelope.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return c.http.Do(req)
}

// decodeData unwraps a successful envelope into out, or turns an error status
// into an *APIError.
func decodeData(resp *http.Response, out interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if env.Data == nil {
		return fmt.Errorf("response missing data field")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	// Best effort: the backend is not guaranteed to return JSON on errors.
	if err := json.Unmarshal(body, apiErr); err != nil && apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(bytes.ToValidUTF8(body, nil)))
	}
	return apiErr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeData(resp, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	resp, err := c.do(ctx, method, path, nil, body, "application/json")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return decodeData(resp, out)
}
