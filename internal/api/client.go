package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is an authenticated asset API client.
// The CSRF token is supplied by the embedding application as
// configuration; the client never fetches or refreshes it itself.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the given API base URL and CSRF token.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 5 * time.Minute, // generous for large uploads
		},
	}
}

// do executes the request with standard headers. Mutating requests
// carry the CSRF token; reads do not need it.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if req.Method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", c.token)
	}
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.http.Do(req)
}

// doJSON sends a request with an optional JSON body and decodes the
// JSON response into out.
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) jsonRequest(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
	}
	return http.NewRequestWithContext(ctx, method, url, bodyReader)
}

// url builds an API URL from path segments.
func (c *Client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return &ValidationError{Message: readErrorMessage(resp.Body)}
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("asset API error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// readErrorMessage extracts {"message": ...} from an error body,
// falling back to the raw text.
func readErrorMessage(r io.Reader) string {
	body, _ := io.ReadAll(r)
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
