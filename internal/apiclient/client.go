// Package apiclient is a small HTTP client for the activities API.
//
// Example usage:
//
//	client := apiclient.New("http://localhost:8000")
//	catalog, err := client.ListActivities(ctx)
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/activities-board/internal/model"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// APIError is returned when the API answers with a non-2xx status.
// Detail holds the server-provided explanation and is empty when the
// response carried none.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status code: %d: %s", e.StatusCode, e.Detail)
}

// DetailOf returns the server-provided detail carried by err, if any.
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// IsTransport reports whether err happened before a response was received
// or while decoding it, as opposed to an API-level failure.
func IsTransport(err error) bool {
	var apiErr *APIError
	return err != nil && !errors.As(err, &apiErr)
}

// Client talks to one activities API host.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the given base URL, e.g. "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListActivities fetches the whole catalog.
func (c *Client) ListActivities(ctx context.Context) (model.Catalog, error) {
	var catalog model.Catalog
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/activities", &catalog); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return catalog, nil
}

// Signup registers email for activity and returns the server's message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	q := url.Values{}
	q.Set("email", email)
	u := fmt.Sprintf("%s/activities/%s/signup?%s", c.baseURL, url.PathEscape(activity), q.Encode())

	var resp model.MessageResponse
	if err := c.do(ctx, http.MethodPost, u, &resp); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return resp.Message, nil
}

// RemoveParticipant removes email from activity and returns the server's message.
func (c *Client) RemoveParticipant(ctx context.Context, activity, email string) (string, error) {
	u := fmt.Sprintf("%s/activities/%s/participants/%s", c.baseURL, url.PathEscape(activity), url.PathEscape(email))

	var resp model.MessageResponse
	if err := c.do(ctx, http.MethodDelete, u, &resp); err != nil {
		return "", fmt.Errorf("remove participant: %w", err)
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er model.ErrorResponse
		if json.Unmarshal(body, &er) == nil {
			apiErr.Detail = er.Detail
		}
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
