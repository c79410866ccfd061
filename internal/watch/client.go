// Package watch implements the terminal watch client: a debounced
// typeahead controller, the search/render pipeline with periodic
// refresh, a local profile store, and the recommendation panel. All
// data comes from the dashboard service HTTP API.
package watch

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

	"golang-stock-dashboard/internal/entity"
)

// API is the slice of the dashboard service the watch client consumes.
type API interface {
	Suggest(ctx context.Context, query string) ([]entity.StockSuggestion, error)
	Search(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error)
	News(ctx context.Context, symbol string) ([]entity.NewsItem, error)
	Recommendations(ctx context.Context, profile entity.UserProfile) ([]entity.RecommendationResult, error)
}

// APIError is a non-2xx response carrying the server's error message
// when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the dashboard service API under a fixed base path.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client for the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Suggest(ctx context.Context, query string) ([]entity.StockSuggestion, error) {
	var out []entity.StockSuggestion
	path := "/api/suggest?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Search(ctx context.Context, symbol string) (*entity.QuoteSnapshot, error) {
	var out entity.QuoteSnapshot
	path := "/api/search/" + url.PathEscape(symbol)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) News(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	var out []entity.NewsItem
	path := "/api/news/" + url.PathEscape(symbol)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Recommendations(ctx context.Context, profile entity.UserProfile) ([]entity.RecommendationResult, error) {
	var out []entity.RecommendationResult
	if err := c.do(ctx, http.MethodPost, "/api/recommendations", profile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeAPIError prefers the server's structured {"error": ...} message
// over the bare status code.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		apiErr.Message = body.Error
	}
	return apiErr
}
