// Package newsapi is a thin client for the NewsAPI.org v2 upstream.
//
// The client returns raw response payloads — the backend proxies them to the
// browser verbatim, so there is no point unmarshalling the article list into
// structs and re-marshalling it. Only the error envelope is decoded, to tell
// an application-level upstream failure apart from a transport one.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sakif/news-channel/internal/apperror"
)

// DefaultBaseURL is the production NewsAPI endpoint.
const DefaultBaseURL = "https://newsapi.org/v2"

// PageSize is fixed — the frontend renders a 12-card grid per page.
const PageSize = 12

const requestTimeout = 10 * time.Second

// Client calls the NewsAPI upstream.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a Client for the production endpoint. The HTTP client carries a
// bounded timeout so a hung upstream surfaces as a fetch failure instead of
// stalling the request forever.
func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, DefaultBaseURL)
}

// NewWithBaseURL creates a Client against an arbitrary base URL.
// Tests point this at an httptest server.
func NewWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// errorEnvelope is the slice of a NewsAPI response we need to detect
// application-level failures: {"status":"error","code":...,"message":...}.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TopHeadlines fetches a page of top headlines for a category.
func (c *Client) TopHeadlines(ctx context.Context, category string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(PageSize))
	return c.get(ctx, "/top-headlines", params)
}

// Everything searches all indexed articles for query, newest first.
func (c *Client) Everything(ctx context.Context, query string, page int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sortBy", "publishedAt")
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(PageSize))
	return c.get(ctx, "/everything", params)
}

// get performs the upstream request and classifies the outcome:
//
//   - transport failure (DNS, timeout, unreadable body) → plain wrapped error
//   - upstream reports status "error" → apperror.Upstream with its message
//   - otherwise → the raw payload, untouched
//
// The API key travels as a query parameter per the NewsAPI contract; it is
// appended here so it can never appear in a cache key or a log line.
func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	params.Set("apiKey", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi: reading %s response: %w", path, err)
	}

	// NewsAPI signals errors inside the JSON body (with a matching non-2xx
	// status). Decode just the envelope; an undecodable body from a non-2xx
	// response is still a transport-level failure.
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("newsapi: decoding %s response: %w", path, err)
	}
	if env.Status == "error" {
		return nil, apperror.Upstream(env.Message)
	}

	return json.RawMessage(body), nil
}
