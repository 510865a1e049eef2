package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Ayash-Bera/ophelia/frontend/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultSearchPath is the endpoint appended to the base URL.
const DefaultSearchPath = "/search"

// Client talks to the search backend over HTTP.
type Client struct {
	baseURL    string
	searchPath string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithSearchPath overrides the endpoint path appended to the base URL.
func WithSearchPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.searchPath = path
		}
	}
}

// WithHTTPClient replaces the default HTTP client, e.g. to add transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a search backend client. No timeout is set on the
// underlying HTTP client; callers bound requests through the context.
func NewClient(baseURL string, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		searchPath: DefaultSearchPath,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search posts {"query": query} to the search endpoint. Any valid JSON body
// that is not an object (null, false, 0, "", arrays, strings) yields a nil
// response and a nil error, which renders as no results.
func (c *Client) Search(ctx context.Context, query string) (*models.SearchResponse, error) {
	body, err := c.makeRequest(ctx, http.MethodPost, c.searchPath, models.SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}
	return decodeSearchResponse(body)
}

func decodeSearchResponse(body json.RawMessage) (*models.SearchResponse, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedResponse)
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}

	var response models.SearchResponse
	if err := json.Unmarshal(trimmed, &response); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &response, nil
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) (json.RawMessage, error) {
	url := c.baseURL + endpoint

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method":       method,
		"url":          url,
		"payload_size": len(jsonData),
	}).Debug("Making search request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The body of a failed response is never parsed.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrTransport, err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"method":        method,
		"url":           url,
		"response_size": len(responseBody),
	}).Debug("Search response received")

	return responseBody, nil
}
