// Package spoonacular is a minimal client for the Spoonacular recipe API.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response is kept in APIError
const maxErrorBody = 512

// Client calls the Spoonacular recipe endpoints
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// SearchHit is one entry from the findByIngredients endpoint
type SearchHit struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// Information is the subset of the recipe information endpoint this service reads
type Information struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	SourceURL string `json:"sourceUrl"`
	Image     string `json:"image"`
}

// APIError is returned for non-2xx responses
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spoonacular API error %d: %s", e.StatusCode, e.Body)
}

// NewClient creates a client; a zero timeout leaves requests bounded only by their context
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, apiKey, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client around an existing http.Client
func NewClientWithHTTP(baseURL, apiKey string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// FindByIngredients searches for recipes using the given ingredients
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]SearchHit, error) {
	query := url.Values{}
	query.Set("ingredients", strings.Join(ingredients, ","))
	query.Set("number", strconv.Itoa(number))

	var hits []SearchHit
	if err := c.get(ctx, "/recipes/findByIngredients", query, &hits); err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return hits, nil
}

// Information fetches the detail record for a single recipe
func (c *Client) Information(ctx context.Context, id int64) (*Information, error) {
	path := fmt.Sprintf("/recipes/%d/information", id)

	var info Information
	if err := c.get(ctx, path, url.Values{}, &info); err != nil {
		return nil, fmt.Errorf("failed to fetch recipe %d: %w", id, err)
	}
	return &info, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("apiKey", c.apiKey)
	u := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
