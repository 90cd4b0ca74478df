// Package lookup implements the Word Lookup Provider: an HTTP client
// against a configurable pattern-lookup endpoint, shaped like the
// Datamuse "spelled like" query (sp=, ? wildcard, max=).
package lookup

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the Datamuse-compatible endpoint used when no other
// is configured.
const DefaultEndpoint = "https://api.datamuse.com/words"

// Result is one entry returned by the lookup endpoint.
type Result struct {
	Word string `json:"word"`
}

// Provider fetches candidate words matching a pattern from a remote
// corpus. fetch(pattern, max) -> list<word>.
type Provider interface {
	Fetch(pattern string, max int) ([]string, error)
}

// Client is an HTTP-backed Provider.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient returns a Client pointed at endpoint (DefaultEndpoint if
// empty) with a 10s request timeout.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Fetch issues an HTTP GET with `sp` set to pattern (crossgen's unknown
// wildcard translated to `?`) and `max` set to max. A non-2xx response is
// a soft failure: it returns (nil, nil) rather than an error, so a
// caller can simply treat a nil slice as "no candidates found" without
// distinguishing it from a transport error. A transport error (the
// request never got a response at all) still returns a non-nil error.
func (c *Client) Fetch(pattern string, max int) ([]string, error) {
	params := url.Values{}
	params.Set("sp", toProviderWildcard(pattern))
	if max > 0 {
		params.Set("max", fmt.Sprintf("%d", max))
	}

	fullURL := c.Endpoint + "?" + params.Encode()

	resp, err := c.HTTPClient.Get(fullURL)
	if err != nil {
		return nil, fmt.Errorf("lookup: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("lookup: decode response: %w", err)
	}

	words := make([]string, 0, len(results))
	for _, r := range results {
		words = append(words, strings.ToUpper(r.Word))
	}
	return words, nil
}

// toProviderWildcard rewrites crossgen's internal unknown character (_)
// to the provider's wildcard (?).
func toProviderWildcard(pattern string) string {
	return strings.ReplaceAll(pattern, "_", "?")
}
