// Package wayback provides a client for the Internet Archive availability API.
package wayback

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production availability API endpoint.
const DefaultBaseURL = "https://archive.org"

// Client is an availability API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Snapshot is the closest archived capture of a page.
type Snapshot struct {
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"` // YYYYMMDDhhmmss
	Status    string `json:"status"`
	Available bool   `json:"available"`
}

type availabilityResponse struct {
	URL               string `json:"url"`
	ArchivedSnapshots struct {
		Closest *Snapshot `json:"closest"`
	} `json:"archived_snapshots"`
}

// NewClient creates a new availability API client.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Nearest returns the snapshot closest to now for the given page URL, or nil
// when the archive holds no capture.
func (c *Client) Nearest(pageURL string) (*Snapshot, error) {
	return c.NearestAt(pageURL, "")
}

// NearestAt returns the snapshot closest to the given timestamp
// (YYYY, YYYYMMDD, or YYYYMMDDhhmmss), or nil when none exists.
func (c *Client) NearestAt(pageURL, timestamp string) (*Snapshot, error) {
	query := url.Values{}
	query.Set("url", pageURL)
	if timestamp != "" {
		query.Set("timestamp", timestamp)
	}

	req, err := http.NewRequest("GET", c.baseURL+"/wayback/available?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var response availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return response.ArchivedSnapshots.Closest, nil
}
