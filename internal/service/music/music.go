package music

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const itunesSearchURL = "https://itunes.apple.com/search"

// LookupTimeout bounds a track lookup; past it the request is abandoned,
// not retried.
const LookupTimeout = 5 * time.Second

// Track is a single music lookup result.
type Track struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	URL      string `json:"url"`
	Duration string `json:"duration"`
}

// Client looks up tracks via the iTunes Search API.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a music client.
func NewClient() *Client {
	return &Client{httpClient: &http.Client{Timeout: LookupTimeout}}
}

type apiResponse struct {
	Results []struct {
		TrackName      string `json:"trackName"`
		ArtistName     string `json:"artistName"`
		TrackViewURL   string `json:"trackViewUrl"`
		TrackTimeMilli int    `json:"trackTimeMillis"`
	} `json:"results"`
}

// LookupTrack returns the first match for a query.
func (c *Client) LookupTrack(ctx context.Context, query string) (*Track, error) {
	ctx, cancel := context.WithTimeout(ctx, LookupTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("term", query)
	params.Set("media", "music")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, itunesSearchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	if len(apiResp.Results) == 0 {
		return nil, fmt.Errorf("no results for %q", query)
	}

	r := apiResp.Results[0]
	seconds := r.TrackTimeMilli / 1000
	return &Track{
		Title:    r.TrackName,
		Artist:   r.ArtistName,
		URL:      r.TrackViewURL,
		Duration: fmt.Sprintf("%d:%02d", seconds/60, seconds%60),
	}, nil
}
