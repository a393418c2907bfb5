package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// Article is a single headline entry.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

// Client fetches headlines from NewsAPI.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a news client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type apiResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// TopHeadlines returns headlines for a category and country.
func (c *Client) TopHeadlines(ctx context.Context, category, country string) ([]Article, error) {
	query := url.Values{}
	query.Set("category", category)
	query.Set("country", country)
	return c.fetch(ctx, "/top-headlines", query)
}

// Search returns articles matching a free-text query.
func (c *Client) Search(ctx context.Context, q string) ([]Article, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("sortBy", "publishedAt")
	return c.fetch(ctx, "/everything", query)
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("NEWS_API_KEY not configured")
	}
	query.Set("apiKey", c.apiKey)
	query.Set("pageSize", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	articles := make([]Article, 0, len(apiResp.Articles))
	for _, a := range apiResp.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
