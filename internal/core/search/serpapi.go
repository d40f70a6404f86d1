package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
)

const (
	defaultBaseURL = "https://serpapi.com/search.json"

	maxQueryChars = 200
	maxResults    = 5
)

// Client queries SerpAPI Google News for coverage related to the analyzed text.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
}

func NewClient(httpClient *http.Client, apiKey string, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

type newsResponse struct {
	NewsResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"news_results"`
}

// Query returns up to five news results related to text, most relevant first.
// Search evidence is optional for the pipeline, so failures of any kind
// degrade to an empty list rather than an error.
func (c *Client) Query(ctx context.Context, text string) []model.Source {
	if len(text) > maxQueryChars {
		text = text[:maxQueryChars]
	}
	endpoint := fmt.Sprintf("%s?q=%s&tbm=nws&num=%d&api_key=%s",
		c.baseURL, url.QueryEscape(text), maxResults, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return []model.Source{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("SerpAPI search failed: %v", err)
		return []model.Source{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("SerpAPI failed with status %d", resp.StatusCode)
		return []model.Source{}
	}

	var data newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("SerpAPI returned malformed payload: %v", err)
		return []model.Source{}
	}

	sources := make([]model.Source, 0, maxResults)
	for _, item := range data.NewsResults {
		if len(sources) == maxResults {
			break
		}
		sources = append(sources, model.Source{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}

	log.Printf("SerpAPI found %d sources", len(sources))
	return sources
}
