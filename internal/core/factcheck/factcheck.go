package factcheck

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
	defaultBaseURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

	maxQueryChars = 200
	pageSize      = 3
)

// Client looks up published fact-checks through the Google Fact Check Tools API.
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

type claimsResponse struct {
	Claims []struct {
		ClaimReview []struct {
			TextualRating string `json:"textualRating"`
			URL           string `json:"url"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Query returns the most relevant fact-check verdict for text, or nil when no
// API key is configured, nothing relevant exists, or the lookup fails. Only
// the first claim's first review is kept; later claims are noise for a single
// headline-sized input.
func (c *Client) Query(ctx context.Context, text string) *model.FactCheck {
	if c.apiKey == "" {
		log.Printf("fact-check lookup skipped: no API key configured")
		return nil
	}

	if len(text) > maxQueryChars {
		text = text[:maxQueryChars]
	}
	endpoint := fmt.Sprintf("%s?query=%s&languageCode=en&pageSize=%d&key=%s",
		c.baseURL, url.QueryEscape(text), pageSize, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Fact Check Tools lookup failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Fact Check Tools failed with status %d", resp.StatusCode)
		return nil
	}

	var data claimsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Fact Check Tools returned malformed payload: %v", err)
		return nil
	}

	if len(data.Claims) == 0 || len(data.Claims[0].ClaimReview) == 0 {
		log.Printf("no fact-check claims found")
		return nil
	}

	review := data.Claims[0].ClaimReview[0]
	return &model.FactCheck{
		Rating: review.TextualRating,
		URL:    review.URL,
	}
}
