package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
)

const (
	defaultModelURL = "https://router.huggingface.co/hf-inference/models/mrm8488/bert-tiny-finetuned-fake-news-detection"

	maxInputChars = 1000

	neutralConfidence = 0.5
)

// Client submits text to a hosted fake/real classifier (HuggingFace
// inference) and normalizes its output.
type Client struct {
	http     *http.Client
	token    string
	modelURL string
}

func NewClient(httpClient *http.Client, token string, modelURL string) *Client {
	if modelURL == "" {
		modelURL = defaultModelURL
	}
	return &Client{
		http:     httpClient,
		token:    token,
		modelURL: modelURL,
	}
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify returns the normalized label and confidence for text. The model
// answers with a nested candidate list; the highest-scoring candidate wins.
// Any failure yields the neutral (Uncertain, 0.5).
func (c *Client) Classify(ctx context.Context, text string) (model.Label, float64) {
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return model.LabelUncertain, neutralConfidence
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL, bytes.NewReader(payload))
	if err != nil {
		return model.LabelUncertain, neutralConfidence
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("HuggingFace classification failed: %v", err)
		return model.LabelUncertain, neutralConfidence
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("HuggingFace failed with status %d", resp.StatusCode)
		return model.LabelUncertain, neutralConfidence
	}

	var candidates [][]prediction
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		log.Printf("unexpected HuggingFace response format: %v", err)
		return model.LabelUncertain, neutralConfidence
	}
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		log.Printf("empty HuggingFace prediction list")
		return model.LabelUncertain, neutralConfidence
	}

	best := candidates[0][0]
	for _, p := range candidates[0][1:] {
		if p.Score > best.Score {
			best = p
		}
	}

	label := model.NormalizeLabel(best.Label)
	log.Printf("HuggingFace: %s (%.2f)", label, best.Score)
	return label, best.Score
}
