package reason

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bhavyasharma05/fake-news-detector/internal/core/common"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
	"github.com/bhavyasharma05/fake-news-detector/internal/llm"
)

const maxPromptChars = 500

var requiredKeys = []string{"credibility_score", "label", "explanation", "sources"}

// Reasoner asks a generative model to weigh all gathered evidence and produce
// the final verdict directly. It has no internal fallback: every failure is
// returned to the caller, which owns the degradation strategy.
type Reasoner struct {
	llm llm.LLMClient
}

func NewReasoner(client llm.LLMClient) *Reasoner {
	return &Reasoner{llm: client}
}

// Infer builds the reasoning prompt from the pipeline's earlier findings,
// issues one generation request, and parses the model's answer into a verdict.
func (r *Reasoner) Infer(ctx context.Context, text string, sources []model.Source, factCheck *model.FactCheck, label model.Label, confidence float64) (model.Verdict, error) {
	prompt, err := buildPrompt(text, sources, factCheck, label, confidence)
	if err != nil {
		return model.Verdict{}, err
	}

	response, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		return model.Verdict{}, fmt.Errorf("reasoning request failed: %w", err)
	}

	return ParseVerdict(response)
}

func buildPrompt(text string, sources []model.Source, factCheck *model.FactCheck, label model.Label, confidence float64) (string, error) {
	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}
	textJSON, err := json.Marshal(text)
	if err != nil {
		return "", fmt.Errorf("failed to encode text: %w", err)
	}
	if sources == nil {
		sources = []model.Source{}
	}
	sourcesJSON, err := json.Marshal(sources)
	if err != nil {
		return "", fmt.Errorf("failed to encode sources: %w", err)
	}
	factCheckJSON, err := json.Marshal(factCheck) // nil encodes as null
	if err != nil {
		return "", fmt.Errorf("failed to encode fact-check: %w", err)
	}

	return fmt.Sprintf(`INSTRUCTIONS: You are a fact-check assistant. Use only the input data to produce ONE valid JSON object and NOTHING ELSE. Return only JSON with keys: credibility_score, label, explanation, sources. INPUT: {"text":%s, "sources":%s, "fact_check":%s, "classifier_label":%q, "classifier_confidence":%g}. TASK: 1) compute credibility_score (0-100), 2) pick label (Fake/Real/Uncertain), 3) short explanation (1-2 sentences) referencing which sources influenced the decision, 4) return sources array (title,url,snippet).`,
		textJSON, sourcesJSON, factCheckJSON, label, confidence), nil
}

// ParseVerdict extracts the verdict object from raw model output. The model
// is known to wrap its answer in markdown fences or prose, so the object is
// located by the greedy first-'{' to last-'}' span after fence stripping.
// All four keys must be present; absent keys are a hard failure, never
// fabricated defaults.
func ParseVerdict(response string) (model.Verdict, error) {
	fields, err := common.ParseJSON[map[string]json.RawMessage](response)
	if err != nil {
		return model.Verdict{}, err
	}

	for _, key := range requiredKeys {
		if _, ok := fields[key]; !ok {
			return model.Verdict{}, fmt.Errorf("reasoning response missing required key %q", key)
		}
	}

	score, err := coerceInt(fields["credibility_score"])
	if err != nil {
		return model.Verdict{}, fmt.Errorf("invalid credibility_score: %w", err)
	}

	var label string
	if err := json.Unmarshal(fields["label"], &label); err != nil {
		return model.Verdict{}, fmt.Errorf("invalid label: %w", err)
	}

	var explanation string
	if err := json.Unmarshal(fields["explanation"], &explanation); err != nil {
		return model.Verdict{}, fmt.Errorf("invalid explanation: %w", err)
	}

	// Missing sub-fields on a source default to empty strings.
	var sources []model.Source
	if err := json.Unmarshal(fields["sources"], &sources); err != nil {
		return model.Verdict{}, fmt.Errorf("invalid sources: %w", err)
	}

	// Clamping is the verdict constructor's contract, not the parser's.
	return model.NewVerdict(score, label, explanation, sources), nil
}

func coerceInt(raw json.RawMessage) (int, error) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v, nil
		}
	}
	return 0, fmt.Errorf("value %s is not numeric", string(raw))
}
