package model

import "strings"

// Label classifies the credibility of analyzed content.
type Label string

const (
	LabelFake      Label = "Fake"
	LabelReal      Label = "Real"
	LabelUncertain Label = "Uncertain"
)

// MaxDisplaySources caps how many evidence items a verdict carries back to clients.
const MaxDisplaySources = 5

const insufficientDataExplanation = "Limited data available for comprehensive analysis."

// Source is one piece of external evidence found for the analyzed text.
// Immutable once constructed; list order is the producing adapter's relevance order.
type Source struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// FactCheck is the single most relevant published fact-check found for the text.
type FactCheck struct {
	Rating string `json:"rating"`
	URL    string `json:"url"`
}

// Verdict is the final analysis result returned to clients. Both the
// reasoning path and the local merge fallback produce this shape and both go
// through NewVerdict, so the invariants hold regardless of which path ran.
type Verdict struct {
	CredibilityScore int      `json:"credibility_score"`
	Label            Label    `json:"label"`
	Explanation      string   `json:"explanation"`
	Sources          []Source `json:"sources"`
}

// NormalizeLabel maps a raw label string from an external service onto the
// three-value scale. Matching is by substring so variants like "LABEL_FAKE"
// or "Mostly True" resolve without a lookup table; anything unrecognized is
// Uncertain.
func NormalizeLabel(raw string) Label {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "FAKE") || strings.Contains(upper, "FALSE"):
		return LabelFake
	case strings.Contains(upper, "REAL") || strings.Contains(upper, "TRUE"):
		return LabelReal
	default:
		return LabelUncertain
	}
}

// LabelForScore maps a clamped credibility score onto a label.
func LabelForScore(score int) Label {
	switch {
	case score >= 70:
		return LabelReal
	case score >= 40:
		return LabelUncertain
	default:
		return LabelFake
	}
}

// ClampScore bounds a credibility score to [0, 100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// NewVerdict builds a Verdict enforcing the response invariants: the score is
// clamped, the label normalized, the explanation never empty, and the source
// list never nil and capped at MaxDisplaySources.
func NewVerdict(score int, label string, explanation string, sources []Source) Verdict {
	if strings.TrimSpace(explanation) == "" {
		explanation = insufficientDataExplanation
	}
	if sources == nil {
		sources = []Source{}
	}
	if len(sources) > MaxDisplaySources {
		sources = sources[:MaxDisplaySources]
	}
	return Verdict{
		CredibilityScore: ClampScore(score),
		Label:            NormalizeLabel(label),
		Explanation:      explanation,
		Sources:          sources,
	}
}

// NeutralVerdict is the degraded verdict used when analysis cannot complete
// at all: middle score, Uncertain, no evidence.
func NeutralVerdict(explanation string) Verdict {
	return Verdict{
		CredibilityScore: 50,
		Label:            LabelUncertain,
		Explanation:      explanation,
		Sources:          []Source{},
	}
}
