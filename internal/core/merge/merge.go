package merge

import (
	"fmt"
	"math"
	"strings"

	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
)

// reputableDomains are matched as substrings against evidence URLs, so both
// bare identifiers ("guardian") and full domains ("reuters.com") work.
var reputableDomains = []string{
	"reuters.com",
	"bbc.com",
	"ap.org",
	"nytimes.com",
	"guardian",
	"washingtonpost",
	"wsj.com",
}

const (
	baseScore = 50

	maxReputationBonus  = 24
	reputationPerSource = 8
)

// Merge combines the fact-check verdict, classifier output, and
// source-reputation signals into a verdict without touching the network.
// It is the deterministic fallback when the reasoning model is unavailable.
//
// Adjustments accumulate additively from a base of 50, in fixed order:
// fact-check rating first, then classifier confidence, then source
// reputation. The final score is clamped to [0, 100] and decides the label.
func Merge(text string, sources []model.Source, factCheck *model.FactCheck, label model.Label, confidence float64) model.Verdict {
	score := baseScore
	var notes []string

	if factCheck != nil {
		rating := strings.ToLower(factCheck.Rating)
		switch {
		case strings.Contains(rating, "false"):
			score -= 40
			notes = append(notes, "fact-checkers found false claims")
		case strings.Contains(rating, "true") || strings.Contains(rating, "mostly true"):
			score += 30
			notes = append(notes, "fact-checkers verified claims")
		case strings.Contains(rating, "mixture") || strings.Contains(rating, "misleading"):
			score -= 10
			notes = append(notes, "fact-checkers found mixed accuracy")
		}
	}

	switch label {
	case model.LabelFake:
		score -= int(math.Round(confidence * 40))
		notes = append(notes, fmt.Sprintf("AI model detected fake content (confidence: %.1f)", confidence))
	case model.LabelReal:
		score += int(math.Round(confidence * 20))
		notes = append(notes, fmt.Sprintf("AI model verified content (confidence: %.1f)", confidence))
	}

	reputable := 0
	for _, src := range sources {
		if isReputable(src.URL) {
			reputable++
		}
	}
	if reputable > 0 {
		bonus := reputable * reputationPerSource
		if bonus > maxReputationBonus {
			bonus = maxReputationBonus
		}
		score += bonus
		notes = append(notes, fmt.Sprintf("found %d reputable source(s)", reputable))
	} else if len(sources) > 2 {
		score -= 5
		notes = append(notes, "sources are from less established outlets")
	}

	score = model.ClampScore(score)

	var explanation string
	if len(notes) > 0 {
		explanation = "Analysis based on: " + strings.Join(notes, ", ") + "."
	}

	// Sources pass through in adapter order, neither re-ranked nor deduplicated.
	return model.NewVerdict(score, string(model.LabelForScore(score)), explanation, sources)
}

func isReputable(sourceURL string) bool {
	lower := strings.ToLower(sourceURL)
	for _, domain := range reputableDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}
