package core

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/bhavyasharma05/fake-news-detector/internal/config"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/classify"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/factcheck"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/merge"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/reason"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/search"
	"github.com/bhavyasharma05/fake-news-detector/internal/llm"
)

// SearchService finds news coverage related to the text. Implementations
// absorb their own failures and return an empty list instead of an error.
type SearchService interface {
	Query(ctx context.Context, text string) []model.Source
}

// FactCheckService looks up a published fact-check for the text, nil when
// none is found, the lookup fails, or the service is unconfigured.
type FactCheckService interface {
	Query(ctx context.Context, text string) *model.FactCheck
}

// ClassifierService labels the text fake/real with a confidence, degrading
// to (Uncertain, 0.5) on any failure.
type ClassifierService interface {
	Classify(ctx context.Context, text string) (model.Label, float64)
}

// ReasoningService produces the final verdict from all gathered evidence.
// Unlike the other collaborators it may fail; the Analyzer owns the fallback.
type ReasoningService interface {
	Infer(ctx context.Context, text string, sources []model.Source, factCheck *model.FactCheck, label model.Label, confidence float64) (model.Verdict, error)
}

const (
	timeoutExplanation = "Analysis timed out. Unable to complete verification within time limit."
	failureExplanation = "Analysis could not be completed due to technical issues."
)

// Analyzer drives the four-stage analysis pipeline: news search, fact-check
// lookup, classification, then generative reasoning with the local merge as
// fallback. It always returns a well-formed verdict; degradation is expressed
// in the verdict content, never as an error to the HTTP shell.
type Analyzer struct {
	search     SearchService
	factCheck  FactCheckService
	classifier ClassifierService
	reasoner   ReasoningService

	httpClient   *http.Client
	totalTimeout time.Duration
}

// NewAnalyzer wires the stock adapters around one shared pooled HTTP client.
// The Analyzer owns the client for its whole lifetime; release it with Close
// on service shutdown.
func NewAnalyzer(cfg *config.Config, llmClient llm.LLMClient) *Analyzer {
	httpClient := &http.Client{Timeout: cfg.APITimeout()}
	return &Analyzer{
		search:       search.NewClient(httpClient, cfg.Search.APIKey, ""),
		factCheck:    factcheck.NewClient(httpClient, cfg.FactCheck.APIKey, ""),
		classifier:   classify.NewClient(httpClient, cfg.Classifier.Token, cfg.Classifier.ModelURL),
		reasoner:     reason.NewReasoner(llmClient),
		httpClient:   httpClient,
		totalTimeout: cfg.TotalTimeout(),
	}
}

// NewAnalyzerWith assembles an Analyzer from explicit collaborators.
func NewAnalyzerWith(searchSvc SearchService, factCheckSvc FactCheckService, classifierSvc ClassifierService, reasoner ReasoningService, totalTimeout time.Duration) *Analyzer {
	return &Analyzer{
		search:       searchSvc,
		factCheck:    factCheckSvc,
		classifier:   classifierSvc,
		reasoner:     reasoner,
		totalTimeout: totalTimeout,
	}
}

// Close releases the pooled outbound connections.
func (a *Analyzer) Close() {
	if a.httpClient != nil {
		a.httpClient.CloseIdleConnections()
	}
}

// Analyze runs the full pipeline for one request under the end-to-end budget.
// On budget expiry the in-flight pipeline is abandoned and the fixed neutral
// verdict returned; partial adapter results are not salvaged.
func (a *Analyzer) Analyze(ctx context.Context, text string, pageURL string) model.Verdict {
	ctx, cancel := context.WithTimeout(ctx, a.totalTimeout)
	defer cancel()

	results := make(chan model.Verdict, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("analysis pipeline panicked: %v", r)
				results <- model.NeutralVerdict(failureExplanation)
			}
		}()
		results <- a.runPipeline(ctx, text, pageURL)
	}()

	select {
	case verdict := <-results:
		return verdict
	case <-ctx.Done():
		log.Printf("analysis timed out after %s", a.totalTimeout)
		return model.NeutralVerdict(timeoutExplanation)
	}
}

// runPipeline awaits the three source adapters in strict sequence, then
// attempts reasoning exactly once. The adapters are independently
// fault-tolerant, so an earlier failure never prevents a later stage.
func (a *Analyzer) runPipeline(ctx context.Context, text string, pageURL string) model.Verdict {
	sources := a.search.Query(ctx, text)
	factCheck := a.factCheck.Query(ctx, text)
	label, confidence := a.classifier.Classify(ctx, text)

	verdict, err := a.reasoner.Infer(ctx, text, sources, factCheck, label, confidence)
	if err != nil {
		log.Printf("reasoning failed, falling back to local merge: %v", err)
		return merge.Merge(text, sources, factCheck, label, confidence)
	}
	return verdict
}
