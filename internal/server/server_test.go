package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhavyasharma05/fake-news-detector/internal/config"
	"github.com/bhavyasharma05/fake-news-detector/internal/core"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
)

const longEnoughText = "This is a piece of text that is comfortably longer than the legacy fifty character minimum."

type stubAdapters struct {
	verdict model.Verdict
	err     error
}

func (s *stubAdapters) Query(ctx context.Context, text string) []model.Source { return nil }

func (s *stubAdapters) Classify(ctx context.Context, text string) (model.Label, float64) {
	return model.LabelUncertain, 0.5
}

func (s *stubAdapters) Infer(ctx context.Context, text string, sources []model.Source, factCheck *model.FactCheck, label model.Label, confidence float64) (model.Verdict, error) {
	return s.verdict, s.err
}

type stubFactCheck struct{}

func (stubFactCheck) Query(ctx context.Context, text string) *model.FactCheck { return nil }

func newTestServer(verdict model.Verdict) *Server {
	gin.SetMode(gin.TestMode)
	stub := &stubAdapters{verdict: verdict}
	cfg := config.Default()
	return &Server{
		Analyzer: core.NewAnalyzerWith(stub, stubFactCheck{}, stub, stub, time.Second),
		Config:   &cfg,
	}
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.SetupRouter().ServeHTTP(w, req)
	return w
}

func TestAnalyze_RejectsMalformedJSON(t *testing.T) {
	s := newTestServer(model.Verdict{})
	w := doRequest(t, s, http.MethodPost, "/api/fakenews/analyze", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid JSON")
}

func TestAnalyze_RejectsEmptyText(t *testing.T) {
	s := newTestServer(model.Verdict{})
	w := doRequest(t, s, http.MethodPost, "/api/fakenews/analyze", `{"text":"   ","url":"https://x.example"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cannot be empty")
}

func TestAnalyze_RejectsShortText(t *testing.T) {
	s := newTestServer(model.Verdict{})
	w := doRequest(t, s, http.MethodPost, "/api/fakenews/analyze", `{"text":"too short","url":"https://x.example"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "too short")
}

func TestAnalyze_ReturnsVerdict(t *testing.T) {
	want := model.NewVerdict(91, "Real", "well sourced", []model.Source{
		{Title: "Report", URL: "https://www.reuters.com/x", Snippet: "snip"},
	})
	s := newTestServer(want)

	body := fmt.Sprintf(`{"text":%q,"url":"https://x.example"}`, longEnoughText)
	w := doRequest(t, s, http.MethodPost, "/api/fakenews/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.Verdict
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestAnalyzeLegacy_RejectsShortContent(t *testing.T) {
	s := newTestServer(model.Verdict{})
	w := doRequest(t, s, http.MethodPost, "/analyze", `{"content":"short but over thirty characters!","url":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeLegacy_ReshapesResponse(t *testing.T) {
	verdict := model.NewVerdict(24, "Fake", "contradicted by fact-checkers", []model.Source{
		{Title: "A", URL: "https://a.example", Snippet: "sa"},
		{Title: "B", URL: "https://b.example", Snippet: "sb"},
		{Title: "C", URL: "https://c.example", Snippet: "sc"},
		{Title: "D", URL: "https://d.example", Snippet: "sd"},
	})
	s := newTestServer(verdict)

	body := fmt.Sprintf(`{"content":%q,"url":"https://x.example"}`, longEnoughText)
	w := doRequest(t, s, http.MethodPost, "/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Score        int    `json:"score"`
		Label        string `json:"label"`
		Explanations []struct {
			Type        string `json:"type"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"explanations"`
		EvidenceLinks []struct {
			Source      string `json:"source"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"evidence_links"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, 24, got.Score)
	assert.Equal(t, "Fake ❌", got.Label)
	require.Len(t, got.Explanations, 1)
	assert.Equal(t, "analysis", got.Explanations[0].Type)
	assert.Equal(t, "contradicted by fact-checkers", got.Explanations[0].Description)
	assert.Len(t, got.EvidenceLinks, 3, "legacy clients only display three links")
	assert.Equal(t, "A", got.EvidenceLinks[0].Source)
}

func TestRoot(t *testing.T) {
	s := newTestServer(model.Verdict{})
	w := doRequest(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fake News Detector API")
	assert.Contains(t, w.Body.String(), "/api/fakenews/analyze")
}

func TestHealth_ReportsKeyStatus(t *testing.T) {
	s := newTestServer(model.Verdict{})
	s.Config.Search.APIKey = "present"

	w := doRequest(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Status string            `json:"status"`
		APIs   map[string]string `json:"apis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got.Status)
	assert.Equal(t, "configured", got.APIs["serpapi"])
	assert.Equal(t, "missing_key", got.APIs["factcheck"])
	assert.Equal(t, "missing_key", got.APIs["huggingface"])
}
