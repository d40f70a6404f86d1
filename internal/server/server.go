package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bhavyasharma05/fake-news-detector/internal/config"
	"github.com/bhavyasharma05/fake-news-detector/internal/core"
	"github.com/bhavyasharma05/fake-news-detector/internal/core/model"
	"github.com/bhavyasharma05/fake-news-detector/internal/llm"
)

const (
	serviceName    = "Fake News Detector API"
	serviceVersion = "2.0.0"

	// The shell validates length; the core is never invoked for short text.
	minAnalyzeLength = 30
	minLegacyLength  = 50

	maxLegacyEvidenceLinks = 3
)

type Server struct {
	Analyzer *core.Analyzer
	Config   *config.Config
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &Server{
		Analyzer: core.NewAnalyzer(cfg, llmClient),
		Config:   cfg,
	}, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	// The browser extension calls from arbitrary page origins.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/", s.Root)
	r.GET("/health", s.Health)
	r.POST("/api/fakenews/analyze", s.Analyze)
	r.POST("/analyze", s.AnalyzeLegacy)

	return r
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("%s v%s", serviceName, serviceVersion),
		"status":    "active",
		"timestamp": time.Now().Format(time.RFC3339),
		"endpoints": gin.H{
			"analyze": "/api/fakenews/analyze",
			"health":  "/health",
		},
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
		"apis": gin.H{
			"serpapi":     keyStatus(s.Config.Search.APIKey),
			"factcheck":   keyStatus(s.Config.FactCheck.APIKey),
			"huggingface": keyStatus(s.Config.Classifier.Token),
			"reasoning":   keyStatus(s.Config.LLM.APIKey),
		},
	})
}

func keyStatus(key string) string {
	if key == "" {
		return "missing_key"
	}
	return "configured"
}

type AnalyzeRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. Please provide valid JSON with required fields."})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if len(req.Text) < minAnalyzeLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text too short for analysis"})
		return
	}

	reqID := uuid.NewString()
	log.Printf("[%s] analyzing text=%q url=%q", reqID, truncate(req.Text, 100), req.URL)

	verdict := s.Analyzer.Analyze(c.Request.Context(), req.Text, req.URL)

	log.Printf("[%s] verdict score=%d label=%s", reqID, verdict.CredibilityScore, verdict.Label)
	c.JSON(http.StatusOK, verdict)
}

type LegacyAnalyzeRequest struct {
	Content string `json:"content"`
	URL     string `json:"url"`
}

// AnalyzeLegacy serves the pre-2.0 response contract still used by older
// extension builds.
func (s *Server) AnalyzeLegacy(c *gin.Context) {
	var req LegacyAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. Please provide valid JSON with required fields."})
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}
	if len(req.Content) < minLegacyLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text too short for analysis"})
		return
	}

	verdict := s.Analyzer.Analyze(c.Request.Context(), req.Content, req.URL)
	c.JSON(http.StatusOK, legacyResponse(verdict))
}

func legacyResponse(v model.Verdict) gin.H {
	links := make([]gin.H, 0, maxLegacyEvidenceLinks)
	for _, src := range v.Sources {
		if len(links) == maxLegacyEvidenceLinks {
			break
		}
		links = append(links, gin.H{
			"source":      src.Title,
			"url":         src.URL,
			"description": src.Snippet,
		})
	}

	return gin.H{
		"score": v.CredibilityScore,
		"label": fmt.Sprintf("%s %s", v.Label, legacyBadge(v.Label)),
		"explanations": []gin.H{
			{
				"type":        "analysis",
				"title":       "Credibility Analysis",
				"description": v.Explanation,
			},
		},
		"evidence_links": links,
	}
}

func legacyBadge(label model.Label) string {
	switch label {
	case model.LabelReal:
		return "✅"
	case model.LabelUncertain:
		return "⚠️"
	default:
		return "❌"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
