package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type SearchConfig struct {
	APIKey string `toml:"api_key"`
}

type FactCheckConfig struct {
	APIKey string `toml:"api_key"`
}

type ClassifierConfig struct {
	Token    string `toml:"token"`
	ModelURL string `toml:"model_url"`
}

type TimeoutConfig struct {
	// APISeconds bounds each individual outbound call; TotalSeconds bounds
	// the whole analysis pipeline end to end.
	APISeconds   int `toml:"api_seconds"`
	TotalSeconds int `toml:"total_seconds"`
}

type Config struct {
	Server     ServerConfig     `toml:"server"`
	LLM        LLMConfig        `toml:"llm"`
	Search     SearchConfig     `toml:"search"`
	FactCheck  FactCheckConfig  `toml:"factcheck"`
	Classifier ClassifierConfig `toml:"classifier"`
	Timeouts   TimeoutConfig    `toml:"timeouts"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.0-flash",
		},
		Timeouts: TimeoutConfig{
			APISeconds:   8,
			TotalSeconds: 20,
		},
	}
}

// Load reads the TOML config at path on top of the defaults, then applies
// environment overrides. A missing file is not an error; everything can be
// supplied through the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	// GEMINI_KEY predates LLM_API_KEY and still works for the default provider.
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("GEMINI_KEY")
	}
	if v := os.Getenv("SERPAPI_KEY"); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv("FACTCHECK_KEY"); v != "" {
		c.FactCheck.APIKey = v
	}
	if v := os.Getenv("HUGGINGFACE_TOKEN"); v != "" {
		c.Classifier.Token = v
	}
}

// APITimeout is the per-call budget for one outbound request.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.Timeouts.APISeconds) * time.Second
}

// TotalTimeout is the end-to-end budget for one analysis.
func (c *Config) TotalTimeout() time.Duration {
	return time.Duration(c.Timeouts.TotalSeconds) * time.Second
}
