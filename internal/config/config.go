// Package config provides configuration loading and structs for the kotae engine and server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Embedding providers.
const (
	ProviderNone   = "none"
	ProviderMock   = "mock"
	ProviderONNX   = "onnx"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Engine    EngineConfig    `yaml:"engine"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Narrator  NarratorConfig  `yaml:"narrator"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// CorpusConfig points at the résumé document.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// EngineConfig tunes query understanding and selection.
type EngineConfig struct {
	// ReferenceYear resolves "last year" and "past N years".
	ReferenceYear        int     `yaml:"reference_year"`
	MaxItems             int     `yaml:"max_items"`
	FuzzyWordThreshold   int     `yaml:"fuzzy_word_threshold"`
	FuzzyPhraseThreshold int     `yaml:"fuzzy_phrase_threshold"`
	SimilarityTopK       int     `yaml:"similarity_top_k"`
	SimilarityFloor      float64 `yaml:"similarity_floor"`
	ETLPriorityEmployer  string  `yaml:"etl_priority_employer"`
	SubjectName          string  `yaml:"subject_name"`
}

// EmbeddingConfig selects the embedder behind the semantic tag fallback.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	ModelPath  string `yaml:"model_path"`
	Dimensions int    `yaml:"dimensions"`
	MaxTokens  int    `yaml:"max_tokens"`
	CacheSize  int    `yaml:"cache_size"`
	Host       string `yaml:"host"`
	Model      string `yaml:"model"`
	Workers    int    `yaml:"workers"`
}

// NarratorConfig configures the optional LLM phrasing step.
type NarratorConfig struct {
	Enabled bool          `yaml:"enabled"`
	Host    string        `yaml:"host"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Load reads and parses the config file at path, expands paths, applies defaults and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.Path = expandPath(cfg.Corpus.Path, configDir)
	if cfg.Embedding.ModelPath != "" {
		cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, configDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects out-of-range tuning values and unknown providers.
func (c *Config) Validate() error {
	if c.Engine.MaxItems <= 0 {
		return fmt.Errorf("%w: engine.max_items must be positive", ErrInvalid)
	}
	for name, v := range map[string]int{
		"engine.fuzzy_word_threshold":   c.Engine.FuzzyWordThreshold,
		"engine.fuzzy_phrase_threshold": c.Engine.FuzzyPhraseThreshold,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s must be within 0-100, got %d", ErrInvalid, name, v)
		}
	}
	if c.Engine.SimilarityFloor < 0 || c.Engine.SimilarityFloor > 1 {
		return fmt.Errorf("%w: engine.similarity_floor must be within 0-1", ErrInvalid)
	}
	switch c.Embedding.Provider {
	case ProviderNone, ProviderMock, ProviderONNX, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalid, c.Embedding.Provider)
	}
	if c.Embedding.Provider == ProviderOpenAI && c.Embedding.Host == "" {
		return fmt.Errorf("%w: embedding.host is required for the openai provider", ErrInvalid)
	}
	if c.Narrator.Enabled && c.Narrator.Host == "" {
		return fmt.Errorf("%w: narrator.host is required when the narrator is enabled", ErrInvalid)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
