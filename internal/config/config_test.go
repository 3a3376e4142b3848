package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
corpus:
  path: "./corpus.yaml"
engine:
  max_items: 6
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Engine.MaxItems != 6 {
		t.Errorf("max_items = %d, want 6", cfg.Engine.MaxItems)
	}
	if cfg.Engine.FuzzyWordThreshold != 82 {
		t.Errorf("fuzzy_word_threshold default = %d, want 82", cfg.Engine.FuzzyWordThreshold)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_debugTrue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
}

func TestLoad_expandPathDotSlashRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
corpus:
  path: "./data/corpus.yaml"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "data", "corpus.yaml")
	if cfg.Corpus.Path != want {
		t.Errorf("corpus.path = %q, want %q", cfg.Corpus.Path, want)
	}
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown provider", "embedding:\n  provider: word2vec\n"},
		{"threshold out of range", "engine:\n  fuzzy_word_threshold: 140\n"},
		{"openai without host", "embedding:\n  provider: openai\n"},
		{"narrator without host", "narrator:\n  enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: %+v", cfg.Server)
	}
	if cfg.Engine.ReferenceYear != 2025 {
		t.Errorf("reference_year = %d, want 2025", cfg.Engine.ReferenceYear)
	}
	if cfg.Engine.MaxItems != 4 || cfg.Engine.SimilarityTopK != 3 {
		t.Errorf("engine defaults: %+v", cfg.Engine)
	}
	if cfg.Engine.SimilarityFloor != 0.3 {
		t.Errorf("similarity_floor = %v, want 0.3", cfg.Engine.SimilarityFloor)
	}
	if cfg.Embedding.Provider != ProviderNone {
		t.Errorf("provider = %q, want none", cfg.Embedding.Provider)
	}
	if cfg.Narrator.Timeout != 8*time.Second {
		t.Errorf("narrator timeout = %v", cfg.Narrator.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestApplyDefaults_ONNXModelPath(t *testing.T) {
	cfg := &Config{Embedding: EmbeddingConfig{Provider: ProviderONNX}}
	ApplyDefaults(cfg)
	if cfg.Embedding.ModelPath == "" {
		t.Error("onnx provider should get a default model path")
	}
}
