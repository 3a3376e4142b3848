package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/query"
	"github.com/hyperjump/kotae/internal/testutil"
	"go.uber.org/zap"
)

func TestArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after question are moved first",
			args:     []string{"what projects", "-json"},
			expected: []string{"-json", "what projects"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-config", "c.yaml", "what projects"},
			expected: []string{"-config", "c.yaml", "what projects"},
		},
		{
			name:     "question only returns unchanged",
			args:     []string{"what projects"},
			expected: []string{"what projects"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"any", "python?", "-corpus", "c.yaml"},
			expected: []string{"-corpus", "c.yaml", "any", "python?"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := argsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("argsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildQuestion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"skills"}, "skills"},
		{"multiple words", []string{"what", "projects?"}, "what projects?"},
		{"single quoted phrase", []string{"what projects?"}, "what projects?"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQuestion(tt.args)
			if got != tt.expected {
				t.Errorf("buildQuestion(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
corpus:
  path: "./corpus.yaml"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while t.TempDir() is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_defaultsWhenNothingFound(t *testing.T) {
	if _, err := os.Stat(defaultConfigPath); err == nil {
		t.Skip("an installed config exists")
	}
	chdir(t, t.TempDir())

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want built-in defaults", resolved)
	}
	if cfg.Engine.MaxItems != 4 || cfg.Server.Port != 8080 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}

	if _, _, err := loadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config")
	}
}

func writeCorpus(t *testing.T) (configPath string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "corpus.yaml"), []byte(testutil.CorpusYAML), 0600); err != nil {
		t.Fatal(err)
	}
	configPath = filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("corpus:\n  path: \"./corpus.yaml\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func TestRunAsk_JSON(t *testing.T) {
	configPath := writeCorpus(t)
	var buf bytes.Buffer
	err := runAsk([]string{"What projects has he built?", "-json", "-config", configPath}, &buf)
	if err != nil {
		t.Fatalf("runAsk: %v", err)
	}
	var res models.QueryResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if res.ItemType != "projects" || len(res.Items) != 4 {
		t.Errorf("got item_type=%q items=%d", res.ItemType, len(res.Items))
	}
}

func TestRunAsk_noQuestion(t *testing.T) {
	var buf bytes.Buffer
	if err := runAsk([]string{}, &buf); err == nil {
		t.Error("expected an error without a question")
	}
}

func TestBuildApp_missingCorpus(t *testing.T) {
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	cfg.Corpus.Path = filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := buildApp(context.Background(), &cfg, zap.NewNop()); err == nil {
		t.Error("expected an error for a missing corpus")
	}
}

func TestBuildApp_mockEmbedder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corpus.yaml")
	if err := os.WriteFile(path, []byte(testutil.CorpusYAML), 0600); err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	cfg.Embedding.Provider = config.ProviderMock
	config.ApplyDefaults(&cfg)
	cfg.Corpus.Path = path

	a, err := buildApp(context.Background(), &cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("buildApp: %v", err)
	}
	defer a.Close()
	if a.embedder == nil {
		t.Error("expected the mock embedder to back the semantic index")
	}
	if a.narrator != nil {
		t.Error("narrator should be off by default")
	}
	res := a.answer(context.Background(), "What projects has he built?", nil)
	if len(res.Items) != 4 {
		t.Errorf("items: got %d, want 4", len(res.Items))
	}
}

func TestChat(t *testing.T) {
	color.NoColor = true
	var cfg config.Config
	config.ApplyDefaults(&cfg)
	a := &app{processor: query.Build(testutil.Corpus(t), lexicon.New(), cfg.Engine, nil)}

	in := strings.NewReader("What projects has he built?\nshow me more\n\nreset\nshow me more\nexit\nhello\n")
	var out bytes.Buffer
	if err := chat(context.Background(), a, "Nitigya", in, &out, zap.NewNop()); err != nil {
		t.Fatalf("chat: %v", err)
	}
	got := out.String()
	for _, sub := range []string{
		"Ask me about Nitigya's work.",
		"Session ",
		"Showing 4 of 9",
		"Here are 5 more projects:",
		"History cleared.",
	} {
		if !strings.Contains(got, sub) {
			t.Errorf("chat output missing %q:\n%s", sub, got)
		}
	}
	if strings.Count(got, "Here are 5 more projects:") != 1 {
		t.Errorf("show more after reset should not resolve against old history:\n%s", got)
	}
	if strings.Count(got, "You: ") != 6 {
		t.Errorf("expected 6 prompts before exit, got %d:\n%s", strings.Count(got, "You: "), got)
	}
}
