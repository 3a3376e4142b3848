package config

import "time"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "/usr/local/var/kotae/corpus.yaml"
	}
	if cfg.Engine.ReferenceYear == 0 {
		cfg.Engine.ReferenceYear = 2025
	}
	if cfg.Engine.MaxItems == 0 {
		cfg.Engine.MaxItems = 4
	}
	if cfg.Engine.FuzzyWordThreshold == 0 {
		cfg.Engine.FuzzyWordThreshold = 82
	}
	if cfg.Engine.FuzzyPhraseThreshold == 0 {
		cfg.Engine.FuzzyPhraseThreshold = 80
	}
	if cfg.Engine.SimilarityTopK == 0 {
		cfg.Engine.SimilarityTopK = 3
	}
	if cfg.Engine.SimilarityFloor == 0 {
		cfg.Engine.SimilarityFloor = 0.3
	}
	if cfg.Engine.ETLPriorityEmployer == "" {
		cfg.Engine.ETLPriorityEmployer = "spenza"
	}
	if cfg.Engine.SubjectName == "" {
		cfg.Engine.SubjectName = "Nitigya"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = ProviderNone
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.Workers == 0 {
		cfg.Embedding.Workers = 4
	}
	if cfg.Embedding.Provider == ProviderONNX && cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/kotae/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Narrator.Timeout == 0 {
		cfg.Narrator.Timeout = 8 * time.Second
	}
}
