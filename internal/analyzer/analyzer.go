// Package analyzer turns a question into an intent, technology tags, date
// filters and a few presentation hints.
package analyzer

import (
	"strings"

	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// Analysis is everything extracted from one question.
type Analysis struct {
	Original     string
	Lowered      string
	Intent       string
	Technologies []string
	Fuzzy        bool
	Dates        models.DateFilter
	Highlights   bool
	Superlative  bool
}

// HasFilters reports whether technology or date filters were found.
func (a *Analysis) HasFilters() bool {
	return len(a.Technologies) > 0 || !a.Dates.IsZero()
}

// Analyzer is stateless after construction and safe for concurrent use.
type Analyzer struct {
	lex             *lexicon.Lexicon
	referenceYear   int
	wordThreshold   int
	phraseThreshold int
	logger          *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithReferenceYear sets the year relative phrases resolve against.
func WithReferenceYear(year int) Option {
	return func(a *Analyzer) { a.referenceYear = year }
}

// WithFuzzyThresholds sets the minimum ratios for single-word and two-word fuzzy matches.
func WithFuzzyThresholds(word, phrase int) Option {
	return func(a *Analyzer) {
		a.wordThreshold = word
		a.phraseThreshold = phrase
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Analyzer over lex.
func New(lex *lexicon.Lexicon, opts ...Option) *Analyzer {
	a := &Analyzer{
		lex:             lex,
		referenceYear:   2025,
		wordThreshold:   82,
		phraseThreshold: 80,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs every extractor over question.
func (a *Analyzer) Analyze(question string) *Analysis {
	lowered := strings.ToLower(strings.TrimSpace(question))
	techs, fuzzy := a.extractTechnologies(lowered)
	res := &Analysis{
		Original:     question,
		Lowered:      lowered,
		Intent:       ExtractIntent(question),
		Technologies: techs,
		Fuzzy:        fuzzy,
		Dates:        a.ExtractDateFilters(question),
		Highlights:   IsHighlights(lowered),
		Superlative:  IsSuperlative(lowered),
	}
	a.logger.Debug("question analysed",
		zap.String("intent", res.Intent),
		zap.Strings("technologies", res.Technologies),
		zap.Bool("fuzzy", res.Fuzzy),
		zap.Ints("years", res.Dates.Years),
		zap.String("date_modifier", string(res.Dates.Modifier)),
		zap.Bool("highlights", res.Highlights),
	)
	return res
}
