package query

import (
	"github.com/hyperjump/kotae/internal/analyzer"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/conversation"
	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/entity"
	"github.com/hyperjump/kotae/internal/guardrail"
	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/search"
	"go.uber.org/zap"
)

// Build wires every component over c from engine settings. cfg is expected
// to have had config.ApplyDefaults applied.
func Build(c *corpus.Corpus, lex *lexicon.Lexicon, cfg config.EngineConfig, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	engine := search.NewEngine(c, lex,
		search.WithReferenceYear(cfg.ReferenceYear),
		search.WithETLEmployer(cfg.ETLPriorityEmployer),
		search.WithLogger(logger.Named("search")),
	)
	an := analyzer.New(lex,
		analyzer.WithReferenceYear(cfg.ReferenceYear),
		analyzer.WithFuzzyThresholds(cfg.FuzzyWordThreshold, cfg.FuzzyPhraseThreshold),
		analyzer.WithLogger(logger.Named("analyzer")),
	)
	det := entity.NewDetector(c, lex, entity.WithLogger(logger.Named("entity")))
	res := conversation.NewResolver(engine, an, det,
		conversation.WithMaxItems(cfg.MaxItems),
		conversation.WithLogger(logger.Named("conversation")),
	)
	guard := guardrail.NewGuard(
		guardrail.WithSubject(cfg.SubjectName),
		guardrail.WithLogger(logger.Named("guardrail")),
	)
	return New(guard, an, engine, det, res,
		WithMaxItems(cfg.MaxItems),
		WithSubject(cfg.SubjectName),
		WithLogger(logger.Named("query")),
	)
}
