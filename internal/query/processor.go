// Package query answers one question about the résumé, taking earlier turns
// of the conversation into account.
package query

import (
	"context"
	"strings"

	"github.com/hyperjump/kotae/internal/analyzer"
	"github.com/hyperjump/kotae/internal/conversation"
	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/entity"
	"github.com/hyperjump/kotae/internal/guardrail"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/search"
	"go.uber.org/zap"
)

// Processor sequences the guardrail, follow-up resolution, entity lookup,
// analysis, search and diversity selection. It holds no per-call state and
// is safe for concurrent use.
type Processor struct {
	guard    *guardrail.Guard
	analyzer *analyzer.Analyzer
	engine   *search.Engine
	detector *entity.Detector
	resolver *conversation.Resolver
	subject  string
	maxItems int
	logger   *zap.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithMaxItems bounds how many items a fresh answer shows.
func WithMaxItems(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxItems = n
		}
	}
}

// WithSubject sets the name used in the off-topic reply.
func WithSubject(name string) Option {
	return func(p *Processor) {
		if name = strings.TrimSpace(name); name != "" {
			p.subject = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a Processor from its components.
func New(guard *guardrail.Guard, an *analyzer.Analyzer, engine *search.Engine, det *entity.Detector, res *conversation.Resolver, opts ...Option) *Processor {
	p := &Processor{
		guard:    guard,
		analyzer: an,
		engine:   engine,
		detector: det,
		resolver: res,
		subject:  "Nitigya",
		maxItems: 4,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Corpus returns the corpus the processor answers from.
func (p *Processor) Corpus() *corpus.Corpus {
	return p.engine.Corpus()
}

// Query answers question. It always returns a complete result: internal
// failures are logged and turned into an empty answer.
func (p *Processor) Query(ctx context.Context, question string, history []models.Turn) (res models.QueryResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("query failed",
				zap.Any("panic", r),
				zap.String("question", question),
				zap.Stack("stack"),
			)
			res = finalize(failed(question))
		}
	}()
	return finalize(p.query(ctx, strings.TrimSpace(question), history))
}

func (p *Processor) query(ctx context.Context, question string, history []models.Turn) *models.QueryResult {
	if question == "" {
		return casual(question, analyzer.IntentGeneral)
	}

	if v := p.guard.Check(question); v.OffTopic {
		return p.offTopic(question)
	}

	if len(history) > 0 {
		if res := p.resolver.Resolve(ctx, question, history); res != nil {
			return res
		}
	}

	if m := p.detector.Detect(question); m != nil {
		return entityResult(question, m)
	}

	a := p.analyzer.Analyze(question)
	if a.Intent == analyzer.IntentGreeting || a.Intent == analyzer.IntentGeneral {
		return casual(question, a.Intent)
	}

	out := p.engine.Search(ctx, search.Request{
		Question:     question,
		Intent:       a.Intent,
		Technologies: a.Technologies,
		Dates:        a.Dates,
		Highlights:   a.Highlights,
	})
	items := out.Items
	if !a.Highlights {
		items = search.Select(items, p.maxItems)
	}

	res := &models.QueryResult{
		ResponseText: describe(a, out, items),
		Items:        items,
		ItemType:     models.ItemTypeOf(items),
		Metadata: models.Metadata{
			Intent:                   out.Intent,
			OriginalQuery:            question,
			TechFilters:              a.Technologies,
			DateFilters:              a.Dates,
			TotalResults:             len(out.Items),
			FallbackSearch:           out.Fallback,
			RequestedTechnologies:    out.Requested,
			SimilarTechnologiesFound: out.Similar,
			ContentTypesSearched:     out.Searched,
			ContentTypeCounts:        out.Counts,
			IsHighlights:             a.Highlights,
		},
	}
	p.logger.Debug("query answered",
		zap.String("question", question),
		zap.String("intent", out.Intent),
		zap.Int("total", len(out.Items)),
		zap.Int("shown", len(items)),
		zap.Bool("fallback", out.Fallback),
	)
	return res
}

func (p *Processor) offTopic(question string) *models.QueryResult {
	return &models.QueryResult{
		ResponseText: offTopicText(p.subject),
		ItemType:     models.ItemTypeOffTopic,
		Metadata: models.Metadata{
			OriginalQuery:      question,
			GuardrailTriggered: true,
			OffTopic:           true,
		},
	}
}

func casual(question, intent string) *models.QueryResult {
	return &models.QueryResult{
		ResponseText: casualText,
		ItemType:     models.ItemTypeNone,
		Metadata:     models.Metadata{Intent: intent, OriginalQuery: question},
	}
}

func entityResult(question string, m *entity.Match) *models.QueryResult {
	md := models.Metadata{
		QueryType:     models.QueryTypeEntity,
		OriginalQuery: question,
		EntityName:    m.Name,
		TotalResults:  len(m.Items),
	}
	if !m.Found() {
		md.NotFound = true
		return &models.QueryResult{ResponseText: notFoundText(m.Name), ItemType: models.ItemTypeNone, Metadata: md}
	}
	md.ContentTypeCounts = models.CountBySource(m.Items)
	return &models.QueryResult{
		ResponseText: entityText(m.DisplayName()),
		Items:        m.Items,
		ItemType:     models.ItemTypeOf(m.Items),
		Metadata:     md,
	}
}

func failed(question string) *models.QueryResult {
	return &models.QueryResult{
		ResponseText: failedText,
		ItemType:     models.ItemTypeNone,
		Metadata:     models.Metadata{OriginalQuery: question},
	}
}

// finalize fills the fields every result carries, so that callers can
// serialise it without nil checks.
func finalize(res *models.QueryResult) models.QueryResult {
	if res.Items == nil {
		res.Items = []models.Record{}
	}
	if res.ItemType == "" {
		res.ItemType = models.ItemTypeOf(res.Items)
	}
	md := &res.Metadata
	md.ItemType = res.ItemType
	md.ShownResults = len(res.Items)
	md.NeedsCards = len(res.Items) > 0
	if md.TechFilters == nil {
		md.TechFilters = []string{}
	}
	if md.DateFilters.Years == nil {
		md.DateFilters.Years = []int{}
	}
	return *res
}
