// Package search filters, orders and selects corpus records for an analysed question.
package search

import (
	"context"
	"slices"
	"strings"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// Request describes one search.
type Request struct {
	// Question is the raw question; it is consulted for a few intent hints.
	Question     string
	Intent       string
	Technologies []string
	Dates        models.DateFilter
	Highlights   bool
	// Categories overrides category planning, for re-running a previous search.
	Categories []models.Category
}

// Outcome is the full match set of a search, before diversity selection.
type Outcome struct {
	Items []models.Record
	// Intent is the effective intent: a category, or "mixed" for
	// cross-category and highlights searches.
	Intent         string
	Searched       []models.Category
	Counts         map[models.Category]int
	CrossCategory  bool
	Fallback       bool
	Requested      []string
	Similar        []string
	FallbackSource lexicon.Source
}

// Engine is immutable and safe for concurrent use.
type Engine struct {
	corpus        *corpus.Corpus
	lex           *lexicon.Lexicon
	referenceYear int
	etl           ETLEmployerPolicy
	logger        *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithReferenceYear sets the year open-ended date ranges resolve to.
func WithReferenceYear(year int) Option {
	return func(e *Engine) { e.referenceYear = year }
}

// WithETLEmployer sets the employer promoted for ETL questions.
func WithETLEmployer(name string) Option {
	return func(e *Engine) { e.etl.Employer = name }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over c.
func NewEngine(c *corpus.Corpus, lex *lexicon.Lexicon, opts ...Option) *Engine {
	e := &Engine{
		corpus:        c,
		lex:           lex,
		referenceYear: 2025,
		etl:           DefaultETLEmployerPolicy(),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Corpus returns the corpus the engine searches.
func (e *Engine) Corpus() *corpus.Corpus {
	return e.corpus
}

// Search runs the cross-category search when the request carries filters or
// asks for publications, blog posts or highlights, and a single-category
// search otherwise. When technology filters match nothing the search is
// retried with related technologies.
func (e *Engine) Search(ctx context.Context, req Request) *Outcome {
	if req.Highlights && len(req.Technologies) == 0 {
		out := e.highlights(req)
		e.logOutcome(req, out)
		return out
	}

	if cats := e.Plan(req); len(cats) > 0 {
		out := e.searchAcross(cats, req.Technologies, req.Dates)
		if len(out.Items) == 0 && len(req.Technologies) > 0 {
			out = e.fallback(ctx, cats, req)
		}
		if len(out.Items) > 0 || len(req.Categories) > 0 {
			e.logOutcome(req, out)
			return out
		}
	}

	out := e.searchSingle(req)
	e.logOutcome(req, out)
	return out
}

// Plan returns the categories a cross-category search covers, or nil when
// the request is a plain single-category lookup. Technology and date
// filters broaden the search to every narrative category, since a
// technology may appear in any of them.
func (e *Engine) Plan(req Request) []models.Category {
	if len(req.Categories) > 0 {
		return req.Categories
	}
	lowered := strings.ToLower(req.Question)
	var cats []models.Category
	add := func(cs ...models.Category) {
		for _, c := range cs {
			if !slices.Contains(cats, c) {
				cats = append(cats, c)
			}
		}
	}
	if len(req.Technologies) > 0 || !req.Dates.IsZero() || req.Highlights {
		add(models.NarrativeCategories...)
	}
	if req.Intent == string(models.CategoryPublications) || strings.Contains(lowered, "research") {
		add(models.CategoryPublications)
	}
	if req.Intent == string(models.CategoryBlog) {
		add(models.CategoryBlog)
	}
	if len(cats) > 0 {
		if c, ok := models.ParseCategory(req.Intent); ok {
			add(c)
		}
	}
	return cats
}

func (e *Engine) searchAcross(cats []models.Category, techs []string, dates models.DateFilter) *Outcome {
	out := &Outcome{
		Intent:        models.ItemTypeMixed,
		Searched:      cats,
		Counts:        make(map[models.Category]int, len(cats)),
		CrossCategory: true,
	}
	groups := make(map[models.Category][]models.Record, len(cats))
	for _, c := range cats {
		items := e.corpus.Records(c)
		if c != models.CategorySkills && c != models.CategoryEducation {
			items = e.FilterTechnology(items, techs)
		}
		if c != models.CategorySkills {
			items = e.FilterDate(items, dates)
		}
		groups[c] = items
		out.Counts[c] = len(items)
	}
	out.Items = e.order(groups, techs)
	if len(cats) == 1 {
		out.Intent = string(cats[0])
	}
	return out
}

func (e *Engine) searchSingle(req Request) *Outcome {
	cat, ok := models.ParseCategory(req.Intent)
	if !ok {
		cat = models.CategoryProjects
	}
	items := e.corpus.Records(cat)
	switch cat {
	case models.CategorySkills, models.CategoryEducation:
	case models.CategoryPublications, models.CategoryBlog:
		items = e.FilterDate(items, req.Dates)
	default:
		items = e.FilterDate(e.FilterTechnology(items, req.Technologies), req.Dates)
	}
	if cat == models.CategoryProjects {
		items = SortNewestFirst(items)
	}
	return &Outcome{
		Items:    items,
		Intent:   string(cat),
		Searched: []models.Category{cat},
		Counts:   map[models.Category]int{cat: len(items)},
	}
}

// highlights takes the first three projects and the first two experience
// and publication entries, after any date filter.
func (e *Engine) highlights(req Request) *Outcome {
	out := &Outcome{
		Intent:        models.ItemTypeMixed,
		Searched:      slices.Clone(models.NarrativeCategories),
		Counts:        make(map[models.Category]int),
		CrossCategory: true,
	}
	for _, c := range models.NarrativeCategories {
		items := e.FilterDate(e.corpus.Records(c), req.Dates)
		limit := 2
		if c == models.CategoryProjects {
			limit = 3
		}
		items = items[:min(limit, len(items))]
		out.Items = append(out.Items, items...)
		out.Counts[c] = len(items)
	}
	if len(out.Items) == 0 && req.Dates.IsZero() {
		out.Items = e.Mixed(req.Question)
		for _, it := range out.Items {
			if !slices.Contains(out.Searched, it.ContentSource) {
				out.Searched = append(out.Searched, it.ContentSource)
			}
			out.Counts[it.ContentSource]++
		}
	}
	return out
}

func (e *Engine) logOutcome(req Request, out *Outcome) {
	searched := make([]string, len(out.Searched))
	for i, c := range out.Searched {
		searched[i] = string(c)
	}
	e.logger.Debug("search completed",
		zap.String("intent", req.Intent),
		zap.String("effective_intent", out.Intent),
		zap.Strings("technologies", req.Technologies),
		zap.Strings("searched", searched),
		zap.Int("matches", len(out.Items)),
		zap.Bool("fallback", out.Fallback),
	)
}
