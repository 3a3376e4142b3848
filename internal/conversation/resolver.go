// Package conversation resolves questions that only make sense against an
// earlier answer: clarifications, paging through the rest of a result set,
// narrowing a previous result by technology, and generic "tell me more".
package conversation

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/hyperjump/kotae/internal/analyzer"
	"github.com/hyperjump/kotae/internal/entity"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/search"
	"go.uber.org/zap"
)

// Resolver is immutable and safe for concurrent use. All conversation
// state arrives through the history passed to Resolve.
type Resolver struct {
	engine   *search.Engine
	analyzer *analyzer.Analyzer
	detector *entity.Detector
	maxItems int
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxItems sets the batch size used when a previous batch size is unknown.
func WithMaxItems(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxItems = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver that re-runs searches on engine.
func NewResolver(engine *search.Engine, an *analyzer.Analyzer, det *entity.Detector, opts ...Option) *Resolver {
	r := &Resolver{
		engine:   engine,
		analyzer: an,
		detector: det,
		maxItems: 4,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve answers text against history. It returns nil when text should be
// handled as a fresh question: it is not a follow-up, no earlier turn
// produced results, or a contextual follow-up has neither technology nor
// entity scope to carry over. Items already shown anywhere in history are never
// returned again, except when a clarification names an entity outright.
func (r *Resolver) Resolve(ctx context.Context, text string, history []models.Turn) *models.QueryResult {
	lowered := lower(text)
	k := kindOf(lowered)
	if k == kindNone {
		return nil
	}
	prev := models.LastContext(history)

	if k == kindClarification {
		loc := clarificationRe.FindStringIndex(lowered)
		rest := strings.TrimSpace(lowered[loc[1]:])
		k = kindOf(rest)
		if k == kindNone || k == kindClarification {
			res := r.clarify(text, rest, prev)
			if res != nil {
				r.logResolved(res, 0)
			}
			return res
		}
	}
	if prev == nil {
		return nil
	}

	shown := models.ShownIDs(history)
	var res *models.QueryResult
	switch k {
	case kindShowAll:
		res = r.showAll(ctx, text, prev, shown)
	case kindShowMore:
		if techs := r.newTechnologies(text, prev); len(techs) > 0 {
			res = r.narrow(ctx, text, techs, prev, shown)
		} else {
			res = r.showMore(ctx, text, prev, shown)
		}
	default:
		techs := r.newTechnologies(text, prev)
		switch {
		case len(techs) > 0:
			res = r.narrow(ctx, text, techs, prev, shown)
		case len(prev.Metadata.TechFilters) > 0 || prev.Metadata.EntityName != "":
			res = r.rerun(ctx, text, prev, shown)
		default:
			// Nothing scopes the earlier search; answer afresh.
			return nil
		}
	}
	r.logResolved(res, len(shown))
	return res
}

func (r *Resolver) logResolved(res *models.QueryResult, shown int) {
	r.logger.Debug("follow-up resolved",
		zap.String("query_type", res.Metadata.QueryType),
		zap.String("context_query", res.Metadata.ContextQuery),
		zap.Int("items", len(res.Items)),
		zap.Int("total", res.Metadata.TotalResults),
		zap.Int("previously_shown", shown),
	)
}

// clarify looks up the entity named after "no, I meant". A name that
// matches nothing yields a not-found result; text with no usable name
// yields nil.
func (r *Resolver) clarify(text, rest string, prev *models.FollowupContext) *models.QueryResult {
	m := r.detector.Detect(rest)
	if m == nil {
		m = r.detector.Lookup(rest)
	}
	if m == nil {
		return nil
	}
	md := models.Metadata{
		QueryType:     models.QueryTypeClarification,
		OriginalQuery: text,
		IsFollowup:    true,
		EntityName:    m.Name,
	}
	if prev != nil {
		md.ContextQuery = contextQuery(prev.Metadata)
	}
	if !m.Found() {
		md.NotFound = true
		return finish(&models.QueryResult{
			ResponseText: fmt.Sprintf("I don't see anything about %s in the résumé.", m.Name),
			Metadata:     md,
		})
	}
	md.TotalResults = len(m.Items)
	return finish(&models.QueryResult{
		ResponseText: fmt.Sprintf("Here's what he did at %s.", m.DisplayName()),
		Items:        m.Items,
		Metadata:     md,
	})
}

func (r *Resolver) showAll(ctx context.Context, text string, prev *models.FollowupContext, shown map[string]bool) *models.QueryResult {
	out := r.matches(ctx, prev)
	remainder := models.Unseen(out.Items, shown)
	md := r.metadata(text, prev, models.QueryTypeShowAll, out)
	md.PreviouslyShown = len(shown)
	if len(remainder) == 0 {
		return finish(&models.QueryResult{ResponseText: allSeen(prev), Metadata: md})
	}
	md.TotalResults = len(remainder)
	return finish(&models.QueryResult{
		ResponseText: fmt.Sprintf("Here are all the remaining %s I have:", label(prev)),
		Items:        remainder,
		Metadata:     md,
	})
}

// showMore returns the next batch of the previous search. The batch matches
// the previous one in size; a tail shorter than half a batch is folded into
// this one rather than left for another round.
func (r *Resolver) showMore(ctx context.Context, text string, prev *models.FollowupContext, shown map[string]bool) *models.QueryResult {
	out := r.matches(ctx, prev)
	remainder := models.Unseen(out.Items, shown)
	md := r.metadata(text, prev, models.QueryTypeShowMore, out)
	md.PreviouslyShown = len(shown)
	if len(remainder) == 0 {
		return finish(&models.QueryResult{ResponseText: allSeen(prev), Metadata: md})
	}

	batch := len(prev.Items)
	if batch == 0 {
		batch = r.maxItems
	}
	n := min(batch, len(remainder))
	if left := len(remainder) - n; left > 0 && left*2 < batch {
		n = len(remainder)
	}
	items := search.Select(remainder, n)
	md.TotalResults = len(remainder)

	resp := fmt.Sprintf("Here are %d more %s:", len(items), label(prev))
	if left := len(remainder) - len(items); left > 0 {
		resp = fmt.Sprintf("Here are %d more %s (%d still to go):", len(items), label(prev), left)
	}
	return finish(&models.QueryResult{ResponseText: resp, Items: items, Metadata: md})
}

// narrow filters the previous turn's full match set by techs.
func (r *Resolver) narrow(ctx context.Context, text string, techs []string, prev *models.FollowupContext, shown map[string]bool) *models.QueryResult {
	base := r.matches(ctx, prev).Items
	if len(base) == 0 {
		base = prev.Items
	}
	matched := r.engine.FilterTechnology(base, techs)

	md := r.metadata(text, prev, models.QueryTypeContextual, nil)
	md.TechFilters = techs
	md.PreviouslyShown = len(shown)
	scope := prev.Metadata.EntityName
	if scope == "" {
		scope = "that context"
	}
	joined := strings.Join(techs, ", ")

	if len(matched) == 0 {
		return finish(&models.QueryResult{
			ResponseText: fmt.Sprintf("No %s work found in %s.", joined, scope),
			Metadata:     md,
		})
	}
	md.TotalResults = len(matched)
	unseen := models.Unseen(matched, shown)
	if len(unseen) == 0 {
		md.ReferencedIDs = ids(matched)
		return finish(&models.QueryResult{
			ResponseText: fmt.Sprintf("The %s work in %s is what I already showed you.", joined, scope),
			Metadata:     md,
		})
	}

	resp := "Here's his work with " + joined
	if e := prev.Metadata.EntityName; e != "" {
		resp += " at " + e
	}
	return finish(&models.QueryResult{
		ResponseText: resp + ":",
		Items:        search.Select(unseen, r.maxItems),
		Metadata:     md,
	})
}

// rerun repeats the previous search for a generic follow-up and returns
// what has not been shown yet. When everything was shown the result lists
// the matches in referenced_ids without repeating them as items.
func (r *Resolver) rerun(ctx context.Context, text string, prev *models.FollowupContext, shown map[string]bool) *models.QueryResult {
	out := r.matches(ctx, prev)
	remainder := models.Unseen(out.Items, shown)
	md := r.metadata(text, prev, models.QueryTypeRerun, out)
	md.PreviouslyShown = len(shown)
	if len(remainder) == 0 {
		if len(out.Items) == 0 {
			return finish(&models.QueryResult{ResponseText: allSeen(prev), Metadata: md})
		}
		md.TotalResults = len(out.Items)
		md.ReferencedIDs = ids(out.Items)
		return finish(&models.QueryResult{
			ResponseText: fmt.Sprintf("Those are all the %s I have. Ask about any of them for details.", label(prev)),
			Metadata:     md,
		})
	}
	md.TotalResults = len(remainder)
	return finish(&models.QueryResult{
		ResponseText: "Here's more from the same search:",
		Items:        search.Select(remainder, r.maxItems),
		Metadata:     md,
	})
}

// matches re-derives the full match set of the previous turn from its
// metadata: the named entity's records, or the same search re-run over the
// whole corpus.
func (r *Resolver) matches(ctx context.Context, prev *models.FollowupContext) *search.Outcome {
	md := prev.Metadata
	if md.EntityName != "" {
		if m := r.detector.Lookup(md.EntityName); m.Found() {
			return &search.Outcome{Items: r.engine.FilterTechnology(m.Items, md.TechFilters)}
		}
		return &search.Outcome{Items: prev.Items}
	}
	return r.engine.Search(ctx, search.Request{
		Question:     md.OriginalQuery,
		Intent:       md.Intent,
		Technologies: md.TechFilters,
		Dates:        md.DateFilters,
		Categories:   categories(prev),
	})
}

// newTechnologies returns the technologies in text that the previous turn
// was not already filtered by.
func (r *Resolver) newTechnologies(text string, prev *models.FollowupContext) []string {
	var out []string
	for _, t := range r.analyzer.ExtractTechnologies(text) {
		if !slices.Contains(prev.Metadata.TechFilters, t) {
			out = append(out, t)
		}
	}
	return out
}

// metadata carries the previous turn's search parameters forward so that
// follow-ups can chain.
func (r *Resolver) metadata(text string, prev *models.FollowupContext, queryType string, out *search.Outcome) models.Metadata {
	pm := prev.Metadata
	md := models.Metadata{
		Intent:        pm.Intent,
		QueryType:     queryType,
		OriginalQuery: text,
		ContextQuery:  contextQuery(pm),
		TechFilters:   slices.Clone(pm.TechFilters),
		DateFilters: models.DateFilter{
			Years:    slices.Clone(pm.DateFilters.Years),
			Modifier: pm.DateFilters.Modifier,
		},
		IsFollowup:           true,
		ContentTypesSearched: categories(prev),
		EntityName:           pm.EntityName,
	}
	if out != nil && out.Fallback {
		md.FallbackSearch = true
		md.RequestedTechnologies = out.Requested
		md.SimilarTechnologiesFound = out.Similar
	}
	return md
}

// categories returns what the previous turn searched: its recorded
// categories, else the sources of its items, else its item type.
func categories(prev *models.FollowupContext) []models.Category {
	if cs := prev.Metadata.ContentTypesSearched; len(cs) > 0 {
		return slices.Clone(cs)
	}
	var cats []models.Category
	for _, it := range prev.Items {
		if _, ok := models.ParseCategory(string(it.ContentSource)); ok && !slices.Contains(cats, it.ContentSource) {
			cats = append(cats, it.ContentSource)
		}
	}
	if len(cats) > 0 {
		return cats
	}
	for _, s := range []string{prev.ItemType, prev.Metadata.Intent} {
		if c, ok := models.ParseCategory(s); ok {
			return []models.Category{c}
		}
	}
	return []models.Category{models.CategoryProjects}
}

func contextQuery(md models.Metadata) string {
	if md.ContextQuery != "" {
		return md.ContextQuery
	}
	return md.OriginalQuery
}

func label(prev *models.FollowupContext) string {
	if c, ok := models.ParseCategory(prev.ItemType); ok {
		return string(c)
	}
	return "results"
}

func allSeen(prev *models.FollowupContext) string {
	return fmt.Sprintf("That's all the %s I have! You've seen them all.", label(prev))
}

// finish derives the display fields from the items.
func finish(res *models.QueryResult) *models.QueryResult {
	res.ItemType = models.ItemTypeOf(res.Items)
	md := &res.Metadata
	md.ItemType = res.ItemType
	md.ShownResults = len(res.Items)
	md.NeedsCards = len(res.Items) > 0
	if len(res.Items) > 0 {
		md.ContentTypeCounts = models.CountBySource(res.Items)
	}
	return res
}

func ids(items []models.Record) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
