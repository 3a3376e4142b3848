package search

import (
	"context"
	"slices"

	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// fallback retries a search whose technology filters matched nothing with
// the union of technologies related to each requested one. The outcome is
// marked as a fallback only when it finds something.
func (e *Engine) fallback(ctx context.Context, cats []models.Category, req Request) *Outcome {
	var similar []string
	source := lexicon.SourceNone
	for _, tag := range req.Technologies {
		related, src := e.lex.Related(ctx, tag)
		for _, r := range related {
			if !slices.Contains(similar, r) && !slices.Contains(req.Technologies, r) {
				similar = append(similar, r)
			}
		}
		if source == lexicon.SourceNone {
			source = src
		}
	}
	if len(similar) == 0 {
		e.logger.Debug("no related technologies", zap.Strings("requested", req.Technologies))
		return &Outcome{Searched: cats, Counts: map[models.Category]int{}, CrossCategory: true, Intent: models.ItemTypeMixed}
	}

	out := e.searchAcross(cats, similar, req.Dates)
	if len(out.Items) == 0 {
		return out
	}
	out.Fallback = true
	out.Requested = slices.Clone(req.Technologies)
	out.Similar = similar
	out.FallbackSource = source
	e.logger.Debug("fallback search matched",
		zap.Strings("requested", out.Requested),
		zap.Strings("similar", out.Similar),
		zap.String("source", string(source)),
		zap.Int("matches", len(out.Items)),
	)
	return out
}
