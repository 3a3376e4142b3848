// Package lexicon maps technology phrases to canonical tags and knows which
// tags are related to each other.
package lexicon

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Source identifies which strategy produced related tags.
type Source string

const (
	SourceNone     Source = ""
	SourceGraph    Source = "graph"
	SourceSemantic Source = "semantic"
	SourceCategory Source = "category"
)

// SimilarityIndex finds corpus terms semantically close to a term.
type SimilarityIndex interface {
	Similar(ctx context.Context, term string) ([]string, error)
}

// Term is a fuzzy-matchable phrase and the tag it belongs to.
type Term struct {
	Text string
	Tag  string
}

// Lexicon is immutable after construction and safe for concurrent use.
type Lexicon struct {
	tags     []Tag
	byName   map[string]int
	synRe    []*regexp.Regexp
	memberRe []*regexp.Regexp
	graph    map[string][]string
	broad    []broadCategory
	vocab    []Term
	semantic SimilarityIndex
	logger   *zap.Logger
}

// Option configures a Lexicon.
type Option func(*Lexicon)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Lexicon) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithSemantic enables the embedding-backed fallback.
func WithSemantic(idx SimilarityIndex) Option {
	return func(l *Lexicon) { l.semantic = idx }
}

// WithTags replaces the built-in tag table.
func WithTags(tags []Tag) Option {
	return func(l *Lexicon) { l.tags = tags }
}

// WithGraph replaces the built-in similarity graph.
func WithGraph(graph map[string][]string) Option {
	return func(l *Lexicon) { l.graph = graph }
}

// New builds a lexicon from the built-in tables unless overridden.
func New(opts ...Option) *Lexicon {
	l := &Lexicon{
		tags:   defaultTags,
		graph:  defaultGraph,
		broad:  defaultBroad,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}

	l.byName = make(map[string]int, len(l.tags))
	l.synRe = make([]*regexp.Regexp, len(l.tags))
	l.memberRe = make([]*regexp.Regexp, len(l.tags))
	seen := make(map[string]bool)
	for i, t := range l.tags {
		l.byName[t.Name] = i
		l.synRe[i] = wordsPattern(t.Synonyms)
		if t.Broad() {
			l.memberRe[i] = wordsPattern(t.Members)
		}
		for _, s := range t.Synonyms {
			s = strings.ToLower(s)
			if fuzzyStoplist[s] || seen[s] {
				continue
			}
			seen[s] = true
			l.vocab = append(l.vocab, Term{Text: s, Tag: t.Name})
		}
	}
	return l
}

// wordsPattern matches any of phrases as a whole word. Boundaries are
// explicit so phrases ending in punctuation, such as "c++", still match.
func wordsPattern(phrases []string) *regexp.Regexp {
	alts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		alts = append(alts, regexp.QuoteMeta(strings.ToLower(p)))
	}
	return regexp.MustCompile(`(?:^|[^a-z0-9])(?:` + strings.Join(alts, "|") + `)(?:[^a-z0-9]|$)`)
}

// Tags returns the tag table in declaration order.
func (l *Lexicon) Tags() []Tag {
	return l.tags
}

// Lookup returns the tag named name.
func (l *Lexicon) Lookup(name string) (Tag, bool) {
	i, ok := l.byName[name]
	if !ok {
		return Tag{}, false
	}
	return l.tags[i], true
}

// Vocabulary returns every synonym eligible for fuzzy matching. A phrase
// shared by several tags belongs to the first tag that declares it.
func (l *Lexicon) Vocabulary() []Term {
	return l.vocab
}

// Mentions reports whether lowered text names the tag through one of its synonyms.
func (l *Lexicon) Mentions(name, lowered string) bool {
	i, ok := l.byName[name]
	if !ok {
		return false
	}
	return l.synRe[i].MatchString(lowered)
}

// Strip removes every synonym mention from lowered text.
func (l *Lexicon) Strip(lowered string) string {
	for _, re := range l.synRe {
		lowered = re.ReplaceAllString(lowered, " ")
	}
	return lowered
}

// Describes reports whether lowered record text is evidence for the tag.
// Broad tags need one of their specific members; the category word alone is not enough.
func (l *Lexicon) Describes(name, lowered string) bool {
	i, ok := l.byName[name]
	if !ok {
		return false
	}
	if l.memberRe[i] != nil {
		return l.memberRe[i].MatchString(lowered)
	}
	return l.synRe[i].MatchString(lowered)
}

// Related returns tags to try when name finds nothing: the similarity
// graph first, then the semantic index, then the coarse category hints.
func (l *Lexicon) Related(ctx context.Context, name string) ([]string, Source) {
	name = strings.ToLower(name)
	if rel, ok := l.graph[name]; ok && len(rel) > 0 {
		return rel, SourceGraph
	}
	if l.semantic != nil {
		rel, err := l.semantic.Similar(ctx, strings.ReplaceAll(name, "_", " "))
		if err != nil {
			l.logger.Debug("semantic fallback unavailable", zap.String("tag", name), zap.Error(err))
		} else if len(rel) > 0 {
			return rel, SourceSemantic
		}
	}
	for _, bc := range l.broad {
		for _, h := range bc.hints {
			if strings.Contains(name, h) {
				return bc.related, SourceCategory
			}
		}
	}
	return nil, SourceNone
}
