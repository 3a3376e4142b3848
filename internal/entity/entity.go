// Package entity finds questions about one specific organisation or project
// and the records that belong to it.
package entity

import (
	"regexp"
	"strings"

	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"go.uber.org/zap"
)

// Match is a detected entity and the records that mention it.
type Match struct {
	Name  string
	Items []models.Record
	// Strong is set when the question named an organisation explicitly,
	// as in "his work at X" or "X Lab". A strong match with no items means
	// the organisation is not in the corpus.
	Strong bool
}

// Found reports whether any record matched.
func (m *Match) Found() bool {
	return m != nil && len(m.Items) > 0
}

// DisplayName returns the organisation as the corpus spells it when every
// matched record names the same one, and the extracted name otherwise.
func (m *Match) DisplayName() string {
	var org string
	for _, it := range m.Items {
		o := it.Company
		if o == "" {
			o = it.University
		}
		if o == "" || (org != "" && o != org) {
			return m.Name
		}
		org = o
	}
	if org == "" {
		return m.Name
	}
	return org
}

type namePattern struct {
	re     *regexp.Regexp
	strong bool
}

var patterns = []namePattern{
	{regexp.MustCompile(`what.*did.*he.*do.*\bat\s+(.+?)(?:\?|$)`), true},
	{regexp.MustCompile(`what.*did.*he.*do.*\b(?:in|for)\s+(.+?)(?:\?|$)`), false},
	{regexp.MustCompile(`what.*specifically.*\b(?:at|in|for)\s+(.+?)(?:\?|$)`), false},
	{regexp.MustCompile(`tell me about.*(?:his work|his time|experience).*\b(?:at|in|for)\s+(.+?)(?:\?|$)`), true},
	{regexp.MustCompile(`\b(?:work|worked|working|job|role|internship|experience)\s+(?:at|for|with)\s+(.+?)(?:\?|$)`), true},
	{regexp.MustCompile(`\babout\s+(?:the\s+|his\s+)?(.+?\s+(?:lab|company|inc|corp|llc|organization))\b`), true},
	{regexp.MustCompile(`\b(?:in|at)\s+(.+?)\s+(?:experience|company|job|role)\b`), true},
	{regexp.MustCompile(`\b(?:at|in|for)\s+(.+?)(?:\?|$)`), false},
	{regexp.MustCompile(`tell me about\s+(.+?)(?:\?|$)`), false},
}

var (
	slapRe      = regexp.MustCompile(`\b(slap|lab)\b`)
	robotRe     = regexp.MustCompile(`\b(robot|robots)\b`)
	nameWordRe  = regexp.MustCompile(`[a-z0-9][a-z0-9&.+'-]*`)
	yearLikeRe  = regexp.MustCompile(`^'?\d{2,4}s?$`)
	searchedIns = []models.Category{
		models.CategoryExperience,
		models.CategoryProjects,
		models.CategoryPublications,
		models.CategoryEducation,
	}
)

// Detector is immutable and safe for concurrent use.
type Detector struct {
	corpus *corpus.Corpus
	lex    *lexicon.Lexicon
	logger *zap.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDetector creates a detector over c. The lexicon is used to recognise
// candidate names that are really technologies.
func NewDetector(c *corpus.Corpus, lex *lexicon.Lexicon, opts ...Option) *Detector {
	d := &Detector{corpus: c, lex: lex, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect extracts a candidate name from text and returns the records that
// mention it. Candidates made only of technologies, category words, years
// or filler words are skipped. It returns nil when no candidate matched,
// unless a strong candidate was seen, in which case the returned Match has
// no items.
func (d *Detector) Detect(text string) *Match {
	lowered := strings.ToLower(strings.TrimSpace(text))
	var notFound *Match
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		name := Normalize(m[1])
		words := d.significantWords(name)
		if len(words) == 0 {
			continue
		}
		if items := d.find(words); len(items) > 0 {
			d.logger.Debug("entity detected", zap.String("name", name), zap.Int("matches", len(items)))
			return &Match{Name: name, Items: items, Strong: p.strong}
		}
		if p.strong && notFound == nil {
			notFound = &Match{Name: name, Strong: true}
		}
	}
	if notFound != nil {
		d.logger.Debug("entity not in corpus", zap.String("name", notFound.Name))
	}
	return notFound
}

// Lookup treats the whole of name as the candidate. It returns nil when
// name has no significant words.
func (d *Detector) Lookup(name string) *Match {
	name = Normalize(name)
	words := d.significantWords(name)
	if len(words) == 0 {
		return nil
	}
	return &Match{Name: name, Items: d.find(words), Strong: true}
}

// Normalize lowercases a candidate name, trims punctuation and leading
// articles, and fixes common speech-to-text slips.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.Trim(name, " .,!?;:\"'")
	name = slapRe.ReplaceAllString(name, "lab")
	name = robotRe.ReplaceAllString(name, "robots")
	for _, prefix := range []string{"the ", "his ", "her ", "their "} {
		name = strings.TrimPrefix(name, prefix)
	}
	return strings.TrimSpace(name)
}

// significantWords returns the words of name that can identify an
// organisation or project. Technologies are dropped, so "spenza with
// python" identifies Spenza.
func (d *Detector) significantWords(name string) []string {
	if d.lex != nil {
		name = d.lex.Strip(name)
	}
	var out []string
	for _, w := range nameWordRe.FindAllString(name, -1) {
		w = strings.Trim(w, ".'-")
		if len(w) <= 2 || stopwords[w] || categoryWords[w] || yearLikeRe.MatchString(w) || d.isTechnology(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (d *Detector) isTechnology(word string) bool {
	if d.lex == nil {
		return false
	}
	for _, t := range d.lex.Tags() {
		if t.Name == word || d.lex.Mentions(t.Name, word) {
			return true
		}
	}
	return false
}

// find scores every searchable record. Several words need at least two
// hits; a single word needs more than three characters.
func (d *Detector) find(words []string) []models.Record {
	if len(words) == 1 && len(words[0]) <= 3 {
		return nil
	}
	need := min(2, len(words))
	var out []models.Record
	for _, c := range searchedIns {
		for _, r := range d.corpus.Records(c) {
			text := searchableText(r)
			hits := 0
			for _, w := range words {
				if strings.Contains(text, w) {
					hits++
				}
			}
			if hits >= need {
				out = append(out, r)
			}
		}
	}
	return out
}

func searchableText(r models.Record) string {
	return strings.ToLower(strings.Join([]string{r.Company, r.Title, r.University, r.Degree, r.Description}, " "))
}
