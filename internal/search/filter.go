package search

import (
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// MatchesTechnology reports whether rec is evidence for any of tags.
//
// A tag matches when its name or one of its synonyms appears as a whole word
// in one of the record's technologies or keywords, or in the record's free
// text. Whole-word matching keeps "java" out of "JavaScript" and "go" out of
// "MongoDB". Broad tags need one of their specific members; the bare
// category word is not enough. Tags unknown to the lexicon, such as terms
// from the semantic fallback, match by name alone.
func (e *Engine) MatchesTechnology(rec models.Record, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	text := rec.Text()
	for _, tag := range tags {
		if e.matchesTag(rec, text, strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

func (e *Engine) matchesTag(rec models.Record, text, tag string) bool {
	def, known := e.lex.Lookup(tag)
	if known && def.Broad() {
		for _, t := range rec.Tags() {
			if e.lex.Describes(tag, strings.ToLower(t)) {
				return true
			}
		}
		return e.lex.Describes(tag, text)
	}

	name := strings.ReplaceAll(tag, "_", " ")
	for _, t := range rec.Tags() {
		lt := strings.ToLower(t)
		if containsWord(lt, name) || (known && e.lex.Mentions(tag, lt)) {
			return true
		}
	}
	if known {
		return e.lex.Mentions(tag, text)
	}
	return containsWord(text, name)
}

// containsWord reports whether word occurs in s delimited by
// non-alphanumeric characters or the ends of s.
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	for from := 0; ; {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		i += from
		j := i + len(word)
		if (i == 0 || !isAlnum(s[i-1])) && (j == len(s) || !isAlnum(s[j])) {
			return true
		}
		from = i + 1
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 'A' && b <= 'Z'
}

// FilterTechnology keeps the records matching any of tags.
func (e *Engine) FilterTechnology(records []models.Record, tags []string) []models.Record {
	if len(tags) == 0 {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if e.MatchesTechnology(r, tags) {
			out = append(out, r)
		}
	}
	return out
}

// FilterDate keeps the records matching f.
func (e *Engine) FilterDate(records []models.Record, f models.DateFilter) []models.Record {
	if f.IsZero() {
		return records
	}
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if MatchesDate(r, f, e.referenceYear) {
			out = append(out, r)
		}
	}
	return out
}
