package analyzer

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xrash/smetrics"
	"go.uber.org/zap"
)

var (
	wordRe     = regexp.MustCompile(`[a-z0-9]+`)
	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// ExtractTechnologies returns the canonical tags mentioned in text, in tag
// table order. Exact synonym matches take priority; fuzzy matching only
// runs when nothing matched exactly.
func (a *Analyzer) ExtractTechnologies(text string) []string {
	techs, _ := a.extractTechnologies(strings.ToLower(text))
	return techs
}

func (a *Analyzer) extractTechnologies(lowered string) ([]string, bool) {
	var found []string
	for _, t := range a.lex.Tags() {
		if a.lex.Mentions(t.Name, lowered) {
			found = append(found, t.Name)
		}
	}
	if len(found) > 0 {
		return found, false
	}
	found = a.fuzzyTechnologies(lowered)
	return found, len(found) > 0
}

// fuzzyTechnologies matches single words of four or more characters and
// adjacent word pairs against the lexicon vocabulary.
func (a *Analyzer) fuzzyTechnologies(lowered string) []string {
	vocab := a.lex.Vocabulary()
	if len(vocab) == 0 {
		return nil
	}
	choices := make([]string, len(vocab))
	for i, term := range vocab {
		choices[i] = processed(term.Text)
	}

	var found []string
	seen := make(map[string]bool)
	add := func(query string, threshold int) {
		idx, score := bestMatch(query, choices)
		if idx < 0 || score < threshold {
			return
		}
		tag := vocab[idx].Tag
		if !seen[tag] {
			seen[tag] = true
			found = append(found, tag)
			a.logger.Debug("fuzzy technology match",
				zap.String("query", query), zap.String("term", vocab[idx].Text), zap.Int("score", score))
		}
	}

	words := wordRe.FindAllString(lowered, -1)
	for _, w := range words {
		if len(w) >= 4 {
			add(w, a.wordThreshold)
		}
	}
	for i := 0; i+1 < len(words); i++ {
		if len(words[i])+len(words[i+1]) >= 6 {
			add(words[i]+" "+words[i+1], a.phraseThreshold)
		}
	}
	return found
}

// bestMatch returns the index of the highest-scoring choice. The first
// choice wins ties.
func bestMatch(query string, choices []string) (int, int) {
	best, bestScore := -1, -1
	for i, c := range choices {
		if s := Ratio(query, c); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}

// Ratio scores the similarity of a and b from 0 to 100 using edit distance
// where a substitution costs two.
func Ratio(a, b string) int {
	lensum := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if lensum == 0 {
		return 100
	}
	d := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(math.Round(100 * float64(lensum-d) / float64(lensum)))
}

func processed(s string) string {
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(strings.ToLower(s), " "))
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
