// Package guardrail rejects questions that are malicious or unrelated to the
// subject's career before any other processing runs.
package guardrail

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Reason names why a question was rejected.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonMalicious        Reason = "malicious"
	ReasonPhilosophical    Reason = "philosophical"
	ReasonPersonal         Reason = "personal"
	ReasonAcademic         Reason = "academic"
	ReasonCooking          Reason = "cooking"
	ReasonGeneralKnowledge Reason = "general_knowledge"
)

// Verdict is the outcome of checking one question.
type Verdict struct {
	OffTopic bool
	Reason   Reason
	// Keywords counts distinct résumé keywords found in the question.
	Keywords int
}

// Guard is immutable and safe for concurrent use.
type Guard struct {
	keywordThreshold int
	subject          *regexp.Regexp
	logger           *zap.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Guard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithKeywordThreshold sets how many résumé keywords make a question on-topic.
func WithKeywordThreshold(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.keywordThreshold = n
		}
	}
}

// WithSubject adds the subject's name to the words that mark a question as
// being about them rather than general trivia.
func WithSubject(name string) Option {
	return func(g *Guard) {
		if name = strings.TrimSpace(strings.ToLower(name)); name != "" {
			g.subject = subjectPattern(name)
		}
	}
}

// NewGuard creates a Guard.
func NewGuard(opts ...Option) *Guard {
	g := &Guard{keywordThreshold: 2, subject: subjectPattern(""), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func subjectPattern(name string) *regexp.Regexp {
	words := `you|your|yours|yourself|he|him|his|himself`
	if name != "" {
		words += "|" + regexp.QuoteMeta(name)
	}
	return regexp.MustCompile(`\b(?:` + words + `)\b`)
}

// IsOffTopic reports whether text should be answered with the redirect.
func (g *Guard) IsOffTopic(text string) bool {
	return g.Check(text).OffTopic
}

// Check classifies text. Malicious patterns always reject. Otherwise a
// question is rejected only when it is not résumé-related and it falls into
// one of the off-topic classes.
func (g *Guard) Check(text string) Verdict {
	lowered := strings.ToLower(strings.TrimSpace(text))
	v := Verdict{Keywords: countKeywords(lowered)}

	if anyMatch(maliciousPatterns, lowered) {
		v.OffTopic, v.Reason = true, ReasonMalicious
		g.log(lowered, v)
		return v
	}
	if v.Keywords >= g.keywordThreshold || anyMatch(resumeIntentPatterns, lowered) {
		return v
	}

	switch {
	case philosophical.matches(lowered):
		v.Reason = ReasonPhilosophical
	case personal.matches(lowered):
		v.Reason = ReasonPersonal
	case academic.matches(lowered):
		v.Reason = ReasonAcademic
	case cooking.matches(lowered):
		v.Reason = ReasonCooking
	case g.isGeneralKnowledge(lowered):
		v.Reason = ReasonGeneralKnowledge
	}
	v.OffTopic = v.Reason != ReasonNone
	if v.OffTopic {
		g.log(lowered, v)
	}
	return v
}

func (g *Guard) log(lowered string, v Verdict) {
	g.logger.Debug("guardrail triggered",
		zap.String("question", lowered),
		zap.String("reason", string(v.Reason)),
		zap.Int("resume_keywords", v.Keywords),
	)
}

// isGeneralKnowledge covers trivia vocabulary and bare factual questions.
// Questions naming a technology are never trivia, and a factual question
// about the subject is not trivia either.
func (g *Guard) isGeneralKnowledge(lowered string) bool {
	if technology.matches(lowered) {
		return false
	}
	if generalKnowledge.matches(lowered) {
		return true
	}
	if g.subject.MatchString(lowered) {
		return false
	}
	for _, p := range questionPrefixes {
		if strings.HasPrefix(lowered, p) {
			return true
		}
	}
	return false
}

func countKeywords(lowered string) int {
	n := 0
	for _, k := range resumeKeywords {
		if re, ok := shortKeywordPatterns[k]; ok {
			if re.MatchString(lowered) {
				n++
			}
			continue
		}
		if strings.Contains(lowered, k) {
			n++
		}
	}
	return n
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
