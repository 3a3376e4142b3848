package conversation

import "regexp"

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

func anyMatch(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// clarificationRe matches the prefix of "no, I meant X"; the remainder is
// the clarified name.
var clarificationRe = regexp.MustCompile(`^(?:no|actually|sorry)[,.!]?\s*i\s*meant\b[\s,:]*`)

var (
	showAllRe = compileAll(
		`\bshow all\b`, `\bshow me all\b`, `\bgive me all\b`, `\ball of them\b`,
		`\beverything\b`, `\ball results\b`, `\ball available\b`, `\bsee all\b`,
	)
	showMoreRe = compileAll(
		`\bshow me more\b`, `\bgive me more\b`, `\btell me more\b`, `\bmore\b.*\bplease\b`,
		`\bcan.*see.*more\b`, `^(any|some)?\s*more\??$`, `\bwhat else\b`, `\banything else\b`,
	)
	contextualRe = compileAll(
		`\bmore about (that|those|them|it)\b`,
		`\bwhat about (that|those|them)\b`,
		`\bexpand on (that|those|them)\b`,
		`\bgive me details\b`,
		`\bmore details\b`,
		`\b(that|those|them|it)\b.*\b(sounds?|looks?|seems?)\b`,
		`\b(in|at|for|with) (this|that|these|those)\b`,
		`\bin there\b`,
		`\bwhat.*did.*do.*there\b`,
		`\bany.*\bin (this|that|there)\b`,
		`\bin (that|this) (project|experience|work|role|position|job)\b`,
	)
)

// IsFollowup reports whether text reads as a follow-up to an earlier answer.
func IsFollowup(text string) bool {
	return kindOf(lower(text)) != kindNone
}

type kind int

const (
	kindNone kind = iota
	kindClarification
	kindShowAll
	kindShowMore
	kindContextual
)

// kindOf classifies lowered text. Clarification takes precedence; the
// other kinds are checked in the order the resolver handles them.
func kindOf(lowered string) kind {
	switch {
	case clarificationRe.MatchString(lowered):
		return kindClarification
	case anyMatch(showAllRe, lowered):
		return kindShowAll
	case anyMatch(showMoreRe, lowered):
		return kindShowMore
	case anyMatch(contextualRe, lowered):
		return kindContextual
	}
	return kindNone
}
