package analyzer

import (
	"regexp"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// Intents that are not categories.
const (
	IntentGreeting = "greeting"
	IntentGeneral  = "general"
	IntentMixed    = "mixed"
)

type intentPatterns struct {
	category models.Category
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// categoryIntents is scored in declaration order. On a tie the category
// declared first wins (FirstRegisteredWins).
var categoryIntents = []intentPatterns{
	{models.CategoryProjects, compileAll(
		`projects?`, `\bbuilt\b`, `\bcreated?\b`, `\bdeveloped\b`, `what.*made`,
		`what.*worked on`, `portfolio`, `\bbuild(s|ing)?\b`,
	)},
	{models.CategoryExperience, compileAll(
		`experience`, `worked at`, `compan(y|ies)`, `\bjobs?\b`, `internships?`,
		`\broles?\b`, `positions?`, `where.*work`, `work.*\bat\b`, `employment`,
		`career`, `employers?`,
	)},
	{models.CategorySkills, compileAll(
		`\bskills?\b`, `technolog(y|ies)`, `\btools?\b`, `languages?`, `frameworks?`,
		`what.*know`, `expertise`,
	)},
	{models.CategoryEducation, compileAll(
		`education`, `degrees?`, `universit(y|ies)`, `college`, `studied`, `school`,
	)},
	{models.CategoryPublications, compileAll(
		`publications?`, `papers?`, `research`, `published`,
	)},
	{models.CategoryBlog, compileAll(
		`\bblogs?\b`, `articles?`, `\bposts?\b`, `writing`, `insights?`,
	)},
}

// FirstRegisteredWins documents the intent tie-break: equal scores go to the
// category declared first in categoryIntents.
const FirstRegisteredWins = true

var (
	greetingRe = compileAll(
		`^(hi|hello|hey|yo|sup|what's up|whats up)$`,
		`^how are you`,
		`^good (morning|afternoon|evening)`,
	)
	casualRe = compileAll(
		`what does that even mean`, `what do you mean`, `i don't understand`,
		`that doesn't make sense`, `what are you talking about`, `huh\?`, `^what\?$`,
		`^are you there`, `^test(ing)?\b`, `one.*two.*three`, `can you hear me`,
	)
	aboutYouRe = compileAll(
		`tell me about (yourself|him)`, `who are you`, `who is he`, `what do you do`,
		`introduce yourself`,
	)
)

var trailingPunct = regexp.MustCompile(`[\s!.?,]+$`)

// ExtractIntent classifies text as a category, "greeting" or "general".
// A question that matches nothing about categories or the subject defaults
// to projects so there is always something to show.
func ExtractIntent(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	bare := trailingPunct.ReplaceAllString(lowered, "")
	for _, re := range greetingRe {
		if re.MatchString(bare) {
			return IntentGreeting
		}
	}
	for _, re := range casualRe {
		if re.MatchString(lowered) {
			return IntentGeneral
		}
	}

	best, bestScore := models.Category(""), 0
	for _, ip := range categoryIntents {
		score := 0
		for _, re := range ip.patterns {
			if re.MatchString(lowered) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = ip.category, score
		}
	}
	if bestScore > 0 {
		return string(best)
	}
	for _, re := range aboutYouRe {
		if re.MatchString(lowered) {
			return IntentGeneral
		}
	}
	return string(models.CategoryProjects)
}
