package query

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/analyzer"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/search"
)

const (
	casualText    = "Casual conversation - no cards needed"
	noResultsText = "Hmm, I couldn't find anything specific about that. Maybe ask me about his projects, experience, or skills?"
	failedText    = "Sorry, something went wrong while looking that up. Try asking another way?"
)

func offTopicText(subject string) string {
	return fmt.Sprintf("Whoa there! 🚀 I'm all about %s's epic tech journey, projects, and skills. "+
		"For random questions like that, ChatGPT's your best bet! 🤖✨", subject)
}

func entityText(name string) string {
	return fmt.Sprintf("Here's what he did at %s", name)
}

func notFoundText(name string) string {
	return fmt.Sprintf("I don't see anything about %s in the résumé.", name)
}

// describe is the heuristic response text; a narrator may replace it.
func describe(a *analyzer.Analysis, out *search.Outcome, items []models.Record) string {
	n := len(items)
	switch {
	case n == 0:
		return noResultsText
	case out.Fallback:
		return fmt.Sprintf("No direct experience with %s, but found related work with %s",
			strings.Join(out.Requested, ", "), strings.Join(out.Similar, ", "))
	case out.Intent == models.ItemTypeMixed:
		text := fmt.Sprintf("Found %d items across %d content types", len(out.Items), len(models.CountBySource(out.Items)))
		if len(a.Technologies) > 0 {
			text += fmt.Sprintf(" with %s experience", strings.Join(a.Technologies, ", "))
		}
		if a.Highlights {
			text += " - here's a career highlights recap"
		}
		return text
	}
	return byIntent(out.Intent, n, a.Technologies, a.Superlative)
}

func byIntent(intent string, n int, techs []string, superlative bool) string {
	joined := strings.Join(techs, ", ")
	switch models.Category(intent) {
	case models.CategoryProjects:
		switch {
		case superlative && n == 1:
			return "You want to know the crown jewel? Here's his most impressive build:"
		case superlative:
			return fmt.Sprintf("Here are his top %d most impressive builds:", n)
		case len(techs) > 0:
			return fmt.Sprintf("Found %d %s involving %s. Here's what he's built:", n, plural(n, "project"), joined)
		}
		return fmt.Sprintf("Here are %d standout %s from his portfolio:", n, plural(n, "project"))
	case models.CategoryExperience:
		if len(techs) > 0 {
			return fmt.Sprintf("Here's his %d %s working with %s:", n, plural(n, "experience"), joined)
		}
		return fmt.Sprintf("His professional journey includes %d key %s:", n, plural(n, "experience"))
	case models.CategorySkills:
		return "Here's a breakdown of his technical expertise:"
	case models.CategoryEducation:
		return "His educational background:"
	case models.CategoryPublications:
		return fmt.Sprintf("His research contributions include %d %s:", n, plural(n, "publication"))
	case models.CategoryBlog:
		return fmt.Sprintf("Here are %d insightful blog %s he's written:", n, plural(n, "post"))
	}
	return fmt.Sprintf("Here's what I found about %s:", intent)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
