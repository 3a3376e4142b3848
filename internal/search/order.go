package search

import (
	"slices"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// displayOrder is the order categories appear in a cross-category result.
var displayOrder = []models.Category{
	models.CategoryPublications,
	models.CategoryProjects,
	models.CategoryExperience,
	models.CategoryBlog,
	models.CategorySkills,
	models.CategoryEducation,
}

// ETLEmployerPolicy is a deliberate domain tie-break: when a question's
// technology filter is about ETL or data pipelines, experience at Employer
// is listed before other experience regardless of dates.
type ETLEmployerPolicy struct {
	Employer string
	Tags     []string
}

// DefaultETLEmployerPolicy promotes Spenza for the etl tag.
func DefaultETLEmployerPolicy() ETLEmployerPolicy {
	return ETLEmployerPolicy{Employer: "spenza", Tags: []string{"etl", "data pipeline", "pipeline"}}
}

// Applies reports whether techs trigger the promotion.
func (p ETLEmployerPolicy) Applies(techs []string) bool {
	if p.Employer == "" {
		return false
	}
	for _, t := range techs {
		if slices.Contains(p.Tags, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// Promote moves the employer's entries to the front, keeping the relative
// order within each group.
func (p ETLEmployerPolicy) Promote(items []models.Record) []models.Record {
	employer := strings.ToLower(p.Employer)
	out := make([]models.Record, 0, len(items))
	var rest []models.Record
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Company), employer) {
			out = append(out, it)
		} else {
			rest = append(rest, it)
		}
	}
	return append(out, rest...)
}

// SortNewestFirst returns items ordered by the latest endpoint of their
// dates, newest first. Ties keep their original order.
func SortNewestFirst(items []models.Record) []models.Record {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b models.Record) int {
		return recencyKey(b) - recencyKey(a)
	})
	return out
}

// order concatenates category groups in display order. Publications,
// projects and experience are sorted newest first; blog, skills and
// education keep corpus order.
func (e *Engine) order(groups map[models.Category][]models.Record, techs []string) []models.Record {
	var out []models.Record
	for _, c := range displayOrder {
		items := groups[c]
		if len(items) == 0 {
			continue
		}
		switch c {
		case models.CategoryPublications, models.CategoryProjects:
			items = SortNewestFirst(items)
		case models.CategoryExperience:
			items = SortNewestFirst(items)
			if e.etl.Applies(techs) {
				items = e.etl.Promote(items)
			}
		}
		out = append(out, items...)
	}
	return out
}
