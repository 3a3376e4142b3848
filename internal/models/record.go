// Package models defines the records, query results and conversation turns shared by the engine.
package models

import "strings"

// Category names a section of the corpus.
type Category string

const (
	CategoryProjects     Category = "projects"
	CategoryExperience   Category = "experience"
	CategorySkills       Category = "skills"
	CategoryEducation    Category = "education"
	CategoryPublications Category = "publications"
	CategoryBlog         Category = "blog"
)

// Categories lists every category in declaration order.
var Categories = []Category{
	CategoryProjects,
	CategoryExperience,
	CategorySkills,
	CategoryEducation,
	CategoryPublications,
	CategoryBlog,
}

// NarrativeCategories are the categories whose records carry technology tags.
var NarrativeCategories = []Category{CategoryProjects, CategoryExperience, CategoryPublications}

// ParseCategory returns the category named s, if any.
func ParseCategory(s string) (Category, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Record is one corpus entry. Records held by the corpus are never modified;
// the engine hands out copies annotated with ContentSource.
type Record struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title,omitempty" yaml:"title"`
	Role         string   `json:"role,omitempty" yaml:"role"`
	Name         string   `json:"name,omitempty" yaml:"name"`
	Company      string   `json:"company,omitempty" yaml:"company"`
	University   string   `json:"university,omitempty" yaml:"university"`
	Journal      string   `json:"journal,omitempty" yaml:"journal"`
	Degree       string   `json:"degree,omitempty" yaml:"degree"`
	Location     string   `json:"location,omitempty" yaml:"location"`
	Description  string   `json:"description,omitempty" yaml:"description"`
	Highlights   []string `json:"highlights,omitempty" yaml:"highlights"`
	Technologies []string `json:"technologies,omitempty" yaml:"technologies"`
	Keywords     []string `json:"keywords,omitempty" yaml:"keywords"`
	Skills       []string `json:"skills,omitempty" yaml:"skills"`
	Dates        string   `json:"dates,omitempty" yaml:"dates"`
	Date         string   `json:"date,omitempty" yaml:"date"`
	URL          string   `json:"url,omitempty" yaml:"url"`
	Type         string   `json:"type,omitempty" yaml:"type"`

	ContentSource Category `json:"content_source,omitempty" yaml:"-"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Highlights = cloneStrings(r.Highlights)
	out.Technologies = cloneStrings(r.Technologies)
	out.Keywords = cloneStrings(r.Keywords)
	out.Skills = cloneStrings(r.Skills)
	return out
}

// Annotated returns a deep copy of r tagged with its owning category.
func (r Record) Annotated(c Category) Record {
	out := r.Clone()
	out.ContentSource = c
	return out
}

// Heading is the best display name for the record.
func (r Record) Heading() string {
	for _, s := range []string{r.Title, r.Role, r.Name, r.Degree} {
		if s != "" {
			return s
		}
	}
	return r.ID
}

// DateText returns the record's date field, whichever form it uses.
func (r Record) DateText() string {
	if r.Dates != "" {
		return r.Dates
	}
	return r.Date
}

// Text is the lowercased free text searched for synonyms: headings,
// organisation, description and highlights.
func (r Record) Text() string {
	parts := []string{r.Title, r.Role, r.Name, r.Company, r.University, r.Journal, r.Description}
	parts = append(parts, r.Highlights...)
	return strings.ToLower(strings.Join(parts, " "))
}

// Tags returns the record's technologies followed by its keywords.
func (r Record) Tags() []string {
	out := make([]string, 0, len(r.Technologies)+len(r.Keywords))
	out = append(out, r.Technologies...)
	return append(out, r.Keywords...)
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
