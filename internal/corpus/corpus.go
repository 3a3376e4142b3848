// Package corpus holds the immutable résumé records the engine answers from.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingID is returned when a record has no id.
	ErrMissingID = errors.New("record has no id")
	// ErrDuplicateID is returned when two records share an id.
	ErrDuplicateID = errors.New("duplicate record id")
)

// Corpus is the read-only set of records grouped by category. It is safe
// for concurrent use; every accessor returns copies.
type Corpus struct {
	sections map[models.Category][]models.Record
}

type document struct {
	Projects     []models.Record `yaml:"projects"`
	Experience   []models.Record `yaml:"experience"`
	Publications []models.Record `yaml:"publications"`
	Blog         []models.Record `yaml:"blog"`
	Education    []models.Record `yaml:"education"`
	Skills       yaml.Node       `yaml:"skills"`
}

// Load reads a corpus document from path. JSON documents are accepted as well as YAML.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a corpus document.
func Parse(data []byte) (*Corpus, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	skills, err := skillGroups(&doc.Skills)
	if err != nil {
		return nil, err
	}
	return New(map[models.Category][]models.Record{
		models.CategoryProjects:     doc.Projects,
		models.CategoryExperience:   doc.Experience,
		models.CategoryPublications: doc.Publications,
		models.CategoryBlog:         doc.Blog,
		models.CategoryEducation:    doc.Education,
		models.CategorySkills:       skills,
	})
}

// New builds a corpus from records grouped by category. Records are copied;
// IDs must be present and unique across the whole corpus.
func New(sections map[models.Category][]models.Record) (*Corpus, error) {
	c := &Corpus{sections: make(map[models.Category][]models.Record, len(sections))}
	seen := make(map[string]models.Category)
	for _, cat := range models.Categories {
		recs := sections[cat]
		if len(recs) == 0 {
			continue
		}
		out := make([]models.Record, 0, len(recs))
		for i, r := range recs {
			if strings.TrimSpace(r.ID) == "" {
				return nil, fmt.Errorf("%s[%d]: %w", cat, i, ErrMissingID)
			}
			if prev, dup := seen[r.ID]; dup {
				return nil, fmt.Errorf("%q in %s and %s: %w", r.ID, prev, cat, ErrDuplicateID)
			}
			seen[r.ID] = cat
			r = r.Clone()
			r.ContentSource = ""
			out = append(out, r)
		}
		c.sections[cat] = out
	}
	return c, nil
}

// skillGroups turns the skills mapping into one record per group, keeping document order.
func skillGroups(node *yaml.Node) ([]models.Record, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse corpus: skills must be a mapping of group to list")
	}
	var out []models.Record
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var list []string
		if err := node.Content[i+1].Decode(&list); err != nil {
			return nil, fmt.Errorf("failed to parse skills group %q: %w", key, err)
		}
		out = append(out, models.Record{
			ID:     key,
			Title:  titleCase(key),
			Skills: list,
			Type:   "skill",
		})
	}
	return out, nil
}

func titleCase(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// Records returns annotated copies of every record in cat, in corpus order.
func (c *Corpus) Records(cat models.Category) []models.Record {
	src := c.sections[cat]
	out := make([]models.Record, len(src))
	for i, r := range src {
		out[i] = r.Annotated(cat)
	}
	return out
}

// Count returns the number of records in cat.
func (c *Corpus) Count(cat models.Category) int {
	return len(c.sections[cat])
}

// Counts returns the number of records per non-empty category.
func (c *Corpus) Counts() map[models.Category]int {
	out := make(map[models.Category]int, len(c.sections))
	for cat, recs := range c.sections {
		out[cat] = len(recs)
	}
	return out
}

// Lookup finds a record by id and returns an annotated copy.
func (c *Corpus) Lookup(id string) (models.Record, bool) {
	for _, cat := range models.Categories {
		for _, r := range c.sections[cat] {
			if r.ID == id {
				return r.Annotated(cat), true
			}
		}
	}
	return models.Record{}, false
}

// Vocabulary returns every distinct technology and keyword used by the
// narrative categories, lowercased, in first-seen order.
func (c *Corpus) Vocabulary() []string {
	seen := make(map[string]bool)
	var out []string
	for _, cat := range models.NarrativeCategories {
		for _, r := range c.sections[cat] {
			for _, t := range r.Tags() {
				t = strings.ToLower(strings.TrimSpace(t))
				if t == "" || seen[t] {
					continue
				}
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}
