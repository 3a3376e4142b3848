package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

const sampleDoc = `
projects:
  - id: p1
    title: Portfolio
    technologies: [Python, FastAPI]
    date: "Mar 2024"
experience:
  - id: e1
    role: Engineer
    company: Spenza
    technologies: [AWS, Python]
    keywords: [ETL]
    dates: "Jan 2023 – Present"
skills:
  programming_languages: [Python, C++]
  cloud: [AWS]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Count(models.CategoryProjects) != 1 || c.Count(models.CategoryExperience) != 1 {
		t.Errorf("counts = %v", c.Counts())
	}
	skills := c.Records(models.CategorySkills)
	if len(skills) != 2 {
		t.Fatalf("skills = %d, want 2", len(skills))
	}
	if skills[0].ID != "programming_languages" || skills[0].Title != "Programming Languages" {
		t.Errorf("first skill group = %+v", skills[0])
	}
	if skills[1].ID != "cloud" {
		t.Errorf("skill groups out of document order: %q", skills[1].ID)
	}
	if skills[0].ContentSource != models.CategorySkills {
		t.Errorf("skills not annotated: %q", skills[0].ContentSource)
	}
}

func TestParse_JSON(t *testing.T) {
	c, err := Parse([]byte(`{"projects":[{"id":"p1","title":"A"}],"blog":[{"id":"b1","title":"B"}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Count(models.CategoryBlog) != 1 {
		t.Errorf("blog count = %d", c.Count(models.CategoryBlog))
	}
}

func TestNew_Invariants(t *testing.T) {
	tests := []struct {
		name     string
		sections map[models.Category][]models.Record
		wantErr  error
	}{
		{
			name:     "missing id",
			sections: map[models.Category][]models.Record{models.CategoryProjects: {{Title: "x"}}},
			wantErr:  ErrMissingID,
		},
		{
			name: "duplicate across categories",
			sections: map[models.Category][]models.Record{
				models.CategoryProjects:   {{ID: "a"}},
				models.CategoryExperience: {{ID: "a"}},
			},
			wantErr: ErrDuplicateID,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sections)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecords_ReturnsCopies(t *testing.T) {
	c, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	first := c.Records(models.CategoryProjects)
	first[0].Technologies[0] = "mutated"
	first[0].Title = "mutated"

	again := c.Records(models.CategoryProjects)
	if again[0].Technologies[0] != "Python" || again[0].Title != "Portfolio" {
		t.Errorf("corpus record mutated through a returned copy: %+v", again[0])
	}
}

func TestVocabulary(t *testing.T) {
	c, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	got := c.Vocabulary()
	want := []string{"python", "fastapi", "aws", "etl"}
	if len(got) != len(want) {
		t.Fatalf("Vocabulary() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vocabulary()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	c, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatal(err)
	}
	r, ok := c.Lookup("e1")
	if !ok || r.ContentSource != models.CategoryExperience {
		t.Errorf("Lookup(e1) = %+v, %v", r, ok)
	}
	if _, ok := c.Lookup("zzz"); ok {
		t.Error("Lookup of unknown id should fail")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(path + ".missing"); err == nil {
		t.Error("expected error for missing corpus")
	}
}
