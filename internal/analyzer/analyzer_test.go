package analyzer

import (
	"testing"

	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *Analyzer {
	return New(lexicon.New(), WithReferenceYear(2025))
}

func TestExtractIntent(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What Python experience do you have?", "experience"},
		{"show me your projects", "projects"},
		{"what languages does he know", "skills"},
		{"what degree does he have", "education"},
		{"any research papers?", "publications"},
		{"has he written blog posts", "blog"},
		{"hi", IntentGreeting},
		{"Hello!", IntentGreeting},
		{"what do you mean", IntentGeneral},
		{"tell me about yourself", IntentGeneral},
		{"anything with python", "projects"},
		// equal scores go to the category declared first
		{"projects and experience", "projects"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractIntent(tt.question))
		})
	}
}

func TestExtractTechnologies(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name      string
		question  string
		want      []string
		wantFuzzy bool
	}{
		{"single", "What Python experience do you have?", []string{"python"}, false},
		{"synonym", "anything using reactjs or nodejs", []string{"react", "nodejs"}, false},
		{"word boundary", "what about javascript", []string{"javascript"}, false},
		{"punctuation", "c++ projects", []string{"cpp"}, false},
		{"broad", "database work", []string{"database"}, false},
		{"misspelling", "pyhton projects", []string{"python"}, true},
		{"misspelled phrase", "tensorflw models", []string{"tensorflow"}, true},
		{"nothing", "what did he study", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fuzzy := a.extractTechnologies(tt.question)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFuzzy, fuzzy)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, Ratio("python", "python"))
	assert.Equal(t, 83, Ratio("pyhton", "python"))
	assert.Equal(t, 95, Ratio("tensorflw", "tensorflow"))
	assert.Equal(t, 0, Ratio("abc", "xyz"))
}

func TestExtractDateFilters(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		question string
		want     models.DateFilter
	}{
		{"projects in 2023", models.DateFilter{Years: []int{2023}, Modifier: models.ModifierIn}},
		{"projects from 2023 only", models.DateFilter{Years: []int{2023}, Modifier: models.ModifierFromOnly}},
		{"jobs in 2023 only", models.DateFilter{Years: []int{2023}, Modifier: models.ModifierInOnly}},
		{"what happened during 2022", models.DateFilter{Years: []int{2022}, Modifier: models.ModifierDuring}},
		{"work after 2023", models.DateFilter{Years: []int{2023}, Modifier: models.ModifierAfter}},
		{"work before 2022", models.DateFilter{Years: []int{2022}, Modifier: models.ModifierBefore}},
		{"projects from 2022", models.DateFilter{Years: []int{2022}, Modifier: models.ModifierFrom}},
		{"projects in '22", models.DateFilter{Years: []int{2022}, Modifier: models.ModifierIn}},
		{"2024 and 2022 projects", models.DateFilter{Years: []int{2022, 2024}}},
		{"projects over the last two years", models.DateFilter{Years: []int{2024, 2025}, Modifier: models.ModifierLastTwoYears}},
		{"what did he build last year", models.DateFilter{Years: []int{2024}, Modifier: models.ModifierLastYear}},
		{"work in the past 3 years", models.DateFilter{Years: []int{2023, 2024, 2025}, Modifier: models.ModifierPastYears}},
		{"top 10 projects", models.DateFilter{}},
		{"python projects", models.DateFilter{}},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Equal(t, tt.want, a.ExtractDateFilters(tt.question))
		})
	}
}

func TestExtractDateFilters_HugeRangeIsBounded(t *testing.T) {
	a := newTestAnalyzer()

	for _, q := range []string{"work in the past 20000000 years", "past 99999999999999999999999 years"} {
		t.Run(q, func(t *testing.T) {
			got := a.ExtractDateFilters(q)
			require.Len(t, got.Years, maxPastYears)
			assert.Equal(t, 2025, got.Years[len(got.Years)-1])
			assert.Equal(t, models.ModifierPastYears, got.Modifier)
		})
	}
}

func TestHighlights(t *testing.T) {
	assert.True(t, IsHighlights("give me a recap"))
	assert.True(t, IsHighlights("what are the highlights of his career"))
	assert.False(t, IsHighlights("python projects"))

	assert.True(t, IsSuperlative("what is his best project"))
	assert.True(t, IsSuperlative("his most impressive work"))
	assert.False(t, IsSuperlative("projects in 2023"))
}

func TestAnalyze(t *testing.T) {
	a := newTestAnalyzer()

	got := a.Analyze("Python projects from 2023")
	assert.Equal(t, "projects", got.Intent)
	assert.Equal(t, []string{"python"}, got.Technologies)
	assert.Equal(t, []int{2023}, got.Dates.Years)
	assert.Equal(t, models.ModifierFrom, got.Dates.Modifier)
	assert.True(t, got.HasFilters())
	assert.Equal(t, "python projects from 2023", got.Lowered)
}
