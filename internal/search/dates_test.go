package search

import (
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func TestYearRange(t *testing.T) {
	tests := []struct {
		dates     string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{"Feb 2025", 2025, 2025, true},
		{"2018 – 2022", 2018, 2022, true},
		{"Jan 2023 - Dec 2024", 2023, 2024, true},
		{"Mar. 2024 — Jan. 2025", 2024, 2025, true},
		{"Jun 2024 – Present", 2024, 2025, true},
		{"Ongoing", 0, 0, false},
		{"", 0, 0, false},
		{"Dec 2024 – Jan 2023", 0, 0, false},
		{"Spring – Fall", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.dates, func(t *testing.T) {
			start, end, ok := YearRange(tt.dates, 2025)
			if ok != tt.wantOK || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("YearRange(%q) = %d, %d, %v, want %d, %d, %v",
					tt.dates, start, end, ok, tt.wantStart, tt.wantEnd, tt.wantOK)
			}
		})
	}
}

func TestMatchesDate(t *testing.T) {
	job := models.Record{Dates: "Jan 2023 – Dec 2024"}
	project := models.Record{Date: "Aug 2024"}
	unknown := models.Record{Dates: "Ongoing"}

	filter := func(mod models.DateModifier, years ...int) models.DateFilter {
		return models.DateFilter{Years: years, Modifier: mod}
	}

	tests := []struct {
		name string
		rec  models.Record
		f    models.DateFilter
		want bool
	}{
		{"no filter", unknown, models.DateFilter{}, true},
		{"from only start", job, filter(models.ModifierFromOnly, 2023), true},
		{"from only end", job, filter(models.ModifierFromOnly, 2024), false},
		{"in only both", job, filter(models.ModifierInOnly, 2023, 2024), true},
		{"in only start", job, filter(models.ModifierInOnly, 2023), false},
		{"from end", job, filter(models.ModifierFrom, 2024), true},
		{"after", job, filter(models.ModifierAfter, 2022), true},
		{"after same year", job, filter(models.ModifierAfter, 2023), false},
		{"before", job, filter(models.ModifierBefore, 2025), true},
		{"before same year", job, filter(models.ModifierBefore, 2024), false},
		{"in overlap", job, filter(models.ModifierIn, 2024), true},
		{"in miss", job, filter(models.ModifierIn, 2022), false},
		{"default overlap", job, filter(models.ModifierNone, 2021, 2023), true},
		{"single date after", project, filter(models.ModifierAfter, 2023), true},
		{"single date in", project, filter(models.ModifierIn, 2024), true},
		{"single date before", project, filter(models.ModifierBefore, 2024), false},
		{"unparseable", unknown, filter(models.ModifierIn, 2024), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesDate(tt.rec, tt.f, 2025); got != tt.want {
				t.Errorf("MatchesDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	items := []models.Record{
		{ID: "old", Date: "Jan 2021"},
		{ID: "open", Dates: "Jun 2024 – Present"},
		{ID: "unknown", Dates: "Ongoing"},
		{ID: "feb", Date: "Feb 2025"},
		{ID: "jun", Date: "Jun 2025"},
	}

	got := SortNewestFirst(items)

	want := []string{"open", "jun", "feb", "old", "unknown"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("SortNewestFirst()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	if items[0].ID != "old" {
		t.Error("SortNewestFirst modified its input")
	}
}
