package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/hyperjump/kotae/internal/models"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func sampleResult() models.QueryResult {
	return models.QueryResult{
		ResponseText: "Here are his projects:",
		ItemType:     "projects",
		Items: []models.Record{
			{
				ID:            "p-1",
				Title:         "Notes Sync Service",
				Description:   strings.Repeat("offline sync ", 30),
				Technologies:  []string{"MongoDB", "Python"},
				Date:          "May 2024",
				ContentSource: models.CategoryProjects,
			},
			{
				ID:            "e-1",
				Role:          "Data Engineer",
				Company:       "Spenza",
				Dates:         "Jan 2023 - Present",
				ContentSource: models.CategoryExperience,
			},
		},
		Metadata: models.Metadata{TotalResults: 6, ShownResults: 2},
	}
}

func TestWriteResult_JSON(t *testing.T) {
	res := sampleResult()
	var buf bytes.Buffer
	if err := WriteResult(&buf, res, OutputJSON); err != nil {
		t.Fatalf("WriteResult(json): %v", err)
	}
	var decoded models.QueryResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.ResponseText != res.ResponseText || len(decoded.Items) != 2 {
		t.Errorf("decoded %+v", decoded)
	}
	if decoded.Items[1].ContentSource != models.CategoryExperience {
		t.Errorf("content_source lost: %+v", decoded.Items[1])
	}
}

func TestWriteResult_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteResult(&buf, sampleResult(), OutputText); err != nil {
		t.Fatalf("WriteResult(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{
		"Here are his projects:",
		" 1. Notes Sync Service [projects] May 2024",
		"MongoDB, Python",
		"sync offl...",
		" 2. Data Engineer [experience] Jan 2023 - Present",
		"    Spenza",
		"Showing 2 of 6",
	} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteResult_textVariants(t *testing.T) {
	tests := []struct {
		name    string
		res     models.QueryResult
		want    string
		notWant string
	}{
		{
			name:    "no items",
			res:     models.QueryResult{ResponseText: "Hi there!", ItemType: models.ItemTypeNone},
			want:    "Hi there!\n",
			notWant: "1.",
		},
		{
			name:    "off topic",
			res:     models.QueryResult{ResponseText: "Whoa there!", ItemType: models.ItemTypeOffTopic},
			want:    "Whoa there!",
			notWant: "Showing",
		},
		{
			name: "skills list",
			res: models.QueryResult{
				ResponseText: "Skills:",
				Items: []models.Record{
					{ID: "languages", Title: "Languages", Skills: []string{"Go", "Python"}, ContentSource: models.CategorySkills},
				},
				Metadata: models.Metadata{TotalResults: 1, ShownResults: 1},
			},
			want:    "Go, Python",
			notWant: "Showing",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteResult(&buf, tt.res, OutputFormat("unknown")); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("missing %q in %q", tt.want, out)
			}
			if tt.notWant != "" && strings.Contains(out, tt.notWant) {
				t.Errorf("unexpected %q in %q", tt.notWant, out)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{" json ", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
