// Package cli renders query results for the kotae command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable, coloured when the terminal allows it.
	OutputText OutputFormat = "text"
	// OutputJSON is the result as indented JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const descriptionLimit = 160

var (
	answerColor  = color.New(color.FgCyan, color.Bold)
	headingColor = color.New(color.Bold)
	sourceColor  = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
	warnColor    = color.New(color.FgMagenta)
)

// ParseFormat returns the format named s.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteResult writes res to w in the given format. Unknown formats render as text.
func WriteResult(w io.Writer, res models.QueryResult, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	writeText(w, res)
	return nil
}

func writeText(w io.Writer, res models.QueryResult) {
	if res.ItemType == models.ItemTypeOffTopic {
		warnColor.Fprintln(w, res.ResponseText)
		return
	}
	answerColor.Fprintln(w, res.ResponseText)
	if len(res.Items) == 0 {
		return
	}
	fmt.Fprintln(w)
	for i, it := range res.Items {
		writeItem(w, i+1, it)
	}
	md := res.Metadata
	if md.TotalResults > md.ShownResults && md.ShownResults > 0 {
		dimColor.Fprintf(w, "Showing %d of %d. Ask \"show me more\" to continue.\n", md.ShownResults, md.TotalResults)
	}
}

func writeItem(w io.Writer, n int, it models.Record) {
	fmt.Fprintf(w, "%2d. %s %s", n, headingColor.Sprint(it.Heading()), sourceColor.Sprintf("[%s]", it.ContentSource))
	if d := it.DateText(); d != "" {
		fmt.Fprintf(w, " %s", dimColor.Sprint(d))
	}
	fmt.Fprintln(w)
	if org := organisation(it); org != "" {
		fmt.Fprintf(w, "    %s\n", org)
	}
	tags := it.Tags()
	if it.ContentSource == models.CategorySkills {
		tags = it.Skills
	}
	if len(tags) > 0 {
		fmt.Fprintf(w, "    %s\n", dimColor.Sprint(strings.Join(tags, ", ")))
	}
	if it.Description != "" {
		fmt.Fprintf(w, "    %s\n", utils.Truncate(it.Description, descriptionLimit))
	}
}

// organisation names where the item happened when the heading does not.
func organisation(it models.Record) string {
	heading := it.Heading()
	for _, s := range []string{it.Company, it.University, it.Journal} {
		if s != "" && s != heading {
			return s
		}
	}
	return ""
}
