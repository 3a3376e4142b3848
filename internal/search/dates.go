package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

var (
	rangeSepRe = regexp.MustCompile(`\s*[–—-]\s*`)
	yearRe     = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	presentRe  = regexp.MustCompile(`(?i)^(present|current|now|today)$`)
	monthRe    = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// YearRange parses "Mon YYYY", "YYYY" or "Mon YYYY – Mon YYYY" into its
// start and end years. An open end such as "Present" resolves to
// referenceYear. ok is false when either endpoint has no year.
func YearRange(dates string, referenceYear int) (start, end int, ok bool) {
	dates = strings.TrimSpace(dates)
	if dates == "" {
		return 0, 0, false
	}
	parts := rangeSepRe.Split(dates, -1)
	switch len(parts) {
	case 1:
		y, ok := endpointYear(parts[0])
		return y, y, ok
	case 2:
		s, okStart := endpointYear(parts[0])
		if !okStart {
			return 0, 0, false
		}
		if presentRe.MatchString(strings.TrimSpace(parts[1])) {
			return s, max(s, referenceYear), true
		}
		e, okEnd := endpointYear(parts[1])
		if !okEnd || e < s {
			return 0, 0, false
		}
		return s, e, true
	}
	return 0, 0, false
}

func endpointYear(s string) (int, bool) {
	m := yearRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	return y, err == nil
}

// MatchesDate applies f to the record's dates. Records whose dates cannot be
// parsed never match.
func MatchesDate(rec models.Record, f models.DateFilter, referenceYear int) bool {
	if f.IsZero() {
		return true
	}
	start, end, ok := YearRange(rec.DateText(), referenceYear)
	if !ok {
		return false
	}
	lo, hi := f.Bounds()
	switch f.Modifier {
	case models.ModifierFromOnly:
		return f.Contains(start)
	case models.ModifierInOnly:
		return f.Contains(start) && f.Contains(end)
	case models.ModifierFrom:
		return f.Contains(start) || f.Contains(end)
	case models.ModifierAfter:
		return start > hi
	case models.ModifierBefore:
		return end < lo
	default:
		for _, y := range f.Years {
			if start <= y && y <= end {
				return true
			}
		}
		return false
	}
}

// recencyKey orders records newest first by the latest endpoint of their
// dates. Open-ended ranges are the newest; unparseable dates the oldest.
func recencyKey(rec models.Record) int {
	dates := strings.TrimSpace(rec.DateText())
	if dates == "" {
		return 0
	}
	parts := rangeSepRe.Split(dates, -1)
	last := strings.TrimSpace(parts[len(parts)-1])
	if len(parts) > 1 && presentRe.MatchString(last) {
		return math.MaxInt32
	}
	y, ok := endpointYear(last)
	if !ok {
		return 0
	}
	month := 0
	if m := monthRe.FindStringSubmatch(last); m != nil {
		month = months[strings.ToLower(m[1])]
	}
	return y*100 + month
}
