package analyzer

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

var (
	fullYearRe  = regexp.MustCompile(`\b(20\d{2})\b`)
	shortYearRe = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:from|in|during|of|since|after|before)\s+'?(\d{2})\b`),
		regexp.MustCompile(`\s'?(\d{2})\?`),
	}
	lastTwoYearsRe = regexp.MustCompile(`\b(?:last|past)\s+(?:two|2)\s+years?\b`)
	lastYearRe     = regexp.MustCompile(`\blast\s+year\b`)
	pastYearsRe    = regexp.MustCompile(`\b(?:last|past)\s+(\d+|three|four|five|six|seven|eight|nine|ten)\s+years?\b`)

	yearToken  = `'?(?:20)?\d{2}`
	modifierRe = []struct {
		re  *regexp.Regexp
		mod models.DateModifier
	}{
		{regexp.MustCompile(`\bfrom\s+` + yearToken + `\s+only\b`), models.ModifierFromOnly},
		{regexp.MustCompile(`\bin\s+` + yearToken + `\s+only\b`), models.ModifierInOnly},
		{regexp.MustCompile(`\bduring\b`), models.ModifierDuring},
		{regexp.MustCompile(`\bafter\b`), models.ModifierAfter},
		{regexp.MustCompile(`\bbefore\b`), models.ModifierBefore},
		{regexp.MustCompile(`\bfrom\b`), models.ModifierFrom},
		{regexp.MustCompile(`\bin\b`), models.ModifierIn},
	}
)

// maxPastYears bounds "past N years" phrases.
const maxPastYears = 50

var numberWords = map[string]int{
	"three": 3, "four": 4, "five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

// ExtractDateFilters finds target years and the modifier that governs them.
// Explicit years win over relative phrases such as "last two years".
func (a *Analyzer) ExtractDateFilters(text string) models.DateFilter {
	lowered := strings.ToLower(text)

	var years []int
	for _, m := range fullYearRe.FindAllStringSubmatch(lowered, -1) {
		y, _ := strconv.Atoi(m[1])
		years = appendYear(years, y)
	}
	for _, re := range shortYearRe {
		for _, m := range re.FindAllStringSubmatch(lowered, -1) {
			n, _ := strconv.Atoi(m[1])
			if n >= 20 && n <= 30 {
				years = appendYear(years, 2000+n)
			}
		}
	}
	if len(years) > 0 {
		slices.Sort(years)
		mod := models.ModifierNone
		for _, m := range modifierRe {
			if m.re.MatchString(lowered) {
				mod = m.mod
				break
			}
		}
		return models.DateFilter{Years: years, Modifier: mod}
	}

	ref := a.referenceYear
	switch {
	case lastTwoYearsRe.MatchString(lowered):
		return models.DateFilter{Years: []int{ref - 1, ref}, Modifier: models.ModifierLastTwoYears}
	case lastYearRe.MatchString(lowered):
		return models.DateFilter{Years: []int{ref - 1}, Modifier: models.ModifierLastYear}
	}
	if m := pastYearsRe.FindStringSubmatch(lowered); m != nil {
		n, ok := numberWords[m[1]]
		if !ok {
			// Digits that overflow an int still mean "a long time".
			var err error
			if n, err = strconv.Atoi(m[1]); err != nil {
				n = maxPastYears
			}
		}
		n = min(n, maxPastYears)
		if n > 0 {
			years = make([]int, 0, n)
			for y := ref - n + 1; y <= ref; y++ {
				years = append(years, y)
			}
			return models.DateFilter{Years: years, Modifier: models.ModifierPastYears}
		}
	}
	return models.DateFilter{}
}

func appendYear(years []int, y int) []int {
	if slices.Contains(years, y) {
		return years
	}
	return append(years, y)
}
