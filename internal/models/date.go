package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// DateModifier selects how a year set is compared with a record's dates.
type DateModifier string

const (
	ModifierNone         DateModifier = ""
	ModifierFromOnly     DateModifier = "from_only"
	ModifierInOnly       DateModifier = "in_only"
	ModifierDuring       DateModifier = "during"
	ModifierIn           DateModifier = "in"
	ModifierFrom         DateModifier = "from"
	ModifierAfter        DateModifier = "after"
	ModifierBefore       DateModifier = "before"
	ModifierLastYear     DateModifier = "last_year"
	ModifierLastTwoYears DateModifier = "last_two_years"
	ModifierPastYears    DateModifier = "past_years"
)

// DateFilter is the set of target years and how to apply them.
type DateFilter struct {
	Years    []int        `json:"years"`
	Modifier DateModifier `json:"modifier,omitempty"`
}

// IsZero reports whether the filter has no target years.
func (f DateFilter) IsZero() bool {
	return len(f.Years) == 0
}

// Contains reports whether year is a target year.
func (f DateFilter) Contains(year int) bool {
	return slices.Contains(f.Years, year)
}

// Bounds returns the smallest and largest target year.
func (f DateFilter) Bounds() (lo, hi int) {
	if len(f.Years) == 0 {
		return 0, 0
	}
	return slices.Min(f.Years), slices.Max(f.Years)
}

// UnmarshalJSON also accepts "date_modifier" for the modifier and years
// written as strings, as older clients send them.
func (f *DateFilter) UnmarshalJSON(data []byte) error {
	var raw struct {
		Years        []json.Number `json:"years"`
		Modifier     DateModifier  `json:"modifier"`
		DateModifier DateModifier  `json:"date_modifier"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode date filter: %w", err)
	}
	*f = DateFilter{Modifier: raw.Modifier}
	if f.Modifier == ModifierNone {
		f.Modifier = raw.DateModifier
	}
	for _, y := range raw.Years {
		n, err := strconv.Atoi(y.String())
		if err != nil {
			return fmt.Errorf("decode date filter year %q: %w", y, err)
		}
		f.Years = append(f.Years, n)
	}
	return nil
}
