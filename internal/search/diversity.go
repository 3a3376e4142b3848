package search

import "github.com/hyperjump/kotae/internal/models"

// Select returns at most maxN items, spread across content sources. Groups
// are visited round-robin in order of first appearance, one item per group
// per round; the chosen items keep their input order.
func Select(items []models.Record, maxN int) []models.Record {
	if maxN <= 0 || len(items) <= maxN {
		return items
	}

	var order []models.Category
	groups := make(map[models.Category][]int)
	for i, it := range items {
		if _, ok := groups[it.ContentSource]; !ok {
			order = append(order, it.ContentSource)
		}
		groups[it.ContentSource] = append(groups[it.ContentSource], i)
	}

	chosen := make([]bool, len(items))
	n := 0
	for round := 0; n < maxN; round++ {
		progressed := false
		for _, c := range order {
			if n == maxN {
				break
			}
			if round < len(groups[c]) {
				chosen[groups[c][round]] = true
				n++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	out := make([]models.Record, 0, n)
	for i, it := range items {
		if chosen[i] {
			out = append(out, it)
		}
	}
	return out
}
