package search

import (
	"hash/fnv"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

// mixedEpoch fixes the rotation so the same question always gets the same
// selection.
const mixedEpoch uint64 = 1735689600

var mixedPools = []models.Category{
	models.CategoryProjects,
	models.CategoryExperience,
	models.CategoryPublications,
	models.CategoryBlog,
}

// Mixed picks one record from each of the first three non-empty pools among
// projects, experience, publications and blog, plus one from the fourth
// when it exists. Picks rotate with a hash of the question.
func (e *Engine) Mixed(question string) []models.Record {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(question))))
	seed := h.Sum64() + mixedEpoch

	var out []models.Record
	for _, c := range mixedPools {
		pool := e.corpus.Records(c)
		if len(pool) == 0 {
			continue
		}
		idx := (seed + uint64(len(out))*7919) % uint64(len(pool))
		out = append(out, pool[idx])
	}
	return out
}
