package models

// FollowupContext is the normalised view of the most recent turn that
// produced matches, whatever shape the caller serialised it in.
type FollowupContext struct {
	Items    []Record
	ItemType string
	Metadata Metadata
}

// LastContext returns the most recent turn whose result has items or a
// positive total. Turns without a structured result are skipped.
func LastContext(history []Turn) *FollowupContext {
	for i := len(history) - 1; i >= 0; i-- {
		res := history[i].Result
		if !res.HasResults() {
			continue
		}
		itemType := res.ItemType
		if itemType == "" {
			itemType = res.Metadata.ItemType
		}
		return &FollowupContext{Items: res.Items, ItemType: itemType, Metadata: res.Metadata}
	}
	return nil
}

// ShownIDs returns the ID of every item shown in any turn of history.
func ShownIDs(history []Turn) map[string]bool {
	shown := make(map[string]bool)
	for _, t := range history {
		if t.Result == nil {
			continue
		}
		for _, it := range t.Result.Items {
			if it.ID != "" {
				shown[it.ID] = true
			}
		}
	}
	return shown
}

// Unseen returns the items whose IDs are not in shown, keeping order and
// dropping duplicate IDs.
func Unseen(items []Record, shown map[string]bool) []Record {
	seen := make(map[string]bool, len(items))
	out := make([]Record, 0, len(items))
	for _, it := range items {
		if shown[it.ID] || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

// CountBySource counts items per content source.
func CountBySource(items []Record) map[Category]int {
	out := make(map[Category]int)
	for _, it := range items {
		out[it.ContentSource]++
	}
	return out
}
