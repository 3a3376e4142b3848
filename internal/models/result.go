package models

// Item types that are not categories.
const (
	ItemTypeMixed    = "mixed"
	ItemTypeNone     = "none"
	ItemTypeOffTopic = "off_topic"
)

// Query types recorded for follow-up and entity results.
const (
	QueryTypeShowAll       = "show_all"
	QueryTypeShowMore      = "show_more"
	QueryTypeContextual    = "contextual"
	QueryTypeClarification = "clarification"
	QueryTypeEntity        = "entity"
	QueryTypeRerun         = "followup_rerun"
)

// QueryResult is the engine's answer to one question.
type QueryResult struct {
	ResponseText string   `json:"response_text"`
	Items        []Record `json:"items"`
	ItemType     string   `json:"item_type"`
	Metadata     Metadata `json:"metadata"`
}

// Metadata carries everything a caller needs to phrase the answer and to
// hand the result back as conversation history.
type Metadata struct {
	Intent        string `json:"intent,omitempty"`
	ItemType      string `json:"item_type,omitempty"`
	QueryType     string `json:"query_type,omitempty"`
	OriginalQuery string `json:"original_query"`
	ContextQuery  string `json:"context_query,omitempty"`

	TechFilters []string   `json:"tech_filters"`
	DateFilters DateFilter `json:"date_filters"`

	TotalResults int  `json:"total_results"`
	ShownResults int  `json:"shown_results"`
	NeedsCards   bool `json:"needs_cards"`
	IsFollowup   bool `json:"is_followup"`

	FallbackSearch           bool     `json:"fallback_search"`
	RequestedTechnologies    []string `json:"requested_technologies,omitempty"`
	SimilarTechnologiesFound []string `json:"similar_technologies_found,omitempty"`

	ContentTypesSearched []Category       `json:"content_types_searched,omitempty"`
	ContentTypeCounts    map[Category]int `json:"content_type_counts,omitempty"`

	EntityName      string   `json:"entity_name,omitempty"`
	IsHighlights    bool     `json:"is_highlights_query,omitempty"`
	PreviouslyShown int      `json:"previously_shown,omitempty"`
	ReferencedIDs   []string `json:"referenced_ids,omitempty"`
	NotFound        bool     `json:"not_found,omitempty"`

	GuardrailTriggered bool `json:"guardrail_triggered,omitempty"`
	OffTopic           bool `json:"off_topic,omitempty"`
}

// HasResults reports whether the result produced any matches.
func (r *QueryResult) HasResults() bool {
	return r != nil && (len(r.Items) > 0 || r.Metadata.TotalResults > 0)
}

// IDs returns the item IDs in display order.
func (r *QueryResult) IDs() []string {
	ids := make([]string, len(r.Items))
	for i, it := range r.Items {
		ids[i] = it.ID
	}
	return ids
}

// ItemTypeOf returns "none" for no items, the shared category when all
// items come from one category, and "mixed" otherwise.
func ItemTypeOf(items []Record) string {
	if len(items) == 0 {
		return ItemTypeNone
	}
	first := items[0].ContentSource
	for _, it := range items[1:] {
		if it.ContentSource != first {
			return ItemTypeMixed
		}
	}
	if first == "" {
		return ItemTypeMixed
	}
	return string(first)
}
