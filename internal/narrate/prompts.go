package narrate

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// descriptionWords caps each candidate's description in the prompt.
const descriptionWords = 60

func systemPrompt(subject string) string {
	return fmt.Sprintf(`You are the voice of %[1]s's portfolio. Answer questions about %[1]s's work in two or three friendly sentences, speaking about %[1]s in the third person.

Use only the candidate items you are given. Never invent projects, employers, dates or technologies.
If the draft answer says nothing matched, say so plainly and suggest asking about projects, experience or skills.
If the draft answer explains that similar technologies were used instead, keep that explanation honest.

Pick the 1 to 3 candidate IDs most relevant to the question, most relevant first. Pick none when no card fits.

Respond with JSON only:
{"response": "<answer>", "ids": ["<id>", ...]}`, subject)
}

func userPrompt(question string, res models.QueryResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Draft answer: %s\n", res.ResponseText)
	if md := res.Metadata; md.FallbackSearch {
		fmt.Fprintf(&b, "Requested technologies (not found): %s\n", strings.Join(md.RequestedTechnologies, ", "))
		fmt.Fprintf(&b, "Similar technologies used instead: %s\n", strings.Join(md.SimilarTechnologiesFound, ", "))
	}
	if len(res.Items) == 0 {
		b.WriteString("Candidates: none\n")
		return b.String()
	}
	b.WriteString("Candidates:\n")
	for _, it := range res.Items {
		fmt.Fprintf(&b, "- id=%s [%s] %s", it.ID, it.ContentSource, it.Heading())
		if d := it.DateText(); d != "" {
			fmt.Fprintf(&b, " (%s)", d)
		}
		if tags := it.Tags(); len(tags) > 0 {
			fmt.Fprintf(&b, " tech: %s", strings.Join(tags, ", "))
		}
		if it.Description != "" {
			fmt.Fprintf(&b, "\n  %s", utils.TruncateWords(it.Description, descriptionWords))
		}
		b.WriteString("\n")
	}
	return b.String()
}
