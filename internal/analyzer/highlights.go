package analyzer

var (
	highlightsRe = compileAll(
		`\bhighlights?\b`, `\brecap\b`, `\bsummary\b`, `\boverview\b`, `key.*achievements?`,
		`main.*points`, `standout`, `best.*work`, `top.*projects`, `what.*stands? out`,
		`most.*impressive`,
	)
	superlativeRe = compileAll(
		`\bbest\b`, `most.*impressive`, `crown.*jewel`, `standout`, `favou?rite`,
		`\btop\b`, `greatest`, `coolest`, `amazing`, `remarkable`, `outstanding`, `flagship`,
	)
)

// IsHighlights reports whether lowered asks for a recap across the résumé.
func IsHighlights(lowered string) bool {
	return anyMatch(highlightsRe, lowered)
}

// IsSuperlative reports whether lowered asks for the best of something.
func IsSuperlative(lowered string) bool {
	return anyMatch(superlativeRe, lowered)
}
