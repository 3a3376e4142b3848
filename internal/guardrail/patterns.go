package guardrail

import (
	"regexp"
	"strings"
)

// resumeKeywords are matched as substrings, so "projects" also counts "project".
// Keywords of three letters or fewer must stand as whole words; "ai" is not
// counted inside "explain".
var resumeKeywords = []string{
	"experience", "work", "job", "career", "background", "professional",
	"worked", "working", "employed", "employment", "role", "position",
	"company", "companies", "organization", "employer", "startup",
	"project", "projects", "built", "created", "developed", "made",
	"code", "coding", "programming", "software", "tech", "technology",
	"python", "javascript", "react", "fastapi", "ai", "machine learning",
	"ml", "data", "web", "app", "application", "system", "platform",
	"education", "study", "studied", "degree", "university", "college",
	"school", "research", "paper", "publication", "published", "phd",
	"master", "bachelor", "graduate", "academic",
	"skill", "skills", "expertise", "knowledge", "proficient", "experienced",
	"specialize", "focus",
	"portfolio", "resume", "cv", "bio", "biography", "profile",
	"achievement", "accomplishment", "highlight", "highlights",
	"blog", "article", "post", "writing",
	"recent", "latest", "current", "past", "2023", "2024", "2025",
	"more", "detail", "expand",
}

// shortKeywordLen is the longest keyword matched only as a whole word.
const shortKeywordLen = 3

var shortKeywordPatterns = func() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp)
	for _, k := range resumeKeywords {
		if len(k) <= shortKeywordLen {
			out[k] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
		}
	}
	return out
}()

var resumeIntentPatterns = compileAll(
	`\b(your|his|he|she)\b.*\b(work|worked|working|job|career|experience|background|professional)\b`,
	`\b(your|his|he|she)\b.*\b(project|projects|built|created|developed|made|code|programming)\b`,
	`\b(your|his|he|she)\b.*\b(skill|skills|expertise|knowledge|proficient|experienced)\b`,
	`\b(your|his|he|she)\b.*\b(education|study|studied|degree|university|college|school)\b`,
	`\b(your|his|he|she)\b.*\b(research|paper|publication|published|phd|master|bachelor)\b`,
	`\bwhat\b.*\b(experience|work|projects?|skills?|education|research)\b.*\b(do|have|did)\b`,
	`\btell\b.*\babout\b.*\b(work|experience|projects?|skills?|education|research)\b`,
	`\bshow\b.*\b(work|experience|projects?|skills?|education|research)\b`,
)

// maliciousPatterns need an SQL-like or secret-seeking shape; plain words
// such as "select" or "show" alone are ordinary questions.
var maliciousPatterns = compileAll(
	`\bdrop\s+(table|database)\b`,
	`\bselect\s+(\*|[a-z_][a-z0-9_,\s]*)\s+from\s+[a-z_][a-z0-9_]*\s*(;|--|\bwhere\b)`,
	`\binsert\s+into\b`,
	`\bupdate\s+[a-z_][a-z0-9_]*\s+set\b`,
	`\bdelete\s+from\b`,
	`\bunion\s+select\b`,
	`'\s*or\s+'?1'?\s*=\s*'?1`,
	`<\s*script\b`,
	`\bscript\b.*\balert\b`,
	`\b(forget|ignore|disregard)\b.*\b(instructions?|prompts?|rules)\b`,
	`\b(reveal|show|print|dump|leak)\b.*\b(source code|api key|secret key|system prompt|your code|your instructions)\b`,
	`\bapi\s+keys?\b`,
	`\bsource\s+code\b`,
	`\bhack(s|ed|ing|er)?\b`,
	`\bexplosives?\b`,
	`\bbombs?\b`,
	`\bweapons?\b`,
	`\billegal\b`,
	`\bcrimes?\b`,
	`\bdrugs?\b`,
	`\bbypass\s+security\b`,
	`\bsecurity\s+bypass\b`,
)

// wordSet matches any of its phrases as whole words so "age" does not fire
// inside "language".
type wordSet struct {
	re *regexp.Regexp
}

func newWordSet(words ...string) wordSet {
	alts := make([]string, len(words))
	for i, w := range words {
		alts[i] = regexp.QuoteMeta(w)
	}
	return wordSet{re: regexp.MustCompile(`\b(?:` + strings.Join(alts, "|") + `)\b`)}
}

func (w wordSet) matches(s string) bool {
	return w.re.MatchString(s)
}

var (
	philosophical = newWordSet(
		"meaning of life", "purpose of life", "why are we here", "universe",
		"god", "religion", "philosophy", "existential", "soul",
		"afterlife", "heaven", "hell", "karma", "fate", "destiny",
	)
	personal = newWordSet(
		"favorite color", "favourite color", "favorite food", "favourite food", "hobby", "hobbies",
		"pet", "pets", "animal", "animals", "music", "movie", "movies", "film", "book", "books",
		"sport", "sports", "vacation", "travel", "weather",
		"joke", "jokes", "funny", "laugh", "marry", "married", "relationship", "girlfriend", "boyfriend",
		"family", "parents", "kids", "age", "how old",
		"birthday", "zodiac", "horoscope",
	)
	academic = newWordSet(
		"math homework", "homework", "calculus", "algebra", "geometry",
		"physics problem", "chemistry", "photosynthesis", "respiration",
		"history of", "geography", "literature", "poetry", "grammar",
		"foreign language",
	)
	cooking = newWordSet(
		"recipe", "recipes", "cook", "cooking", "bake", "baking", "cake", "pie", "bread",
		"meal", "dinner", "lunch", "breakfast", "ingredient", "ingredients",
	)
	generalKnowledge = newWordSet(
		"capital", "country", "continent", "ocean", "mountain", "river",
		"population", "timezone", "currency", "flag",
		"election", "president", "government", "politics", "political", "vote",
		"democrat", "republican", "campaign", "candidate", "ballot",
		"gravity", "atom", "molecule", "periodic table", "solar system",
		"planet", "galaxy", "evolution", "dna",
		"equation", "theorem", "integral", "derivative", "trigonometry",
		"temperature", "forecast", "rain", "snow", "sunny", "cloudy",
	)
	technology = newWordSet(
		"machine learning", "ai", "artificial intelligence", "python", "javascript",
		"react", "fastapi", "tensorflow", "pytorch", "computer vision", "deep learning",
		"neural network", "neural networks", "cnn", "llm", "llms", "data science", "blockchain",
		"web development", "mobile app", "database", "databases", "api", "apis", "cloud",
		"aws", "docker", "kubernetes", "rag", "eeg", "robotics", "nlp",
	)
)

var questionPrefixes = []string{
	"what is", "what's the", "who is", "who was", "when did", "when was", "where is",
	"why does", "why is", "how does", "how much", "how many", "how far", "how old",
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}
