package entity

var stopwords = map[string]bool{
	"the": true, "his": true, "her": true, "their": true, "and": true, "for": true,
	"with": true, "about": true, "from": true, "into": true, "over": true, "some": true,
	"any": true, "all": true, "this": true, "that": true, "there": true, "those": true,
	"what": true, "which": true, "when": true, "where": true, "did": true, "does": true,
	"was": true, "were": true, "are": true, "has": true, "have": true, "had": true,
	"you": true, "your": true, "him": true, "she": true, "they": true, "them": true,
	"tell": true, "more": true, "time": true, "using": true, "use": true, "used": true,
	"specifically": true, "exactly": true, "actually": true, "meant": true, "mean": true,
	"please": true, "like": true, "other": true, "most": true, "recent": true, "latest": true,
	"last": true, "past": true, "year": true, "years": true, "only": true, "during": true,
	"after": true, "before": true, "since": true, "general": true, "there's": true,
	"yourself": true, "himself": true, "herself": true, "yourselves": true,
}

// categoryWords name kinds of content rather than a particular one.
var categoryWords = map[string]bool{
	"work": true, "worked": true, "working": true, "experience": true, "experiences": true,
	"project": true, "projects": true, "company": true, "companies": true, "job": true,
	"jobs": true, "role": true, "roles": true, "position": true, "internship": true,
	"internships": true, "skill": true, "skills": true, "education": true, "degree": true,
	"publication": true, "publications": true, "paper": true, "papers": true, "research": true,
	"blog": true, "blogs": true, "post": true, "posts": true, "article": true, "articles": true,
	"career": true, "background": true, "portfolio": true, "highlights": true, "technology": true,
	"technologies": true, "tools": true, "languages": true, "frameworks": true,
}
