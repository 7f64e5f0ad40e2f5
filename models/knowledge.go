package models

// KnowledgeSnippet is one curated tenant Q&A entry (the "cheat sheet"),
// consulted before the generative oracle for off-script questions.
type KnowledgeSnippet struct {
	ID       string   `bson:"id" json:"id"`
	TenantID string   `bson:"tenantId" json:"tenantId"`
	Question string   `bson:"question" json:"question"`
	Answer   string   `bson:"answer" json:"answer"`
	Category string   `bson:"category" json:"category"`
	Keywords []string `bson:"keywords" json:"keywords"`
}

// KnowledgeAnswer is the best-ranked snippet for a query. Score is a rank-like
// keyword-overlap count, not a probability; callers compare it against the
// tenant threshold.
type KnowledgeAnswer struct {
	Answer   string  `json:"answer"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}
