package intelligence

import (
	"context"
	"strings"

	knowledgeRepo "frontdesk/database/repository/knowledge"
	"frontdesk/models"
)

// Retriever searches the tenant's knowledge snippets for a deterministic
// answer. Search returns nil when nothing clears the score floor.
type Retriever interface {
	Search(ctx context.Context, tenantID, text string) (*models.KnowledgeAnswer, error)
}

// SnippetRetriever ranks snippets by keyword overlap against the utterance.
// The score is a raw overlap count, not a probability; tenants tune their
// floor against it directly.
type SnippetRetriever struct {
	snippets knowledgeRepo.KnowledgeRepository
	minScore float64
}

func NewSnippetRetriever(snippets knowledgeRepo.KnowledgeRepository, minScore float64) *SnippetRetriever {
	if minScore <= 0 {
		minScore = 2.0
	}
	return &SnippetRetriever{snippets: snippets, minScore: minScore}
}

func (r *SnippetRetriever) Search(ctx context.Context, tenantID, text string) (*models.KnowledgeAnswer, error) {
	all, err := r.snippets.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	terms := queryTerms(text)
	if len(terms) == 0 {
		return nil, nil
	}

	var best *models.KnowledgeAnswer
	for _, snip := range all {
		score := overlap(terms, snip)
		if score < r.minScore {
			continue
		}
		if best == nil || score > best.Score {
			best = &models.KnowledgeAnswer{
				Answer:   snip.Answer,
				Category: snip.Category,
				Score:    score,
			}
		}
	}
	return best, nil
}

func queryTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ",.!?'\"")
		if len(w) < 3 {
			continue
		}
		terms[w] = struct{}{}
	}
	return terms
}

// overlap counts query terms hitting the snippet's keywords and question,
// weighting explicit keywords double.
func overlap(terms map[string]struct{}, snip models.KnowledgeSnippet) float64 {
	score := 0.0
	for _, kw := range snip.Keywords {
		if _, ok := terms[strings.ToLower(kw)]; ok {
			score += 2
		}
	}
	for _, w := range strings.Fields(strings.ToLower(snip.Question)) {
		w = strings.Trim(w, ",.!?'\"")
		if len(w) < 3 {
			continue
		}
		if _, ok := terms[w]; ok {
			score++
		}
	}
	return score
}
