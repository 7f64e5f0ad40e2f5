package knowledgeRepo

import (
	"context"

	"frontdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByTenant fetches every snippet for a tenant. Fleets are small (tens of
// entries) so ranking happens in the retriever, not the database.
func (r *mongoKnowledgeRepo) ListByTenant(ctx context.Context, tenantID string) ([]models.KnowledgeSnippet, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"tenantId": tenantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var snippets []models.KnowledgeSnippet
	if err := cursor.All(ctx, &snippets); err != nil {
		return nil, err
	}
	return snippets, nil
}

// Upsert writes a snippet, assigning an id when missing.
func (r *mongoKnowledgeRepo) Upsert(ctx context.Context, snippet models.KnowledgeSnippet) error {
	if snippet.ID == "" {
		snippet.ID = uuid.New().String()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": snippet.ID}, snippet, opts)
	return err
}
