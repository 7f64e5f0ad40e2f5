package knowledgeRepo

import (
	"context"

	"frontdesk/config"
	"frontdesk/database"
	"frontdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// KnowledgeRepository serves the tenant cheat-sheet snippets.
type KnowledgeRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]models.KnowledgeSnippet, error)
	Upsert(ctx context.Context, snippet models.KnowledgeSnippet) error
}

type mongoKnowledgeRepo struct {
	coll *mongo.Collection
}

// NewMongoKnowledgeRepo returns a KnowledgeRepository backed by MongoDB.
func NewMongoKnowledgeRepo() KnowledgeRepository {
	name := config.AppConfig.DatabaseName
	if name == "" {
		name = "frontdesk"
	}
	db := database.MongoClient.Database(name)
	return &mongoKnowledgeRepo{coll: db.Collection("knowledge_snippets")}
}
