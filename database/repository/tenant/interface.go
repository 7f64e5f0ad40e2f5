package tenantRepo

import (
	"context"

	"frontdesk/config"
	"frontdesk/database"
	"frontdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// TenantRepository loads and updates tenant accounts and their slot
// configuration sources.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*models.Tenant, error)
	UpdateSlotConfig(ctx context.Context, id string, slots []models.SlotDefinition) error
}

type mongoTenantRepo struct {
	coll *mongo.Collection
}

// NewMongoTenantRepo returns a TenantRepository backed by MongoDB.
func NewMongoTenantRepo() TenantRepository {
	name := config.AppConfig.DatabaseName
	if name == "" {
		name = "frontdesk"
	}
	db := database.MongoClient.Database(name)
	return &mongoTenantRepo{coll: db.Collection("tenants")}
}
