package tenantRepo

import (
	"context"
	"errors"

	"frontdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrTenantNotFound signals an unknown tenant id.
var ErrTenantNotFound = errors.New("tenant not found")

// GetByID fetches a tenant document.
func (r *mongoTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&tenant)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// UpdateSlotConfig replaces the tenant's current-format slot configuration.
func (r *mongoTenantRepo) UpdateSlotConfig(ctx context.Context, id string, slots []models.SlotDefinition) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"slotConfig": slots}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrTenantNotFound
	}
	return nil
}
