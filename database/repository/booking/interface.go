package bookingRepo

import (
	"context"

	"frontdesk/database"
	"frontdesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists finalized intake bookings.
type BookingRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (caseID string, recordID string, err error)
	GetByCaseID(ctx context.Context, tenantID, caseID string) (*models.BookingRecord, error)
	GetBySessionID(ctx context.Context, sessionID string) (*models.BookingRecord, error)
	ListByTenant(ctx context.Context, tenantID string, limit int64) ([]models.BookingRecord, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(databaseName())
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}
