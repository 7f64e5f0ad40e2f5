package bookingRepo

import (
	"context"
	"errors"
	"time"

	"frontdesk/config"
	"frontdesk/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func databaseName() string {
	if config.AppConfig.DatabaseName != "" {
		return config.AppConfig.DatabaseName
	}
	return "frontdesk"
}

// Create writes a booking record, filling in missing identifiers. The write
// is keyed on the case id so a retried finalization never duplicates the
// booking.
func (r *mongoBookingRepo) Create(ctx context.Context, record models.BookingRecord) (string, string, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CaseID == "" {
		return "", "", errors.New("booking record missing case id")
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	filter := bson.M{"tenantId": record.TenantID, "caseId": record.CaseID}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, filter, record, opts); err != nil {
		return "", "", err
	}
	return record.CaseID, record.ID, nil
}

// GetByCaseID returns a tenant's booking by its case number.
func (r *mongoBookingRepo) GetByCaseID(ctx context.Context, tenantID, caseID string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"tenantId": tenantID, "caseId": caseID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetBySessionID returns the booking created from a given session, if any.
func (r *mongoBookingRepo) GetBySessionID(ctx context.Context, sessionID string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByTenant fetches the most recent bookings for a tenant.
func (r *mongoBookingRepo) ListByTenant(ctx context.Context, tenantID string, limit int64) ([]models.BookingRecord, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
