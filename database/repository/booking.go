// database/repository/booking.go
package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"musebot/database"
	"musebot/models"
)

const (
	bookingDatabase   = "museum_db"
	bookingCollection = "bookings"
)

// BookingRepository defines the interface for completed-booking persistence.
// Records are write-once and only ever read out-of-band (support queries
// against the collection), so the interface is insert-only.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
}

// MongoBookingRepo implements BookingRepository on MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		coll: database.MongoClient.Database(bookingDatabase).Collection(bookingCollection),
	}
}

func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}
