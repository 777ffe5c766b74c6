package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"eventbook/pkg/logging"
	"eventbook/pkg/models"
)

// Config holds document store configuration
type Config struct {
	URL      string
	Database string
}

// Connect establishes a MongoDB client connection and verifies it with a
// ping. Callers are expected to treat an error as fatal at startup.
func Connect(ctx context.Context, cfg Config, logger logging.Logger) (*mongo.Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongo URL is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.WithField("database", cfg.Database).Info("Connected to MongoDB")
	return client, nil
}

// MongoStore is the MongoDB-backed Store implementation.
type MongoStore struct {
	users    *mongo.Collection
	events   *mongo.Collection
	bookings *mongo.Collection
}

// NewMongoStore creates a store over the given database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:    db.Collection("users"),
		events:   db.Collection("events"),
		bookings: db.Collection("bookings"),
	}
}

// EnsureIndexes creates the indexes the store relies on. Email is the
// unique natural key for users; the index backs the pre-write duplicate
// check against concurrent registrations.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}
	return nil
}

func (s *MongoStore) Users() UserStore       { return (*mongoUsers)(s) }
func (s *MongoStore) Events() EventStore     { return (*mongoEvents)(s) }
func (s *MongoStore) Bookings() BookingStore { return (*mongoBookings)(s) }

type mongoUsers MongoStore

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedEvents == nil {
		user.CreatedEvents = []primitive.ObjectID{}
	}
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}

func (s *mongoUsers) AppendCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	res, err := s.users.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"createdEvents": eventID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type mongoEvents MongoStore

func (s *mongoEvents) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := s.events.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (s *mongoEvents) FindAll(ctx context.Context) ([]models.Event, error) {
	cursor, err := s.events.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *mongoEvents) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	cursor, err := s.events.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *mongoEvents) Insert(ctx context.Context, event *models.Event) (primitive.ObjectID, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, err := s.events.InsertOne(ctx, event); err != nil {
		return primitive.NilObjectID, err
	}
	return event.ID, nil
}

type mongoBookings MongoStore

func (s *mongoBookings) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := s.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *mongoBookings) FindAll(ctx context.Context) ([]models.Booking, error) {
	cursor, err := s.bookings.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *mongoBookings) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	cursor, err := s.bookings.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *mongoBookings) Insert(ctx context.Context, booking *models.Booking) (primitive.ObjectID, error) {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	if _, err := s.bookings.InsertOne(ctx, booking); err != nil {
		return primitive.NilObjectID, err
	}
	return booking.ID, nil
}

func (s *mongoBookings) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.bookings.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
