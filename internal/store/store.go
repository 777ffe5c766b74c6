// Package store provides typed accessors over the persisted collections
// (users, events, bookings). It holds no business logic; resolvers own
// the invariants.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbook/pkg/models"
)

var (
	// ErrNotFound is returned when a document referenced by id or
	// natural key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when inserting a user whose email
	// is already taken.
	ErrDuplicateEmail = errors.New("email already taken")
)

// UserStore provides access to the users collection.
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	// AppendCreatedEvent appends an event reference to the user's
	// createdEvents list. Single-document update; atomic per document.
	AppendCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error
}

// EventStore provides access to the events collection.
type EventStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	// FindByIDs returns the events whose ids are in the given set.
	// No order guarantee.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error)
	Insert(ctx context.Context, event *models.Event) (primitive.ObjectID, error)
}

// BookingStore provides access to the bookings collection. Booking
// business resolvers are an extension point; the accessors exist so the
// schema can grow without store changes.
type BookingStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error)
	Insert(ctx context.Context, booking *models.Booking) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store aggregates the per-collection accessors. Constructed once at
// process start and injected into every resolver.
type Store interface {
	Users() UserStore
	Events() EventStore
	Bookings() BookingStore
}
