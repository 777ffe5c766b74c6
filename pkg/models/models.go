package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a stored user document
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"` // bcrypt hash, never serialized
	CreatedEvents []primitive.ObjectID `bson:"createdEvents" json:"-"`
}

// Event represents a stored event document
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Date        time.Time          `bson:"date" json:"date"`
	Creator     primitive.ObjectID `bson:"creator" json:"creator"`
}

// Booking links a user to an event they booked. Booking mutations are an
// extension point; only the store accessors exist today.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Event     primitive.ObjectID `bson:"event" json:"event"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
