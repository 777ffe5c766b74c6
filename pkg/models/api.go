package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserPayload is the API shape of a User. Password is carried as a
// pointer so it serializes as an explicit null and is never populated.
// CreatedEventIDs is the raw relation source consumed by the lazy
// createdEvents field resolver; it is not serialized itself.
type UserPayload struct {
	ID              string               `json:"id"`
	Email           string               `json:"email"`
	Password        *string              `json:"password"`
	CreatedEventIDs []primitive.ObjectID `json:"-"`
}

// EventPayload is the API shape of an Event. Date is already normalized
// to an RFC 3339 string. CreatorID is the raw relation source consumed
// by the lazy creator field resolver.
type EventPayload struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Date        string             `json:"date"`
	CreatorID   primitive.ObjectID `json:"-"`
}

// AuthPayload is returned by the login mutation.
type AuthPayload struct {
	UserID          string `json:"userId"`
	Token           string `json:"token"`
	TokenExpiration int    `json:"tokenExpiration"` // hours
}

// EventInput carries the createEvent mutation arguments.
type EventInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Date        string  `json:"date"`
}
