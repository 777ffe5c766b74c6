package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbook/pkg/models"
)

// MemoryStore is an in-memory Store implementation used by tests. It
// honors the same contracts as the Mongo store (sentinel errors, unique
// email, per-document updates) so resolver tests run against real store
// semantics without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	users    []models.User
	events   []models.Event
	bookings []models.Booking
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Users() UserStore       { return (*memoryUsers)(s) }
func (s *MemoryStore) Events() EventStore     { return (*memoryEvents)(s) }
func (s *MemoryStore) Bookings() BookingStore { return (*memoryBookings)(s) }

// UserCount reports the number of stored users.
func (s *MemoryStore) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// EventCount reports the number of stored events.
func (s *MemoryStore) EventCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func copyUser(u models.User) models.User {
	u.CreatedEvents = append([]primitive.ObjectID{}, u.CreatedEvents...)
	return u
}

type memoryUsers MemoryStore

func (s *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			u := copyUser(u)
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := copyUser(u)
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUsers) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedEvents == nil {
		user.CreatedEvents = []primitive.ObjectID{}
	}
	s.users = append(s.users, copyUser(*user))
	return user.ID, nil
}

func (s *memoryUsers) AppendCreatedEvent(_ context.Context, userID, eventID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users[i].CreatedEvents = append(s.users[i].CreatedEvents, eventID)
			return nil
		}
	}
	return ErrNotFound
}

type memoryEvents MemoryStore

func (s *memoryEvents) FindByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryEvents) FindAll(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event{}, s.events...), nil
}

func (s *memoryEvents) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	events := []models.Event{}
	for _, e := range s.events {
		if wanted[e.ID] {
			events = append(events, e)
		}
	}
	return events, nil
}

func (s *memoryEvents) Insert(_ context.Context, event *models.Event) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	s.events = append(s.events, *event)
	return event.ID, nil
}

type memoryBookings MemoryStore

func (s *memoryBookings) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryBookings) FindAll(_ context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Booking{}, s.bookings...), nil
}

func (s *memoryBookings) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bookings := []models.Booking{}
	for _, b := range s.bookings {
		if b.User == userID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *memoryBookings) Insert(_ context.Context, booking *models.Booking) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	s.bookings = append(s.bookings, *booking)
	return booking.ID, nil
}

func (s *memoryBookings) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
