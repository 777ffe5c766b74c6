package resolvers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbook/internal/middleware"
	"eventbook/internal/store"
	"eventbook/pkg/models"
)

// Events lists every stored event.
func (r *Resolver) Events(ctx context.Context) (payloads []*models.EventPayload, err error) {
	start := time.Now()
	defer func() { r.observe("events", start, err) }()

	events, err := r.Store.Events().FindAll(ctx)
	if err != nil {
		r.Logger.WithError(err).Error("Failed to list events")
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	payloads = make([]*models.EventPayload, 0, len(events))
	for i := range events {
		payloads = append(payloads, transformEvent(&events[i]))
	}
	return payloads, nil
}

// CreateEvent stores a new event owned by the authenticated caller and
// records it on the creator's profile. Authentication is checked before
// anything is written.
//
// TODO: run the event insert and the creator update in a transaction so a
// failed update cannot leave an event without a creator reference.
func (r *Resolver) CreateEvent(ctx context.Context, input models.EventInput) (payload *models.EventPayload, err error) {
	start := time.Now()
	defer func() { r.observe("createEvent", start, err) }()

	identity, err := middleware.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	creatorID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		r.Logger.WithError(err).WithField("user_id", identity.UserID).Error("Malformed user id in token")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Date:        date,
		Creator:     creatorID,
	}
	if _, err = r.Store.Events().Insert(ctx, event); err != nil {
		r.Logger.WithError(err).Error("Failed to insert event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	creator, err := r.Store.Users().FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = ErrUserNotFound
			return nil, err
		}
		r.Logger.WithError(err).WithField("user_id", identity.UserID).Error("Failed to look up creator")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err = r.Store.Users().AppendCreatedEvent(ctx, creator.ID, event.ID); err != nil {
		r.Logger.WithError(err).WithField("user_id", identity.UserID).Error("Failed to record created event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return transformEvent(event), nil
}

// EventCreator resolves the creator of an event. The user is fetched on
// every call so the result always reflects the current store state.
func (r *Resolver) EventCreator(ctx context.Context, creatorID primitive.ObjectID) (payload *models.UserPayload, err error) {
	start := time.Now()
	defer func() { r.observe("eventCreator", start, err) }()

	user, err := r.Store.Users().FindByID(ctx, creatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = ErrUserNotFound
			return nil, err
		}
		r.Logger.WithError(err).WithField("user_id", creatorID.Hex()).Error("Failed to resolve creator")
		return nil, fmt.Errorf("failed to resolve creator: %w", err)
	}
	return transformUser(user), nil
}

// UserCreatedEvents resolves the events a user has created.
func (r *Resolver) UserCreatedEvents(ctx context.Context, eventIDs []primitive.ObjectID) (payloads []*models.EventPayload, err error) {
	start := time.Now()
	defer func() { r.observe("userCreatedEvents", start, err) }()

	events, err := r.Store.Events().FindByIDs(ctx, eventIDs)
	if err != nil {
		r.Logger.WithError(err).Error("Failed to resolve created events")
		return nil, fmt.Errorf("failed to resolve created events: %w", err)
	}

	payloads = make([]*models.EventPayload, 0, len(events))
	for i := range events {
		payloads = append(payloads, transformEvent(&events[i]))
	}
	return payloads, nil
}
