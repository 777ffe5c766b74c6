package resolvers

import (
	"fmt"
	"time"

	"eventbook/pkg/models"
)

// transformUser maps a stored user onto its API payload. The password hash
// is never carried over; the field stays nil so clients always see null.
func transformUser(u *models.User) *models.UserPayload {
	return &models.UserPayload{
		ID:              u.ID.Hex(),
		Email:           u.Email,
		Password:        nil,
		CreatedEventIDs: u.CreatedEvents,
	}
}

// transformEvent maps a stored event onto its API payload with the date
// rendered as an ISO-8601 string in UTC.
func transformEvent(e *models.Event) *models.EventPayload {
	return &models.EventPayload{
		ID:          e.ID.Hex(),
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		Date:        e.Date.UTC().Format(time.RFC3339),
		CreatorID:   e.Creator,
	}
}

// parseDate accepts RFC 3339 timestamps as well as plain dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected RFC 3339 or YYYY-MM-DD", s)
}
