package resolvers

import "errors"

// Operation errors surfaced to API clients. The messages are part of the
// external contract and must stay stable.
var (
	ErrUserExists         = errors.New("user exists already")
	ErrUserNotFound       = errors.New("user not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrInvalidCredentials = errors.New("password is incorrect")
)
