package resolvers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbook/internal/store"
	"eventbook/pkg/auth"
	"eventbook/pkg/models"
)

// CreateUser registers a new account. The email is checked before any write
// so a duplicate registration never stores a second document.
func (r *Resolver) CreateUser(ctx context.Context, email, password string) (payload *models.UserPayload, err error) {
	start := time.Now()
	defer func() { r.observe("createUser", start, err) }()

	_, err = r.Store.Users().FindByEmail(ctx, email)
	if err == nil {
		err = ErrUserExists
		return nil, err
	}
	if !errors.Is(err, store.ErrNotFound) {
		r.Logger.WithError(err).WithField("email", email).Error("Failed to look up user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	hashed, err := auth.HashPassword(password, r.bcryptCost)
	if err != nil {
		r.Logger.WithError(err).Error("Failed to hash password")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
	}
	if _, err = r.Store.Users().Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			err = ErrUserExists
			return nil, err
		}
		r.Logger.WithError(err).WithField("email", email).Error("Failed to insert user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return transformUser(user), nil
}

// Login verifies credentials and issues a signed token.
func (r *Resolver) Login(ctx context.Context, email, password string) (payload *models.AuthPayload, err error) {
	start := time.Now()
	defer func() { r.observe("login", start, err) }()

	user, err := r.Store.Users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			err = ErrUserNotFound
			return nil, err
		}
		r.Logger.WithError(err).WithField("email", email).Error("Failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if !auth.CheckPassword(password, user.Password) {
		err = ErrInvalidCredentials
		return nil, err
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Email, r.tokenTTL, r.jwtSecret)
	if err != nil {
		r.Logger.WithError(err).Error("Failed to sign token")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	// tokenExpiration is reported in whole hours; sub-hour TTLs round up
	// so the field never understates to 0 while the token is still valid.
	hours := int((r.tokenTTL + time.Hour - 1) / time.Hour)

	return &models.AuthPayload{
		UserID:          user.ID.Hex(),
		Token:           token,
		TokenExpiration: hours,
	}, nil
}
