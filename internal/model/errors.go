package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrIdentityNotFound = errors.New("identity not found")
	ErrUsernameExists   = errors.New("username already exists")

	// Campground errors
	ErrCampgroundNotFound = errors.New("campground not found")

	// Review errors
	ErrReviewNotFound = errors.New("review not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
)
