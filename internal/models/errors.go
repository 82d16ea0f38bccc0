package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound          = errors.New("resource not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrVideoNotFound     = errors.New("video not found")

	// Uniqueness / FK Errors
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidUserRef     = errors.New("referenced user does not exist")

	// Seeding Errors
	ErrMalformedCompletion = errors.New("completion could not be parsed as JSON")
	ErrSeedRetryExhausted  = errors.New("could not generate a unique user after maximum attempts")

	// General Request/Server Errors
	ErrInvalidInput   = errors.New("invalid input data")
	ErrInternalServer = errors.New("internal server error")
)
