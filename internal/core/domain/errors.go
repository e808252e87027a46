package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrPostNotFound      = errors.New("post not found")
	ErrCommentNotFound   = errors.New("comment not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrTrainingNotFound  = errors.New("training not found")
	ErrCompanyNotFound   = errors.New("company not found")
	ErrExtensionNotFound = errors.New("extension not found")
	ErrShortcutNotFound  = errors.New("shortcut not found")

	// ErrInvalidSchedule is returned when a scheduled post has no date or a
	// date that is not strictly in the future.
	ErrInvalidSchedule = errors.New("invalid publication schedule")
	ErrInvalidAudience = errors.New("invalid audience target")
	ErrInvalidInput    = errors.New("invalid input")

	// ErrRequestInProgress is returned when an Idempotency-Key is still held
	// by a request that has not finished.
	ErrRequestInProgress = errors.New("request with this idempotency key is in progress")
)
