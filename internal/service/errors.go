package service

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrOrganizerNotFound = errors.New("organizer not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrTagNotFound       = errors.New("one or more tags not found")

	ErrRoomUnavailable = errors.New("room is not available in the requested time window")
	ErrEventFull       = errors.New("event has reached its maximum number of participants")
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this event")

	ErrEmailTaken    = errors.New("email is already registered")
	ErrRoomNameTaken = errors.New("room name is already taken")
	ErrTagNameTaken  = errors.New("tag name is already taken")
	ErrRoomInUse     = errors.New("room has events scheduled in it")
)

// ValidationError reports malformed input. It is always raised before any
// directory lookup or persistence access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
