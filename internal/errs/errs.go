package errs

import "errors"

// Sentinel errors for mapping to HTTP codes in handlers.
var (
	ErrSessionNotFound     = errors.New("session not found or ended")
	ErrRoomNotFound        = errors.New("room not found")
	ErrHostNotFound        = errors.New("host not found")
	ErrQueueEntryNotFound  = errors.New("queue entry not found")
	ErrParticipantNotFound = errors.New("participant not found")

	ErrForbidden          = errors.New("not authorized for this resource")
	ErrHostCannotJoin     = errors.New("logged-in hosts cannot join as participants")
	ErrQueueEntryResolved = errors.New("queue entry already resolved")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
