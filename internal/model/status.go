package model

// Queue entry states. Waiting entries transition to accepted or declined,
// both terminal. Expired is a valid stored state with no transition into it
// yet (reserved for a future timeout policy). None and error are never
// stored: they are status-poll payloads for "not queued" and "lookup
// failed" respectively.
const (
	QueueStatusWaiting  = "waiting"
	QueueStatusAccepted = "accepted"
	QueueStatusDeclined = "declined"
	QueueStatusExpired  = "expired"
	QueueStatusNone     = "none"
	QueueStatusError    = "error"
)

// Participant states.
const (
	ParticipantStatusActive    = "active"
	ParticipantStatusCompleted = "completed"
)
