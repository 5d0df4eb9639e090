package model

import "time"

// CallHostRequest is the request body for POST /api/queue/call-host.
type CallHostRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// QueueStatus is the queue view returned to a participant. QueueID and
// Position are nil when the participant is not in the queue.
type QueueStatus struct {
	QueueID  *string `json:"queue_id"`
	Position *int    `json:"position"`
	Status   string  `json:"status"` // waiting, accepted, declined, expired, none, error
	Message  string  `json:"message"`
}

// QueueActionResult is the response for accept/decline actions.
type QueueActionResult struct {
	Message       string  `json:"message"`
	QueueID       string  `json:"queue_id"`
	Status        string  `json:"status"`
	ParticipantID string  `json:"participant_id,omitempty"`
	SessionID     *string `json:"session_id,omitempty"`
}

// QueueItemDetail is the host view of a single queue entry.
type QueueItemDetail struct {
	ID              string    `json:"id"`
	ParticipantID   string    `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	RoomID          string    `json:"room_id"`
	RoomName        string    `json:"room_name"`
	SessionID       *string   `json:"session_id"`
	Position        int       `json:"position"`
	RequestedAt     time.Time `json:"requested_at"`
	Status          string    `json:"status"`
}

// QueueItem is the payload embedded in queue_update broadcasts.
type QueueItem struct {
	ID            string     `json:"id"`
	ParticipantID string     `json:"participant_id"`
	Position      int        `json:"position,omitempty"`
	Status        string     `json:"status"`
	RequestedAt   *time.Time `json:"requested_at,omitempty"`
}
