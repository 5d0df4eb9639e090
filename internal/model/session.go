package model

import "time"

// JoinRequest is the request body for POST /api/participants/join.
type JoinRequest struct {
	InviteLink string `json:"invite_link" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// SessionInfo is the API view of a participant session.
type SessionInfo struct {
	SessionID       string    `json:"session_id"`
	ParticipantID   string    `json:"participant_id"`
	RoomID          string    `json:"room_id"`
	ParticipantName string    `json:"participant_name"`
	RoomName        string    `json:"room_name"`
	StartedAt       time.Time `json:"started_at"`
}

// EndSessionResponse is the response for POST /api/participants/session/:id/end.
type EndSessionResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}
