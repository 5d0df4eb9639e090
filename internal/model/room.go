package model

import "time"

// CreateRoomRequest is the request body for POST /api/rooms.
type CreateRoomRequest struct {
	Name    string `json:"name" binding:"required"`
	Context string `json:"context"`
	Tone    string `json:"tone"` // professional, strict, casual
}

// UpdateRoomRequest is the request body for PATCH /api/rooms/:id.
// Nil fields are left unchanged.
type UpdateRoomRequest struct {
	Name    *string `json:"name"`
	Context *string `json:"context"`
	Tone    *string `json:"tone"`
	Active  *bool   `json:"active"`
}

// RoomResponse is the API view of a room.
type RoomResponse struct {
	ID         string    `json:"id"`
	HostID     string    `json:"host_id"`
	Name       string    `json:"name"`
	Context    string    `json:"context"`
	Tone       string    `json:"tone"`
	InviteLink string    `json:"invite_link"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RoomView maps a room entity to its API view.
func RoomView(r *Room) RoomResponse {
	return RoomResponse{
		ID:         r.ID,
		HostID:     r.HostID,
		Name:       r.Name,
		Context:    r.Context,
		Tone:       r.Tone,
		InviteLink: r.InviteLink,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
