package model

import "time"

// DashboardStats is the response for GET /api/dashboard/stats.
type DashboardStats struct {
	TotalRooms           int64 `json:"total_rooms"`
	ActiveRooms          int64 `json:"active_rooms"`
	TotalParticipants    int64 `json:"total_participants"`
	ActiveSessions       int64 `json:"active_sessions"`
	PendingQueueRequests int64 `json:"pending_queue_requests"`
}

// QueueOverviewItem is one waiting entry in the host's dashboard queue view.
type QueueOverviewItem struct {
	ID              string    `json:"id"`
	ParticipantID   string    `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	RoomID          string    `json:"room_id"`
	RoomName        string    `json:"room_name"`
	Position        int       `json:"position"`
	RequestedAt     time.Time `json:"requested_at"`
}
