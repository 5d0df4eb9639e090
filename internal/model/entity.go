package model

import "time"

// Host — authenticated room owner (GORM).
type Host struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	Name         string    `gorm:"size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (Host) TableName() string { return "hosts" }

// Room — meeting room owned by a host (GORM).
type Room struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HostID     string    `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"size:255;not null"`
	Context    string    `gorm:"type:text"`
	Tone       string    `gorm:"size:32;not null;default:professional"`
	InviteLink string    `gorm:"size:64;not null;uniqueIndex"`
	Active     bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Room) TableName() string { return "rooms" }

// Participant — unauthenticated attendee identified by name within a room (GORM).
// SessionID always points at the participant's most recent session.
type Participant struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomID    string    `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null;index:idx_participants_room_name"`
	SessionID *string   `gorm:"type:uuid"`
	Status    string    `gorm:"size:20;not null;default:active"` // active, completed
	JoinedAt  time.Time `gorm:"autoCreateTime"`
}

func (Participant) TableName() string { return "participants" }

// Session — one participant's continuous attendance interval (GORM).
// EndedAt is never cleared once set.
type Session struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantID string     `gorm:"type:uuid;not null;index"`
	RoomID        string     `gorm:"type:uuid;not null;index"`
	StartedAt     time.Time  `gorm:"autoCreateTime"`
	EndedAt       *time.Time `gorm:"column:ended_at"`
}

func (Session) TableName() string { return "sessions" }

// QueueEntry — a participant's pending/resolved request for host intervention (GORM).
// Positions of entries that leave the waiting state are never reassigned.
type QueueEntry struct {
	ID            string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParticipantID string     `gorm:"type:uuid;not null;index"`
	RoomID        string     `gorm:"type:uuid;not null;index"`
	Position      int        `gorm:"not null"`
	Status        string     `gorm:"size:20;not null;default:waiting"` // waiting, accepted, declined, expired
	RequestedAt   time.Time  `gorm:"autoCreateTime"`
	AcceptedAt    *time.Time `gorm:"column:accepted_at"`
}

func (QueueEntry) TableName() string { return "queue" }
