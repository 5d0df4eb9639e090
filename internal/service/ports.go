package service

import (
	"context"
	"time"

	"github.com/iamavinashmourya/SIA/internal/model"
)

// Store interfaces consumed by the coordination core. Implementations live
// in internal/storage. Find-by-primary-key methods return the matching
// sentinel from internal/errs when the record is absent; query-style
// methods (FindWaitingByParticipant, FindByRoomAndName) return (nil, nil)
// when nothing matches.

// HostStore persists host accounts.
type HostStore interface {
	Find(ctx context.Context, id string) (*model.Host, error)
	FindByEmail(ctx context.Context, email string) (*model.Host, error)
	Create(ctx context.Context, h *model.Host) error
}

// RoomStore persists rooms.
type RoomStore interface {
	Find(ctx context.Context, id string) (*model.Room, error)
	FindByInvite(ctx context.Context, inviteLink string) (*model.Room, error) // active rooms only
	InviteExists(ctx context.Context, inviteLink string) (bool, error)
	ListByHost(ctx context.Context, hostID string) ([]model.Room, error)
	ListActiveByHost(ctx context.Context, hostID string) ([]model.Room, error)
	Create(ctx context.Context, r *model.Room) error
	Update(ctx context.Context, r *model.Room) error
}

// ParticipantStore persists participants.
type ParticipantStore interface {
	Find(ctx context.Context, id string) (*model.Participant, error)
	FindByRoomAndName(ctx context.Context, roomID, name string) (*model.Participant, error)
	Create(ctx context.Context, p *model.Participant) error
	SetSession(ctx context.Context, id, sessionID string) error
	SetStatus(ctx context.Context, id, status string) error
	CountByRooms(ctx context.Context, roomIDs []string) (int64, error)
}

// SessionStore persists participant sessions.
type SessionStore interface {
	Find(ctx context.Context, id string) (*model.Session, error)
	FindActive(ctx context.Context, id string) (*model.Session, error) // ended_at null
	Create(ctx context.Context, s *model.Session) error
	End(ctx context.Context, id string, at time.Time) error
	CountActiveByRooms(ctx context.Context, roomIDs []string) (int64, error)
}

// QueueStore persists queue entries.
type QueueStore interface {
	Find(ctx context.Context, id string) (*model.QueueEntry, error)
	ListWaiting(ctx context.Context, roomID string) ([]model.QueueEntry, error)
	ListWaitingByRooms(ctx context.Context, roomIDs []string) ([]model.QueueEntry, error)
	// FindWaitingByParticipant returns the participant's earliest waiting
	// entry by requested_at, or nil.
	FindWaitingByParticipant(ctx context.Context, participantID string) (*model.QueueEntry, error)
	// MaxPosition is the highest position ever assigned in the room, across
	// all statuses; 0 for an empty queue.
	MaxPosition(ctx context.Context, roomID string) (int, error)
	Insert(ctx context.Context, e *model.QueueEntry) error
	UpdateStatus(ctx context.Context, id, status string, acceptedAt *time.Time) error
}

// Notifier is the realtime delivery surface the coordinators push through.
// Implemented by Hub; swappable in tests.
type Notifier interface {
	NotifyRoom(roomID string, msg any, exclude string) int
	NotifyOne(role Role, id string, msg any) bool
}
