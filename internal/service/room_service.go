package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// RoomService manages room CRUD for hosts, including invite link issuance.
type RoomService struct {
	rooms RoomStore
	log   *zap.Logger
}

// NewRoomService creates the room service.
func NewRoomService(rooms RoomStore, log *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, log: log}
}

// Create makes a new active room with a unique invite link.
func (s *RoomService) Create(ctx context.Context, hostID string, req model.CreateRoomRequest) (*model.Room, error) {
	link, err := s.uniqueInviteLink(ctx)
	if err != nil {
		return nil, err
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	room := &model.Room{
		ID:         uuid.NewString(),
		HostID:     hostID,
		Name:       req.Name,
		Context:    req.Context,
		Tone:       tone,
		InviteLink: link,
		Active:     true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	s.log.Info("room created",
		zap.String("room_id", room.ID),
		zap.String("host_id", hostID))
	return room, nil
}

// List returns all rooms owned by the host.
func (s *RoomService) List(ctx context.Context, hostID string) ([]model.Room, error) {
	return s.rooms.ListByHost(ctx, hostID)
}

// Get returns one room, scoped to its owner.
func (s *RoomService) Get(ctx context.Context, roomID, hostID string) (*model.Room, error) {
	room, err := s.rooms.Find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != hostID {
		// The original surface hides other hosts' rooms as 404, not 403.
		return nil, errs.ErrRoomNotFound
	}
	return room, nil
}

// Update applies the non-nil fields of the patch to an owned room.
func (s *RoomService) Update(ctx context.Context, roomID, hostID string, req model.UpdateRoomRequest) (*model.Room, error) {
	room, err := s.Get(ctx, roomID, hostID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Context != nil {
		room.Context = *req.Context
	}
	if req.Tone != nil {
		room.Tone = *req.Tone
	}
	if req.Active != nil {
		room.Active = *req.Active
	}
	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Deactivate soft-deletes a room by flipping it inactive; its invite link
// stops resolving but history stays queryable.
func (s *RoomService) Deactivate(ctx context.Context, roomID, hostID string) error {
	room, err := s.Get(ctx, roomID, hostID)
	if err != nil {
		return err
	}
	room.Active = false
	return s.rooms.Update(ctx, room)
}

func (s *RoomService) uniqueInviteLink(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		link, err := generateInviteLink()
		if err != nil {
			return "", err
		}
		exists, err := s.rooms.InviteExists(ctx, link)
		if err != nil {
			return "", err
		}
		if !exists {
			return link, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique invite link")
}

// generateInviteLink returns a 16-byte url-safe random token.
func generateInviteLink() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
