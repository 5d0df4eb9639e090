package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

func newRoomService(t *testing.T) (*RoomService, *memStore) {
	t.Helper()
	store := newMemStore()
	return NewRoomService(roomStore{store}, zap.NewNop()), store
}

func TestCreateRoom_Generates_Distinct_Invite_Links(t *testing.T) {
	req := require.New(t)
	svc, _ := newRoomService(t)
	hostID := uuid.NewString()
	ctx := context.Background()

	a, err := svc.Create(ctx, hostID, model.CreateRoomRequest{Name: "A"})
	req.NoError(err)
	b, err := svc.Create(ctx, hostID, model.CreateRoomRequest{Name: "B"})
	req.NoError(err)

	req.NotEmpty(a.InviteLink)
	req.NotEqual(a.InviteLink, b.InviteLink)
	req.True(a.Active)
	req.Equal("professional", a.Tone)
}

func TestGetRoom_Hides_Foreign_Rooms(t *testing.T) {
	req := require.New(t)
	svc, _ := newRoomService(t)
	ctx := context.Background()

	room, err := svc.Create(ctx, uuid.NewString(), model.CreateRoomRequest{Name: "A"})
	req.NoError(err)

	// Another host sees 404, not 403
	_, err = svc.Get(ctx, room.ID, uuid.NewString())
	req.ErrorIs(err, errs.ErrRoomNotFound)
}

func TestUpdateRoom_Patches_Only_Set_Fields(t *testing.T) {
	req := require.New(t)
	svc, _ := newRoomService(t)
	hostID := uuid.NewString()
	ctx := context.Background()

	room, err := svc.Create(ctx, hostID, model.CreateRoomRequest{Name: "A", Context: "physics"})
	req.NoError(err)

	name := "B"
	updated, err := svc.Update(ctx, room.ID, hostID, model.UpdateRoomRequest{Name: &name})
	req.NoError(err)

	req.Equal("B", updated.Name)
	req.Equal("physics", updated.Context)
	req.Equal(room.InviteLink, updated.InviteLink)
}

func TestDeactivateRoom_Stops_Invite_Resolution(t *testing.T) {
	req := require.New(t)
	svc, store := newRoomService(t)
	hostID := uuid.NewString()
	ctx := context.Background()

	room, err := svc.Create(ctx, hostID, model.CreateRoomRequest{Name: "A"})
	req.NoError(err)

	req.NoError(svc.Deactivate(ctx, room.ID, hostID))

	// The record survives but the invite link no longer resolves
	got, err := svc.Get(ctx, room.ID, hostID)
	req.NoError(err)
	req.False(got.Active)
	_, err = roomStore{store}.FindByInvite(ctx, room.InviteLink)
	req.ErrorIs(err, errs.ErrRoomNotFound)
}
