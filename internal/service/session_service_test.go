package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

type sessionFixture struct {
	svc    *SessionService
	store  *memStore
	roomID string
	invite string
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	store := newMemStore()
	svc := NewSessionService(roomStore{store}, participantStore{store}, sessionStore{store}, zap.NewNop())
	f := &sessionFixture{svc: svc, store: store,
		roomID: uuid.NewString(), invite: "inv-" + uuid.NewString()}
	hostID := uuid.NewString()
	store.hosts[hostID] = &model.Host{ID: hostID, Email: "h@example.com", Name: "Host"}
	store.rooms[f.roomID] = &model.Room{ID: f.roomID, HostID: hostID, Name: "Office Hours", InviteLink: f.invite, Active: true}
	return f
}

func TestJoin_Creates_Participant_And_Session(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)

	info, err := f.svc.Join(context.Background(), f.invite, "  alice  ", false)
	req.NoError(err)

	req.Equal(f.roomID, info.RoomID)
	req.Equal("Office Hours", info.RoomName)
	req.Equal("alice", info.ParticipantName)
	req.NotEmpty(info.SessionID)
	req.NotEmpty(info.ParticipantID)

	part := f.store.participants[info.ParticipantID]
	req.NotNil(part)
	req.Equal("alice", part.Name)
	req.NotNil(part.SessionID)
	req.Equal(info.SessionID, *part.SessionID)

	sess := f.store.sessions[info.SessionID]
	req.NotNil(sess)
	req.Nil(sess.EndedAt)
}

func TestJoin_Reuses_Active_Session_For_Same_Name(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)
	ctx := context.Background()

	first, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)
	again, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)

	req.Equal(first.SessionID, again.SessionID)
	req.Equal(first.ParticipantID, again.ParticipantID)
	req.Len(f.store.sessions, 1)
}

func TestJoin_After_End_Creates_New_Session_Same_Participant(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)
	ctx := context.Background()

	first, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)
	_, err = f.svc.End(ctx, first.SessionID)
	req.NoError(err)

	second, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)

	// Same participant identity, fresh session
	req.Equal(first.ParticipantID, second.ParticipantID)
	req.NotEqual(first.SessionID, second.SessionID)
	req.Len(f.store.sessions, 2)
}

func TestJoin_Host_Is_Rejected(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)

	_, err := f.svc.Join(context.Background(), f.invite, "alice", true)
	req.ErrorIs(err, errs.ErrHostCannotJoin)
}

func TestJoin_Unknown_Invite_Is_NotFound(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)

	_, err := f.svc.Join(context.Background(), "no-such-invite", "alice", false)
	req.ErrorIs(err, errs.ErrRoomNotFound)
}

func TestJoin_Inactive_Room_Is_NotFound(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)
	f.store.rooms[f.roomID].Active = false

	_, err := f.svc.Join(context.Background(), f.invite, "alice", false)
	req.ErrorIs(err, errs.ErrRoomNotFound)
}

func TestEnd_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)
	ctx := context.Background()

	info, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)

	alreadyEnded, err := f.svc.End(ctx, info.SessionID)
	req.NoError(err)
	req.False(alreadyEnded)

	endedAt := f.store.sessions[info.SessionID].EndedAt
	req.NotNil(endedAt)
	firstStamp := *endedAt

	// Second end succeeds without touching ended_at
	alreadyEnded, err = f.svc.End(ctx, info.SessionID)
	req.NoError(err)
	req.True(alreadyEnded)
	req.Equal(firstStamp, *f.store.sessions[info.SessionID].EndedAt)

	req.Equal(model.ParticipantStatusCompleted, f.store.participants[info.ParticipantID].Status)
}

func TestEnd_Unknown_Session_Is_NotFound(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)

	_, err := f.svc.End(context.Background(), uuid.NewString())
	req.ErrorIs(err, errs.ErrSessionNotFound)
}

func TestGet_Returns_Info_For_Ended_Sessions(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)
	ctx := context.Background()

	info, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)
	_, err = f.svc.End(ctx, info.SessionID)
	req.NoError(err)

	got, err := f.svc.Get(ctx, info.SessionID)
	req.NoError(err)
	req.Equal(info.SessionID, got.SessionID)
	req.Equal("alice", got.ParticipantName)
	req.Equal("Office Hours", got.RoomName)
}

func TestActiveSession_Refuses_Ended_Sessions(t *testing.T) {
	req := require.New(t)
	f := newSessionFixture(t)
	ctx := context.Background()

	info, err := f.svc.Join(ctx, f.invite, "alice", false)
	req.NoError(err)

	sess, err := f.svc.ActiveSession(ctx, info.SessionID)
	req.NoError(err)
	req.Equal(info.SessionID, sess.ID)

	now := time.Now().UTC()
	f.store.sessions[info.SessionID].EndedAt = &now

	_, err = f.svc.ActiveSession(ctx, info.SessionID)
	req.ErrorIs(err, errs.ErrSessionNotFound)
}
