package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func drainJSON(t *testing.T, p *Peer) map[string]any {
	t.Helper()
	select {
	case payload := <-p.Send:
		var m map[string]any
		require.NoError(t, json.Unmarshal(payload, &m))
		return m
	default:
		t.Fatal("expected a queued message")
		return nil
	}
}

func TestNotifyRoom_Delivers_To_All_Subscribers(t *testing.T) {
	req := require.New(t)
	hub := newTestHub()
	roomID := uuid.NewString()
	hostID := uuid.NewString()
	sessA := uuid.NewString()
	sessB := uuid.NewString()

	host := hub.Register(RoleHost, hostID, nil)
	a := hub.Register(RoleParticipant, sessA, nil)
	b := hub.Register(RoleParticipant, sessB, nil)
	hub.Subscribe(roomID, hostID)
	hub.Subscribe(roomID, sessA)
	hub.Subscribe(roomID, sessB)

	n := hub.NotifyRoom(roomID, PongMessage{Type: "pong"}, "")

	req.Equal(3, n)
	req.Equal("pong", drainJSON(t, host)["type"])
	req.Equal("pong", drainJSON(t, a)["type"])
	req.Equal("pong", drainJSON(t, b)["type"])
}

func TestNotifyRoom_Skips_Excluded_Identifier(t *testing.T) {
	req := require.New(t)
	hub := newTestHub()
	roomID := uuid.NewString()
	sessA := uuid.NewString()
	sessB := uuid.NewString()

	a := hub.Register(RoleParticipant, sessA, nil)
	b := hub.Register(RoleParticipant, sessB, nil)
	hub.Subscribe(roomID, sessA)
	hub.Subscribe(roomID, sessB)

	n := hub.NotifyRoom(roomID, PongMessage{Type: "pong"}, sessA)

	req.Equal(1, n)
	req.Empty(a.Send)
	req.Equal("pong", drainJSON(t, b)["type"])
}

func TestNotifyRoom_Partial_Failure_Does_Not_Suppress_Others(t *testing.T) {
	req := require.New(t)
	hub := NewHub(1024, 1024, 1, 0, zap.NewNop())
	roomID := uuid.NewString()
	stuck := uuid.NewString()
	healthy := uuid.NewString()

	stuckPeer := hub.Register(RoleParticipant, stuck, nil)
	healthyPeer := hub.Register(RoleParticipant, healthy, nil)
	hub.Subscribe(roomID, stuck)
	hub.Subscribe(roomID, healthy)

	// Given one subscriber whose outbound queue is already full
	req.True(hub.SendTo(RoleParticipant, stuck, []byte("backlog")))

	// When the room is notified
	n := hub.NotifyRoom(roomID, PongMessage{Type: "pong"}, "")

	// Then the healthy subscriber still got the message
	req.Equal(1, n)
	req.Equal("pong", drainJSON(t, healthyPeer)["type"])
	req.Equal("backlog", string(<-stuckPeer.Send))
	req.Empty(stuckPeer.Send)
}

func TestNotifyRoom_Resolves_Subscribers_Across_Roles(t *testing.T) {
	req := require.New(t)
	hub := newTestHub()
	roomID := uuid.NewString()
	hostID := uuid.NewString()
	sessID := uuid.NewString()

	host := hub.Register(RoleHost, hostID, nil)
	part := hub.Register(RoleParticipant, sessID, nil)
	hub.Subscribe(roomID, hostID)
	hub.Subscribe(roomID, sessID)

	n := hub.NotifyRoom(roomID, PongMessage{Type: "pong"}, "")

	req.Equal(2, n)
	req.Len(host.Send, 1)
	req.Len(part.Send, 1)
}

func TestNotifyRoom_After_Disconnect_Excludes_Peer(t *testing.T) {
	req := require.New(t)
	hub := newTestHub()
	roomID := uuid.NewString()
	sessID := uuid.NewString()
	other := uuid.NewString()

	peer := hub.Register(RoleParticipant, sessID, nil)
	hub.Register(RoleParticipant, other, nil)
	hub.Subscribe(roomID, sessID)
	hub.Subscribe(roomID, other)

	hub.Unregister(peer)

	// The disconnected identifier is gone from the subscriber set and
	// receives nothing further.
	req.NotContains(hub.SubscribersOf(roomID), sessID)
	n := hub.NotifyRoom(roomID, PongMessage{Type: "pong"}, "")
	req.Equal(1, n)
	req.Empty(peer.Send)
}

func TestNotifyOne_Unknown_Target_Is_Best_Effort(t *testing.T) {
	req := require.New(t)
	hub := newTestHub()
	req.False(hub.NotifyOne(RoleParticipant, uuid.NewString(), PongMessage{Type: "pong"}))
}
