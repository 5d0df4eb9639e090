package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/service"
)

// WSHandler serves the realtime endpoints /ws/host/:host_id and
// /ws/participant/:session_id.
type WSHandler struct {
	hub          *service.Hub
	sessions     *service.SessionService
	hosts        service.HostStore
	rooms        service.RoomStore
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewWSHandler creates the WebSocket handler.
func NewWSHandler(hub *service.Hub, sessions *service.SessionService, hosts service.HostStore, rooms service.RoomStore, writeTimeout time.Duration, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:          hub,
		sessions:     sessions,
		hosts:        hosts,
		rooms:        rooms,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// ServeHost upgrades a host connection. The channel is auto-subscribed to
// every active room the host owns.
func (h *WSHandler) ServeHost(c *gin.Context) {
	hostID := c.Param("host_id")
	if hostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "host_id required"})
		return
	}
	if _, err := h.hosts.Find(c.Request.Context(), hostID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "host not found"})
		return
	}
	rooms, err := h.rooms.ListActiveByHost(c.Request.Context(), hostID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rooms"})
		return
	}

	conn, err := h.hub.Upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	peer := h.hub.Register(service.RoleHost, hostID, conn)
	defer h.hub.Unregister(peer)

	for _, room := range rooms {
		h.hub.Subscribe(room.ID, hostID)
	}

	go h.hub.WritePump(peer, h.writeTimeout)

	h.hub.SendJSON(service.RoleHost, hostID, service.ConnectedMessage{
		Type:    "connected",
		Message: "WebSocket connected",
		HostID:  hostID,
	})

	h.readPump(peer, func(msg service.Inbound) {
		h.dispatchHost(peer, msg)
	})
}

// ServeParticipant upgrades a participant connection keyed by session ID.
// Ended or unknown sessions are refused; the channel is auto-subscribed to
// the session's room.
func (h *WSHandler) ServeParticipant(c *gin.Context) {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id required"})
		return
	}
	sess, err := h.sessions.ActiveSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or ended"})
		return
	}

	conn, err := h.hub.Upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	peer := h.hub.Register(service.RoleParticipant, sessionID, conn)
	defer h.hub.Unregister(peer)

	h.hub.Subscribe(sess.RoomID, sessionID)

	go h.hub.WritePump(peer, h.writeTimeout)

	h.hub.SendJSON(service.RoleParticipant, sessionID, service.ConnectedMessage{
		Type:      "connected",
		Message:   "WebSocket connected",
		SessionID: sessionID,
		RoomID:    sess.RoomID,
	})

	h.readPump(peer, func(msg service.Inbound) {
		h.dispatchParticipant(peer, sess.RoomID, msg)
	})
}

// readPump blocks on the connection, decoding and dispatching control
// messages until the connection drops. Malformed payloads are logged and
// dropped; the channel stays open.
func (h *WSHandler) readPump(peer *service.Peer, dispatch func(service.Inbound)) {
	for {
		_, data, err := peer.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Debug("read error",
					zap.String("role", string(peer.Role)),
					zap.String("id", peer.ID),
					zap.Error(err))
			}
			return
		}
		msg, err := service.ParseInbound(data)
		if err != nil {
			h.logger.Warn("invalid message payload",
				zap.String("role", string(peer.Role)),
				zap.String("id", peer.ID))
			continue
		}
		dispatch(msg)
	}
}

func (h *WSHandler) dispatchHost(peer *service.Peer, msg service.Inbound) {
	switch m := msg.(type) {
	case service.Ping:
		h.reply(peer, service.PongMessage{Type: "pong"})
	case service.SubscribeRoom:
		h.hub.Subscribe(m.RoomID, peer.ID)
		h.reply(peer, service.RoomAckMessage{Type: "subscribed", RoomID: m.RoomID})
	case service.UnsubscribeRoom:
		h.hub.Unsubscribe(m.RoomID, peer.ID)
		h.reply(peer, service.RoomAckMessage{Type: "unsubscribed", RoomID: m.RoomID})
	case service.WebRTCAnswer:
		h.hub.SendJSON(service.RoleParticipant, m.TargetID, service.WebRTCSignalMessage{
			Type:     "webrtc_answer",
			Answer:   m.Answer,
			TargetID: peer.ID,
		})
	case service.WebRTCICECandidate:
		h.hub.SendJSON(service.RoleParticipant, m.TargetID, service.WebRTCSignalMessage{
			Type:      "webrtc_ice_candidate",
			Candidate: m.Candidate,
			TargetID:  peer.ID,
		})
	case service.WebRTCOffer:
		// Offers only flow participant -> host.
		h.logIgnored(peer, service.Ignored{Type: "webrtc_offer"})
	case service.Ignored:
		h.logIgnored(peer, m)
	}
}

func (h *WSHandler) dispatchParticipant(peer *service.Peer, roomID string, msg service.Inbound) {
	switch m := msg.(type) {
	case service.Ping:
		h.reply(peer, service.PongMessage{Type: "pong"})
	case service.SubscribeRoom:
		h.hub.Subscribe(m.RoomID, peer.ID)
		h.reply(peer, service.RoomAckMessage{Type: "subscribed", RoomID: m.RoomID})
	case service.UnsubscribeRoom:
		h.hub.Unsubscribe(m.RoomID, peer.ID)
		h.reply(peer, service.RoomAckMessage{Type: "unsubscribed", RoomID: m.RoomID})
	case service.WebRTCOffer:
		// Resolve the room's owning host and relay the offer there. The
		// sender's session ID rides along as target_id for the answer path.
		room, err := h.rooms.Find(context.Background(), roomID)
		if err != nil {
			h.logger.Warn("offer relay failed, room lookup",
				zap.String("room_id", roomID), zap.Error(err))
			return
		}
		h.hub.SendJSON(service.RoleHost, room.HostID, service.WebRTCSignalMessage{
			Type:     "webrtc_offer",
			Offer:    m.Offer,
			TargetID: peer.ID,
		})
	case service.WebRTCAnswer:
		h.hub.SendJSON(service.RoleHost, m.TargetID, service.WebRTCSignalMessage{
			Type:     "webrtc_answer",
			Answer:   m.Answer,
			TargetID: peer.ID,
		})
	case service.WebRTCICECandidate:
		h.hub.SendJSON(service.RoleHost, m.TargetID, service.WebRTCSignalMessage{
			Type:      "webrtc_ice_candidate",
			Candidate: m.Candidate,
			TargetID:  peer.ID,
		})
	case service.Ignored:
		h.logIgnored(peer, m)
	}
}

func (h *WSHandler) reply(peer *service.Peer, msg any) {
	h.hub.SendJSON(peer.Role, peer.ID, msg)
}

func (h *WSHandler) logIgnored(peer *service.Peer, m service.Ignored) {
	h.logger.Debug("ignoring message",
		zap.String("type", m.Type),
		zap.String("role", string(peer.Role)),
		zap.String("id", peer.ID))
}
