package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Role distinguishes the two kinds of realtime connections. A host is keyed
// by host ID, a participant by session ID.
type Role string

const (
	RoleHost        Role = "host"
	RoleParticipant Role = "participant"
)

// Peer is one live WebSocket connection for a host or participant. Outbound
// messages go through Send and are written by a single write pump, so
// per-connection order is preserved.
type Peer struct {
	Role Role
	ID   string
	Conn *websocket.Conn
	Send chan []byte

	done chan struct{}
}

// Done is closed when the peer is unregistered or replaced; the write pump
// exits on it.
func (p *Peer) Done() <-chan struct{} { return p.done }

// Hub tracks live connections and room subscriptions. Both tables live
// behind one lock so disconnect cleanup (drop the connection, leave every
// room) is atomic with respect to concurrent broadcasts.
//
// State is process-local only: it is rebuilt from live connections and lost
// on restart. Clients are expected to reconnect and re-subscribe.
type Hub struct {
	mu    sync.RWMutex
	conns map[Role]map[string]*Peer
	rooms map[string]map[string]struct{} // roomID -> identifier set

	upgrader   websocket.Upgrader
	sendBuf    int
	maxMsgSize int64
	log        *zap.Logger
}

// NewHub creates a hub with the given WebSocket buffer sizes and
// per-connection outbound queue capacity.
func NewHub(readBuf, writeBuf, sendBuf int, maxMessageSize int64, log *zap.Logger) *Hub {
	if sendBuf <= 0 {
		sendBuf = 256
	}
	return &Hub{
		conns: map[Role]map[string]*Peer{
			RoleHost:        {},
			RoleParticipant: {},
		},
		rooms:      make(map[string]map[string]struct{}),
		sendBuf:    sendBuf,
		maxMsgSize: maxMessageSize,
		log:        log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  readBuf,
			WriteBufferSize: writeBuf,
			// Allow all origins for dev; in prod set CheckOrigin.
		},
	}
}

// Upgrader returns the WebSocket upgrader for HTTP handlers.
func (h *Hub) Upgrader() *websocket.Upgrader {
	return &h.upgrader
}

// Register adds a peer keyed by (role, identifier). A reconnect under the
// same key replaces the prior peer: the old connection is abandoned (its
// done channel closes, stopping its write pump) but not closed here — its
// own read loop notices the failure and cleans up.
func (h *Hub) Register(role Role, id string, conn *websocket.Conn) *Peer {
	if conn != nil && h.maxMsgSize > 0 {
		conn.SetReadLimit(h.maxMsgSize)
	}
	p := &Peer{
		Role: role,
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, h.sendBuf),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	if old, ok := h.conns[role][id]; ok {
		close(old.done)
	}
	h.conns[role][id] = p
	h.mu.Unlock()

	h.log.Info("peer registered",
		zap.String("role", string(role)),
		zap.String("id", id))
	return p
}

// Unregister removes the peer and drops its identifier from every room it
// subscribed to, as one step. A stale peer that was already replaced by a
// reconnect does not touch its replacement's state.
func (h *Hub) Unregister(p *Peer) {
	h.mu.Lock()
	cur, ok := h.conns[p.Role][p.ID]
	if !ok || cur != p {
		h.mu.Unlock()
		return
	}
	delete(h.conns[p.Role], p.ID)
	for roomID, subs := range h.rooms {
		delete(subs, p.ID)
		if len(subs) == 0 {
			delete(h.rooms, roomID)
		}
	}
	select {
	case <-p.done:
	default:
		close(p.done)
	}
	h.mu.Unlock()

	h.log.Info("peer unregistered",
		zap.String("role", string(p.Role)),
		zap.String("id", p.ID))
}

// Lookup returns the live peer for (role, identifier), if any.
func (h *Hub) Lookup(role Role, id string) (*Peer, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.conns[role][id]
	return p, ok
}

// SendTo enqueues a payload for (role, identifier) without blocking. It
// returns false when the peer is absent or its outbound queue is full; the
// failure is logged, never raised.
func (h *Hub) SendTo(role Role, id string, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sendLocked(role, id, payload)
}

// SendJSON marshals v and sends it to (role, identifier), best effort.
func (h *Hub) SendJSON(role Role, id string, v any) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal outbound message", zap.Error(err))
		return false
	}
	return h.SendTo(role, id, payload)
}

// sendLocked enqueues on the peer's send channel. Caller holds h.mu (read
// or write). The channel is never closed, so the non-blocking send is safe
// against concurrent unregister.
func (h *Hub) sendLocked(role Role, id string, payload []byte) bool {
	p, ok := h.conns[role][id]
	if !ok {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.Send <- payload:
		return true
	default:
		h.log.Warn("send buffer full, dropping message",
			zap.String("role", string(role)),
			zap.String("id", id))
		return false
	}
}

// WritePump writes queued messages to the peer's connection with a bounded
// per-write budget. It exits when the peer is unregistered or a write
// fails; each peer gets exactly one pump, preserving message order.
func (h *Hub) WritePump(p *Peer, writeTimeout time.Duration) {
	defer func() {
		_ = p.Conn.Close()
	}()
	for {
		select {
		case payload := <-p.Send:
			_ = p.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := p.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.log.Debug("write failed",
					zap.String("role", string(p.Role)),
					zap.String("id", p.ID),
					zap.Error(err))
				return
			}
		case <-p.done:
			return
		}
	}
}
