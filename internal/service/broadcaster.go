package service

import (
	"encoding/json"

	"go.uber.org/zap"
)

// NotifyRoom delivers a message to every subscriber of a room except
// exclude. Each subscriber is resolved against the host table first, then
// participants (identifiers are opaque strings shared across roles).
// Failure to reach one subscriber never suppresses delivery to the rest;
// the returned count is informational only.
func (h *Hub) NotifyRoom(roomID string, msg any, exclude string) int {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("marshal room broadcast", zap.Error(err))
		return 0
	}

	// Single read lock for the whole fan-out: sends are non-blocking
	// enqueues, and holding the lock keeps delivery consistent with
	// concurrent disconnect cleanup.
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for id := range h.rooms[roomID] {
		if id == exclude {
			continue
		}
		if h.sendAnyRoleLocked(id, payload) {
			sent++
		}
	}
	h.log.Debug("room broadcast",
		zap.String("room_id", roomID),
		zap.Int("delivered", sent))
	return sent
}

// NotifyOne sends a message directly to one connection, best effort.
func (h *Hub) NotifyOne(role Role, id string, msg any) bool {
	return h.SendJSON(role, id, msg)
}

func (h *Hub) sendAnyRoleLocked(id string, payload []byte) bool {
	if _, ok := h.conns[RoleHost][id]; ok {
		return h.sendLocked(RoleHost, id, payload)
	}
	if _, ok := h.conns[RoleParticipant][id]; ok {
		return h.sendLocked(RoleParticipant, id, payload)
	}
	return false
}
