package service

// Subscribe adds an identifier to a room's broadcast set. Identifiers are
// opaque; hosts and participants share the same namespace here.
func (h *Hub) Subscribe(roomID, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[string]struct{})
	}
	h.rooms[roomID][id] = struct{}{}
}

// Unsubscribe removes an identifier from a room. No-op if absent.
func (h *Hub) Unsubscribe(roomID, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(subs, id)
	if len(subs) == 0 {
		delete(h.rooms, roomID)
	}
}

// SubscribersOf returns the identifiers currently subscribed to a room.
func (h *Hub) SubscribersOf(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	subs, ok := h.rooms[roomID]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(subs))
	for id := range subs {
		out = append(out, id)
	}
	return out
}
