package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// QueueService coordinates the call-host waiting queue: position
// assignment, idempotent retries, and accept/decline transitions.
type QueueService struct {
	sessions     SessionStore
	participants ParticipantStore
	rooms        RoomStore
	queue        QueueStore
	notifier     Notifier
	log          *zap.Logger

	// Position assignment is read-max-then-insert over shared state; a
	// per-room mutex serializes it so concurrent requests in the same room
	// cannot take the same position.
	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

// NewQueueService creates the queue coordinator.
func NewQueueService(sessions SessionStore, participants ParticipantStore, rooms RoomStore, queue QueueStore, notifier Notifier, log *zap.Logger) *QueueService {
	return &QueueService{
		sessions:     sessions,
		participants: participants,
		rooms:        rooms,
		queue:        queue,
		notifier:     notifier,
		log:          log,
		roomLocks:    make(map[string]*sync.Mutex),
	}
}

func (s *QueueService) roomLock(roomID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lk, ok := s.roomLocks[roomID]
	if !ok {
		lk = &sync.Mutex{}
		s.roomLocks[roomID] = lk
	}
	return lk
}

// RequestIntervention places the session's participant in the room's
// waiting queue. A participant who already has a waiting entry gets that
// entry back unchanged. The room is notified with action "new" and the
// requester gets a direct status push.
func (s *QueueService) RequestIntervention(ctx context.Context, sessionID string) (*model.QueueStatus, error) {
	sess, err := s.sessions.FindActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	lk := s.roomLock(sess.RoomID)
	lk.Lock()

	existing, err := s.queue.FindWaitingByParticipant(ctx, sess.ParticipantID)
	if err != nil {
		lk.Unlock()
		return nil, err
	}
	if existing != nil {
		lk.Unlock()
		return waitingStatus(existing, fmt.Sprintf("You are already in the queue at position %d", existing.Position)), nil
	}

	// Positions only ever grow within a room, so a resolved entry's slot is
	// never handed to a later request.
	max, err := s.queue.MaxPosition(ctx, sess.RoomID)
	if err != nil {
		lk.Unlock()
		return nil, err
	}

	entry := &model.QueueEntry{
		ID:            uuid.NewString(),
		ParticipantID: sess.ParticipantID,
		RoomID:        sess.RoomID,
		Position:      max + 1,
		Status:        model.QueueStatusWaiting,
		RequestedAt:   time.Now().UTC(),
	}
	if err := s.queue.Insert(ctx, entry); err != nil {
		lk.Unlock()
		return nil, err
	}
	lk.Unlock()

	s.log.Info("queue entry created",
		zap.String("queue_id", entry.ID),
		zap.String("participant_id", entry.ParticipantID),
		zap.String("room_id", entry.RoomID),
		zap.Int("position", entry.Position))

	requestedAt := entry.RequestedAt
	s.notifier.NotifyRoom(entry.RoomID, QueueUpdateMessage{
		Type:   "queue_update",
		Action: "new",
		QueueItem: model.QueueItem{
			ID:            entry.ID,
			ParticipantID: entry.ParticipantID,
			Position:      entry.Position,
			Status:        entry.Status,
			RequestedAt:   &requestedAt,
		},
		RoomID: entry.RoomID,
	}, "")

	status := waitingStatus(entry, fmt.Sprintf("You are in the queue at position %d", entry.Position))
	s.notifier.NotifyOne(RoleParticipant, sessionID, QueueStatusMessage{Type: "queue_status", Status: *status})

	return status, nil
}

// Status reports the session's earliest waiting entry. It never fails:
// missing sessions and empty queues both come back as a "none" payload,
// since status polling is the non-authoritative fallback to push delivery.
func (s *QueueService) Status(ctx context.Context, sessionID string) *model.QueueStatus {
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return noneStatus("Session not found")
	}
	entry, err := s.queue.FindWaitingByParticipant(ctx, sess.ParticipantID)
	if err != nil {
		s.log.Error("queue status lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		// "error" rather than "none" so pollers can tell an outage apart
		// from an empty queue.
		return errorStatus("Failed to get queue status")
	}
	if entry == nil {
		return noneStatus("Not in queue")
	}
	return waitingStatus(entry, fmt.Sprintf("You are in the queue at position %d", entry.Position))
}

// Accept transitions a waiting entry to accepted and notifies the room and
// the participant. Only the room's owning host may accept.
func (s *QueueService) Accept(ctx context.Context, queueID, hostID string) (*model.QueueActionResult, error) {
	entry, err := s.authorizedEntry(ctx, queueID, hostID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.queue.UpdateStatus(ctx, queueID, model.QueueStatusAccepted, &now); err != nil {
		return nil, err
	}

	s.notifier.NotifyRoom(entry.RoomID, QueueUpdateMessage{
		Type:   "queue_update",
		Action: "accepted",
		QueueItem: model.QueueItem{
			ID:            queueID,
			ParticipantID: entry.ParticipantID,
			Status:        model.QueueStatusAccepted,
		},
		RoomID: entry.RoomID,
	}, "")

	sessionID := s.notifyParticipant(ctx, entry.ParticipantID, queueID, model.QueueStatusAccepted)
	if sessionID != nil {
		// Best effort: the participant may not have a live channel.
		if !s.notifier.NotifyOne(RoleParticipant, *sessionID,
			NewInterventionMessage("Host has accepted your request. How can I help you?", "system")) {
			s.log.Warn("could not deliver intervention message", zap.String("session_id", *sessionID))
		}
	}

	s.log.Info("queue request accepted",
		zap.String("queue_id", queueID),
		zap.String("host_id", hostID))

	return &model.QueueActionResult{
		Message:       "Request accepted",
		QueueID:       queueID,
		Status:        model.QueueStatusAccepted,
		ParticipantID: entry.ParticipantID,
		SessionID:     sessionID,
	}, nil
}

// Decline transitions a waiting entry to declined and notifies the room
// and the participant. Only the room's owning host may decline.
func (s *QueueService) Decline(ctx context.Context, queueID, hostID string) (*model.QueueActionResult, error) {
	entry, err := s.authorizedEntry(ctx, queueID, hostID)
	if err != nil {
		return nil, err
	}

	if err := s.queue.UpdateStatus(ctx, queueID, model.QueueStatusDeclined, nil); err != nil {
		return nil, err
	}

	s.notifier.NotifyRoom(entry.RoomID, QueueUpdateMessage{
		Type:   "queue_update",
		Action: "declined",
		QueueItem: model.QueueItem{
			ID:            queueID,
			ParticipantID: entry.ParticipantID,
			Status:        model.QueueStatusDeclined,
		},
		RoomID: entry.RoomID,
	}, "")

	s.notifyParticipant(ctx, entry.ParticipantID, queueID, model.QueueStatusDeclined)

	s.log.Info("queue request declined",
		zap.String("queue_id", queueID),
		zap.String("host_id", hostID))

	return &model.QueueActionResult{
		Message: "Request declined",
		QueueID: queueID,
		Status:  model.QueueStatusDeclined,
	}, nil
}

// Item returns the host view of one queue entry, with ownership check.
func (s *QueueService) Item(ctx context.Context, queueID, hostID string) (*model.QueueItemDetail, error) {
	entry, err := s.queue.Find(ctx, queueID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.Find(ctx, entry.RoomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != hostID {
		return nil, errs.ErrForbidden
	}
	detail := &model.QueueItemDetail{
		ID:            entry.ID,
		ParticipantID: entry.ParticipantID,
		RoomID:        entry.RoomID,
		RoomName:      room.Name,
		Position:      entry.Position,
		RequestedAt:   entry.RequestedAt,
		Status:        entry.Status,
	}
	part, err := s.participants.Find(ctx, entry.ParticipantID)
	if err == nil {
		detail.ParticipantName = part.Name
		detail.SessionID = part.SessionID
	} else {
		detail.ParticipantName = "Unknown"
	}
	return detail, nil
}

// RoomQueue lists a room's waiting entries in position order with
// participant names resolved. Rooms owned by other hosts are reported as
// missing, matching the room API.
func (s *QueueService) RoomQueue(ctx context.Context, roomID, hostID string) ([]model.QueueOverviewItem, error) {
	room, err := s.rooms.Find(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != hostID {
		return nil, errs.ErrRoomNotFound
	}
	entries, err := s.queue.ListWaiting(ctx, roomID)
	if err != nil {
		return nil, err
	}
	items := make([]model.QueueOverviewItem, 0, len(entries))
	for _, e := range entries {
		item := model.QueueOverviewItem{
			ID:            e.ID,
			ParticipantID: e.ParticipantID,
			RoomID:        e.RoomID,
			RoomName:      room.Name,
			Position:      e.Position,
			RequestedAt:   e.RequestedAt,
		}
		if part, err := s.participants.Find(ctx, e.ParticipantID); err == nil {
			item.ParticipantName = part.Name
		} else {
			item.ParticipantName = "Unknown"
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

// authorizedEntry loads an entry for a transition: the acting host must own
// its room and the entry must still be waiting. Accepted, declined, and
// expired are all terminal.
func (s *QueueService) authorizedEntry(ctx context.Context, queueID, hostID string) (*model.QueueEntry, error) {
	entry, err := s.queue.Find(ctx, queueID)
	if err != nil {
		return nil, err
	}
	room, err := s.rooms.Find(ctx, entry.RoomID)
	if err != nil {
		return nil, err
	}
	if room.HostID != hostID {
		return nil, errs.ErrForbidden
	}
	if entry.Status != model.QueueStatusWaiting {
		return nil, errs.ErrQueueEntryResolved
	}
	return entry, nil
}

// notifyParticipant pushes a queue_status update to the participant's
// current session channel, if one is recorded. Returns the session ID.
func (s *QueueService) notifyParticipant(ctx context.Context, participantID, queueID, status string) *string {
	part, err := s.participants.Find(ctx, participantID)
	if err != nil || part.SessionID == nil {
		return nil
	}
	s.notifier.NotifyOne(RoleParticipant, *part.SessionID, QueueStatusMessage{
		Type: "queue_status",
		Status: model.QueueStatus{
			QueueID: &queueID,
			Status:  status,
		},
	})
	return part.SessionID
}

func waitingStatus(e *model.QueueEntry, message string) *model.QueueStatus {
	id := e.ID
	pos := e.Position
	return &model.QueueStatus{
		QueueID:  &id,
		Position: &pos,
		Status:   e.Status,
		Message:  message,
	}
}

func noneStatus(message string) *model.QueueStatus {
	return &model.QueueStatus{Status: model.QueueStatusNone, Message: message}
}

func errorStatus(message string) *model.QueueStatus {
	return &model.QueueStatus{Status: model.QueueStatusError, Message: message}
}
