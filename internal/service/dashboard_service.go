package service

import (
	"context"
	"sort"

	"github.com/iamavinashmourya/SIA/internal/model"
)

// DashboardService aggregates host-facing overview data.
type DashboardService struct {
	rooms        RoomStore
	participants ParticipantStore
	sessions     SessionStore
	queue        QueueStore
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(rooms RoomStore, participants ParticipantStore, sessions SessionStore, queue QueueStore) *DashboardService {
	return &DashboardService{rooms: rooms, participants: participants, sessions: sessions, queue: queue}
}

// Stats returns room/participant/session/queue counts for the host.
func (s *DashboardService) Stats(ctx context.Context, hostID string) (*model.DashboardStats, error) {
	rooms, err := s.rooms.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	stats := &model.DashboardStats{TotalRooms: int64(len(rooms))}
	roomIDs := make([]string, 0, len(rooms))
	for _, r := range rooms {
		roomIDs = append(roomIDs, r.ID)
		if r.Active {
			stats.ActiveRooms++
		}
	}
	if len(roomIDs) == 0 {
		return stats, nil
	}
	if stats.TotalParticipants, err = s.participants.CountByRooms(ctx, roomIDs); err != nil {
		return nil, err
	}
	if stats.ActiveSessions, err = s.sessions.CountActiveByRooms(ctx, roomIDs); err != nil {
		return nil, err
	}
	waiting, err := s.queue.ListWaitingByRooms(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	stats.PendingQueueRequests = int64(len(waiting))
	return stats, nil
}

// Queue returns the waiting entries across all of the host's rooms,
// ordered by request time, with participant and room names resolved.
func (s *DashboardService) Queue(ctx context.Context, hostID string) ([]model.QueueOverviewItem, error) {
	rooms, err := s.rooms.ListByHost(ctx, hostID)
	if err != nil {
		return nil, err
	}
	roomNames := make(map[string]string, len(rooms))
	roomIDs := make([]string, 0, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
		roomIDs = append(roomIDs, r.ID)
	}
	if len(roomIDs) == 0 {
		return []model.QueueOverviewItem{}, nil
	}
	entries, err := s.queue.ListWaitingByRooms(ctx, roomIDs)
	if err != nil {
		return nil, err
	}
	items := make([]model.QueueOverviewItem, 0, len(entries))
	for _, e := range entries {
		item := model.QueueOverviewItem{
			ID:            e.ID,
			ParticipantID: e.ParticipantID,
			RoomID:        e.RoomID,
			RoomName:      roomNames[e.RoomID],
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
		return items[i].RequestedAt.Before(items[j].RequestedAt)
	})
	return items, nil
}
