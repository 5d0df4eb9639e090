package service

import (
	"context"
	"sync"
	"time"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// memStore is an in-memory implementation of every store interface,
// mirroring the (nil, nil) vs sentinel conventions documented in ports.go.
type memStore struct {
	mu           sync.Mutex
	hosts        map[string]*model.Host
	rooms        map[string]*model.Room
	participants map[string]*model.Participant
	sessions     map[string]*model.Session
	queue        map[string]*model.QueueEntry

	// Set to make waiting-entry lookups fail, for outage-path tests.
	waitingLookupErr error
}

func newMemStore() *memStore {
	return &memStore{
		hosts:        make(map[string]*model.Host),
		rooms:        make(map[string]*model.Room),
		participants: make(map[string]*model.Participant),
		sessions:     make(map[string]*model.Session),
		queue:        make(map[string]*model.QueueEntry),
	}
}

// HostStore

func (m *memStore) Find(ctx context.Context, id string) (*model.Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hosts[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, errs.ErrHostNotFound
}

func (m *memStore) FindByEmail(ctx context.Context, email string) (*model.Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.hosts {
		if h.Email == email {
			cp := *h
			return &cp, nil
		}
	}
	return nil, errs.ErrHostNotFound
}

func (m *memStore) Create(ctx context.Context, h *model.Host) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *h
	m.hosts[h.ID] = &cp
	return nil
}

// roomStore / participantStore / sessionStore / queueStore wrappers give
// each interface its own method set over the shared memStore.

type roomStore struct{ *memStore }

func (s roomStore) Find(ctx context.Context, id string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, errs.ErrRoomNotFound
}

func (s roomStore) FindByInvite(ctx context.Context, link string) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.InviteLink == link && r.Active {
			cp := *r
			return &cp, nil
		}
	}
	return nil, errs.ErrRoomNotFound
}

func (s roomStore) InviteExists(ctx context.Context, link string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rooms {
		if r.InviteLink == link {
			return true, nil
		}
	}
	return false, nil
}

func (s roomStore) ListByHost(ctx context.Context, hostID string) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Room
	for _, r := range s.rooms {
		if r.HostID == hostID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s roomStore) ListActiveByHost(ctx context.Context, hostID string) ([]model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Room
	for _, r := range s.rooms {
		if r.HostID == hostID && r.Active {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s roomStore) Create(ctx context.Context, r *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.rooms[r.ID] = &cp
	return nil
}

func (s roomStore) Update(ctx context.Context, r *model.Room) error {
	return s.Create(ctx, r)
}

type participantStore struct{ *memStore }

func (s participantStore) Find(ctx context.Context, id string) (*model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.participants[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, errs.ErrParticipantNotFound
}

func (s participantStore) FindByRoomAndName(ctx context.Context, roomID, name string) (*model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants {
		if p.RoomID == roomID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s participantStore) Create(ctx context.Context, p *model.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.participants[p.ID] = &cp
	return nil
}

func (s participantStore) SetSession(ctx context.Context, id, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.participants[id]; ok {
		sid := sessionID
		p.SessionID = &sid
	}
	return nil
}

func (s participantStore) SetStatus(ctx context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.participants[id]; ok {
		p.Status = status
	}
	return nil
}

func (s participantStore) CountByRooms(ctx context.Context, roomIDs []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.participants {
		for _, id := range roomIDs {
			if p.RoomID == id {
				n++
				break
			}
		}
	}
	return n, nil
}

type sessionStore struct{ *memStore }

func (s sessionStore) Find(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		cp := *sess
		return &cp, nil
	}
	return nil, errs.ErrSessionNotFound
}

func (s sessionStore) FindActive(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok && sess.EndedAt == nil {
		cp := *sess
		return &cp, nil
	}
	return nil, errs.ErrSessionNotFound
}

func (s sessionStore) Create(ctx context.Context, sess *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s sessionStore) End(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok && sess.EndedAt == nil {
		t := at
		sess.EndedAt = &t
	}
	return nil
}

func (s sessionStore) CountActiveByRooms(ctx context.Context, roomIDs []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, sess := range s.sessions {
		if sess.EndedAt != nil {
			continue
		}
		for _, id := range roomIDs {
			if sess.RoomID == id {
				n++
				break
			}
		}
	}
	return n, nil
}

type queueStore struct{ *memStore }

func (s queueStore) Find(ctx context.Context, id string) (*model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.queue[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, errs.ErrQueueEntryNotFound
}

func (s queueStore) ListWaiting(ctx context.Context, roomID string) ([]model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QueueEntry
	for _, e := range s.queue {
		if e.RoomID == roomID && e.Status == model.QueueStatusWaiting {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s queueStore) ListWaitingByRooms(ctx context.Context, roomIDs []string) ([]model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.QueueEntry
	for _, e := range s.queue {
		if e.Status != model.QueueStatusWaiting {
			continue
		}
		for _, id := range roomIDs {
			if e.RoomID == id {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

func (s queueStore) FindWaitingByParticipant(ctx context.Context, participantID string) (*model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waitingLookupErr != nil {
		return nil, s.waitingLookupErr
	}
	var earliest *model.QueueEntry
	for _, e := range s.queue {
		if e.ParticipantID != participantID || e.Status != model.QueueStatusWaiting {
			continue
		}
		if earliest == nil || e.RequestedAt.Before(earliest.RequestedAt) {
			earliest = e
		}
	}
	if earliest == nil {
		return nil, nil
	}
	cp := *earliest
	return &cp, nil
}

func (s queueStore) MaxPosition(ctx context.Context, roomID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, e := range s.queue {
		if e.RoomID == roomID && e.Position > max {
			max = e.Position
		}
	}
	return max, nil
}

func (s queueStore) Insert(ctx context.Context, e *model.QueueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.queue[e.ID] = &cp
	return nil
}

func (s queueStore) UpdateStatus(ctx context.Context, id, status string, acceptedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.queue[id]; ok {
		e.Status = status
		if acceptedAt != nil {
			t := *acceptedAt
			e.AcceptedAt = &t
		}
	}
	return nil
}

// fakeNotifier records realtime pushes instead of delivering them.
type fakeNotifier struct {
	mu         sync.Mutex
	rooms      []roomPush
	directs    []directPush
	failDirect bool
}

type roomPush struct {
	RoomID  string
	Msg     any
	Exclude string
}

type directPush struct {
	Role Role
	ID   string
	Msg  any
}

func (f *fakeNotifier) NotifyRoom(roomID string, msg any, exclude string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms = append(f.rooms, roomPush{RoomID: roomID, Msg: msg, Exclude: exclude})
	return 1
}

func (f *fakeNotifier) NotifyOne(role Role, id string, msg any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directs = append(f.directs, directPush{Role: role, ID: id, Msg: msg})
	return !f.failDirect
}

func (f *fakeNotifier) roomPushes() []roomPush {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]roomPush(nil), f.rooms...)
}

func (f *fakeNotifier) directPushes() []directPush {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]directPush(nil), f.directs...)
}
