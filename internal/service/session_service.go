package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// SessionService manages participant session lifecycle: join (with
// active-session reuse), idempotent end, and the lookups the realtime
// connect hooks need.
type SessionService struct {
	rooms        RoomStore
	participants ParticipantStore
	sessions     SessionStore
	log          *zap.Logger
}

// NewSessionService creates the session lifecycle service.
func NewSessionService(rooms RoomStore, participants ParticipantStore, sessions SessionStore, log *zap.Logger) *SessionService {
	return &SessionService{rooms: rooms, participants: participants, sessions: sessions, log: log}
}

// Join admits a participant to the room behind an invite link. Identity
// within a room is (room, name): a returning name with a still-active
// session gets that session back unchanged. Authenticated hosts are
// rejected — they must use the dashboard, not the participant flow.
func (s *SessionService) Join(ctx context.Context, inviteLink, name string, callerIsHost bool) (*model.SessionInfo, error) {
	if callerIsHost {
		return nil, errs.ErrHostCannotJoin
	}
	room, err := s.rooms.FindByInvite(ctx, inviteLink)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)

	part, err := s.participants.FindByRoomAndName(ctx, room.ID, name)
	if err != nil {
		return nil, err
	}
	if part != nil && part.SessionID != nil {
		sess, err := s.sessions.FindActive(ctx, *part.SessionID)
		if err == nil {
			s.log.Info("reusing active session",
				zap.String("session_id", sess.ID),
				zap.String("participant", name))
			return s.info(room, part, sess), nil
		}
		// Most recent session ended; fall through to a new one.
	}

	if part == nil {
		part = &model.Participant{
			ID:       uuid.NewString(),
			RoomID:   room.ID,
			Name:     name,
			Status:   model.ParticipantStatusActive,
			JoinedAt: time.Now().UTC(),
		}
		if err := s.participants.Create(ctx, part); err != nil {
			return nil, err
		}
		s.log.Info("participant created",
			zap.String("participant_id", part.ID),
			zap.String("room_id", room.ID))
	}

	sess := &model.Session{
		ID:            uuid.NewString(),
		ParticipantID: part.ID,
		RoomID:        room.ID,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.participants.SetSession(ctx, part.ID, sess.ID); err != nil {
		return nil, err
	}

	s.log.Info("session created",
		zap.String("session_id", sess.ID),
		zap.String("participant_id", part.ID),
		zap.String("room_id", room.ID))
	return s.info(room, part, sess), nil
}

// Get returns session info for any session, ended or not.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.SessionInfo, error) {
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	info := &model.SessionInfo{
		SessionID:       sess.ID,
		ParticipantID:   sess.ParticipantID,
		RoomID:          sess.RoomID,
		ParticipantName: "Unknown",
		RoomName:        "Unknown",
		StartedAt:       sess.StartedAt,
	}
	if part, err := s.participants.Find(ctx, sess.ParticipantID); err == nil {
		info.ParticipantName = part.Name
	}
	if room, err := s.rooms.Find(ctx, sess.RoomID); err == nil {
		info.RoomName = room.Name
	}
	return info, nil
}

// End closes a session and marks its participant completed. Ending an
// already-ended session is success, not an error; ended_at is never
// touched twice.
func (s *SessionService) End(ctx context.Context, sessionID string) (alreadyEnded bool, err error) {
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if sess.EndedAt != nil {
		return true, nil
	}
	if err := s.sessions.End(ctx, sessionID, time.Now().UTC()); err != nil {
		return false, err
	}
	if err := s.participants.SetStatus(ctx, sess.ParticipantID, model.ParticipantStatusCompleted); err != nil {
		return false, err
	}
	s.log.Info("session ended", zap.String("session_id", sessionID))
	return false, nil
}

// ActiveSession resolves a session for a connecting participant channel.
// Ended or missing sessions refuse the connection.
func (s *SessionService) ActiveSession(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.sessions.FindActive(ctx, sessionID)
}

func (s *SessionService) info(room *model.Room, part *model.Participant, sess *model.Session) *model.SessionInfo {
	return &model.SessionInfo{
		SessionID:       sess.ID,
		ParticipantID:   part.ID,
		RoomID:          room.ID,
		ParticipantName: part.Name,
		RoomName:        room.Name,
		StartedAt:       sess.StartedAt,
	}
}
