package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// ParticipantStore is the GORM-backed participant store.
type ParticipantStore struct {
	db *gorm.DB
}

// NewParticipantStore creates a participant store.
func NewParticipantStore(db *gorm.DB) *ParticipantStore {
	return &ParticipantStore{db: db}
}

func (s *ParticipantStore) Find(ctx context.Context, id string) (*model.Participant, error) {
	var p model.Participant
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrParticipantNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByRoomAndName returns the participant identified by (room, name), or
// nil when the name has never joined the room.
func (s *ParticipantStore) FindByRoomAndName(ctx context.Context, roomID, name string) (*model.Participant, error) {
	var p model.Participant
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND name = ?", roomID, name).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *ParticipantStore) Create(ctx context.Context, p *model.Participant) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *ParticipantStore) SetSession(ctx context.Context, id, sessionID string) error {
	return s.db.WithContext(ctx).Model(&model.Participant{}).
		Where("id = ?", id).
		Update("session_id", sessionID).Error
}

func (s *ParticipantStore) SetStatus(ctx context.Context, id, status string) error {
	return s.db.WithContext(ctx).Model(&model.Participant{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (s *ParticipantStore) CountByRooms(ctx context.Context, roomIDs []string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Participant{}).
		Where("room_id IN ?", roomIDs).
		Count(&count).Error
	return count, err
}
