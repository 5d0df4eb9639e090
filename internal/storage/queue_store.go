package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// QueueStore is the GORM-backed queue store.
type QueueStore struct {
	db *gorm.DB
}

// NewQueueStore creates a queue store.
func NewQueueStore(db *gorm.DB) *QueueStore {
	return &QueueStore{db: db}
}

func (s *QueueStore) Find(ctx context.Context, id string) (*model.QueueEntry, error) {
	var e model.QueueEntry
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrQueueEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *QueueStore) ListWaiting(ctx context.Context, roomID string) ([]model.QueueEntry, error) {
	var entries []model.QueueEntry
	err := s.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, model.QueueStatusWaiting).
		Order("position").
		Find(&entries).Error
	return entries, err
}

func (s *QueueStore) ListWaitingByRooms(ctx context.Context, roomIDs []string) ([]model.QueueEntry, error) {
	var entries []model.QueueEntry
	err := s.db.WithContext(ctx).
		Where("room_id IN ? AND status = ?", roomIDs, model.QueueStatusWaiting).
		Order("requested_at").
		Find(&entries).Error
	return entries, err
}

// FindWaitingByParticipant returns the participant's earliest waiting
// entry, or nil when they are not queued anywhere.
func (s *QueueStore) FindWaitingByParticipant(ctx context.Context, participantID string) (*model.QueueEntry, error) {
	var e model.QueueEntry
	err := s.db.WithContext(ctx).
		Where("participant_id = ? AND status = ?", participantID, model.QueueStatusWaiting).
		Order("requested_at").
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// MaxPosition returns the highest position ever assigned in the room,
// across all statuses, or 0 for an empty queue.
func (s *QueueStore) MaxPosition(ctx context.Context, roomID string) (int, error) {
	var max int
	err := s.db.WithContext(ctx).Model(&model.QueueEntry{}).
		Where("room_id = ?", roomID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

func (s *QueueStore) Insert(ctx context.Context, e *model.QueueEntry) error {
	return s.db.WithContext(ctx).Create(e).Error
}

func (s *QueueStore) UpdateStatus(ctx context.Context, id, status string, acceptedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if acceptedAt != nil {
		updates["accepted_at"] = *acceptedAt
	}
	return s.db.WithContext(ctx).Model(&model.QueueEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}
