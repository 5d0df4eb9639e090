package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// SessionStore is the GORM-backed session store.
type SessionStore struct {
	db *gorm.DB
}

// NewSessionStore creates a session store.
func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Find(ctx context.Context, id string) (*model.Session, error) {
	var sess model.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

// FindActive returns the session only while ended_at is null.
func (s *SessionStore) FindActive(ctx context.Context, id string) (*model.Session, error) {
	var sess model.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND ended_at IS NULL", id).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *SessionStore) Create(ctx context.Context, sess *model.Session) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

// End sets ended_at once; an already-ended session is left untouched.
func (s *SessionStore) End(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ? AND ended_at IS NULL", id).
		Update("ended_at", at).Error
}

func (s *SessionStore) CountActiveByRooms(ctx context.Context, roomIDs []string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Session{}).
		Where("room_id IN ? AND ended_at IS NULL", roomIDs).
		Count(&count).Error
	return count, err
}
