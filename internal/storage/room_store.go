package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// RoomStore is the GORM-backed room store.
type RoomStore struct {
	db *gorm.DB
}

// NewRoomStore creates a room store.
func NewRoomStore(db *gorm.DB) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) Find(ctx context.Context, id string) (*model.Room, error) {
	var r model.Room
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, err
	}
	return &r, nil
}

// FindByInvite resolves an invite link to its room; inactive rooms do not
// resolve.
func (s *RoomStore) FindByInvite(ctx context.Context, inviteLink string) (*model.Room, error) {
	var r model.Room
	err := s.db.WithContext(ctx).
		Where("invite_link = ? AND active = ?", inviteLink, true).
		First(&r).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *RoomStore) InviteExists(ctx context.Context, inviteLink string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("invite_link = ?", inviteLink).
		Count(&count).Error
	return count > 0, err
}

func (s *RoomStore) ListByHost(ctx context.Context, hostID string) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (s *RoomStore) ListActiveByHost(ctx context.Context, hostID string) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Where("host_id = ? AND active = ?", hostID, true).
		Find(&rooms).Error
	return rooms, err
}

func (s *RoomStore) Create(ctx context.Context, r *model.Room) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *RoomStore) Update(ctx context.Context, r *model.Room) error {
	return s.db.WithContext(ctx).Save(r).Error
}
