package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iamavinashmourya/SIA/internal/errs"
	"github.com/iamavinashmourya/SIA/internal/model"
)

// HostStore is the GORM-backed host store.
type HostStore struct {
	db *gorm.DB
}

// NewHostStore creates a host store.
func NewHostStore(db *gorm.DB) *HostStore {
	return &HostStore{db: db}
}

func (s *HostStore) Find(ctx context.Context, id string) (*model.Host, error) {
	var h model.Host
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrHostNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (s *HostStore) FindByEmail(ctx context.Context, email string) (*model.Host, error) {
	var h model.Host
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrHostNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (s *HostStore) Create(ctx context.Context, h *model.Host) error {
	return s.db.WithContext(ctx).Create(h).Error
}
