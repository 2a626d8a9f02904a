package repository

import (
	"context"

	"gorm.io/gorm"

	"canteen/entity"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) List(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.WithContext(ctx).Order("id").Find(&items).Error
	return items, err
}

// FindAvailable is the price authority for cart adds: the stored menu price
// is used, never a client-supplied one. Unavailable items read as not found.
func (r *MenuRepository) FindAvailable(ctx context.Context, id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.WithContext(ctx).Where("id = ? AND available = ?", id, true).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
