package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canteen/entity"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

func (r *CartRepository) ListForUser(ctx context.Context, userID uint) ([]entity.CartItem, error) {
	var lines []entity.CartItem
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&lines).Error
	return lines, err
}

// UpsertLine adds a line or merges into an existing one for the same
// (user, menu item): quantity accumulates, the stored price wins. The second
// return reports whether an existing line was merged. Read-then-write:
// callers hold the user's lock and run inside tx.
func (r *CartRepository) UpsertLine(tx *gorm.DB, userID, menuItemID uint, qty int, price decimal.Decimal) (*entity.CartItem, bool, error) {
	var exist entity.CartItem
	err := tx.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&exist).Error
	if err == nil {
		exist.Quantity += qty
		if err := tx.Save(&exist).Error; err != nil {
			return nil, false, err
		}
		return &exist, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	line := entity.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: qty, UnitPrice: price}
	if err := tx.Create(&line).Error; err != nil {
		return nil, false, err
	}
	return &line, false, nil
}

// SetQuantity overwrites the line's quantity (absolute set, not a delta).
func (r *CartRepository) SetQuantity(tx *gorm.DB, userID, menuItemID uint, qty int) (*entity.CartItem, error) {
	var exist entity.CartItem
	if err := tx.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&exist).Error; err != nil {
		return nil, err
	}
	exist.Quantity = qty
	if err := tx.Save(&exist).Error; err != nil {
		return nil, err
	}
	return &exist, nil
}

// RemoveLine deletes a line only when it belongs to the user.
func (r *CartRepository) RemoveLine(tx *gorm.DB, userID, lineID uint) error {
	res := tx.Where("id = ? AND user_id = ?", lineID, userID).Delete(&entity.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CartRepository) ClearForUser(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}
