package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (user, menu item) line pending order placement. At most one
// line exists per user and menu item; adding the same item again merges into
// the existing line. Deletes are hard deletes so a removed line can be
// re-added without tripping the unique index.
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID uint `gorm:"not null;uniqueIndex:idx_cart_user_menu" json:"userId"`
	User   User `json:"-"`

	MenuItemID uint     `gorm:"not null;uniqueIndex:idx_cart_user_menu" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}
