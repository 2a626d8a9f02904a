package entity

import (
	"github.com/shopspring/decimal"
)

// OrderItem snapshots a cart line at order time. UnitPrice is the price the
// user paid; later menu price changes never touch historical orders.
type OrderItem struct {
	ID      uint `gorm:"primarykey" json:"id"`
	OrderID uint `gorm:"index;not null" json:"orderId"`

	MenuItemID uint     `gorm:"not null" json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
}
