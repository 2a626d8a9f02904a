package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created. TotalPrice is computed server-side and
// always equals the sum of quantity × unit price over Items.
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Reference  string          `gorm:"uniqueIndex;not null" json:"reference"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	Items []OrderItem `json:"items"`
}
