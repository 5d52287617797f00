package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DiscountTypePercentage = "percentage"
	DiscountTypeAmount     = "amount"
)

type Menu struct {
	ID           uint64
	RestaurantID uint64
	Name         string
	CategoryName string
	Price        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Discount is optional and one-to-one with a menu. ValidFrom/ValidUntil are
// only enforced when the service is configured to do so.
type Discount struct {
	ID         uint64
	MenuID     uint64
	Enabled    bool
	Type       string
	Value      decimal.Decimal
	ValidFrom  *time.Time
	ValidUntil *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
