package entity

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusAssigned  = "assigned"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is one scheduled delivery derived from a subscription. OrderDate
// carries date-only semantics: always midnight UTC.
type Order struct {
	ID             uint64
	SubscriptionID uint64
	ConsumerID     uint64
	RestaurantID   uint64
	MenuID         uint64
	AddressID      uint64
	OrderNumber    string
	OrderDate      time.Time
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
