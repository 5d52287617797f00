package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusApproved  = "approved"
	SubscriptionStatusRejected  = "rejected"
	SubscriptionStatusPaused    = "paused"
	SubscriptionStatusCompleted = "completed"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Subscription is a meal-plan purchase. EndDate moves forward when restaurant
// closures or consumer pauses eat into the paid delivery days; the count of
// owed deliveries never changes. Version backs optimistic concurrency on the
// read-modify-write paths (pause, resume, status updates).
type Subscription struct {
	ID            uint64
	ConsumerID    uint64
	RestaurantID  uint64
	MenuID        uint64
	AddressID     uint64
	CategoryName  string
	MealPlan      string
	MealFrequency string
	StartDate     time.Time
	EndDate       time.Time
	Status        string
	PaymentAmount decimal.Decimal
	PaymentStatus string
	PausedDates   []time.Time
	Version       uint64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
