package dto

type SubscriptionResponse struct {
	ID            uint64   `json:"id"`
	ConsumerID    uint64   `json:"consumer_id"`
	RestaurantID  uint64   `json:"restaurant_id"`
	MenuID        uint64   `json:"menu_id"`
	AddressID     uint64   `json:"address_id"`
	CategoryName  string   `json:"category_name"`
	MealPlan      string   `json:"meal_plan"`
	MealFrequency string   `json:"meal_frequency"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Status        string   `json:"status"`
	PaymentAmount string   `json:"payment_amount"`
	PaymentStatus string   `json:"payment_status"`
	PausedDates   []string `json:"paused_dates,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type OrderResponse struct {
	ID             uint64 `json:"id"`
	SubscriptionID uint64 `json:"subscription_id"`
	ConsumerID     uint64 `json:"consumer_id"`
	RestaurantID   uint64 `json:"restaurant_id"`
	MenuID         uint64 `json:"menu_id"`
	AddressID      uint64 `json:"address_id"`
	OrderNumber    string `json:"order_number"`
	OrderDate      string `json:"order_date"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type SubscriptionEnvelopeResponse struct {
	Subscription *SubscriptionResponse `json:"subscription"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []*SubscriptionResponse `json:"subscriptions"`
}

type ListOrdersResponse struct {
	Orders []*OrderResponse `json:"orders"`
}

type MessageResponse struct {
	Message      string                `json:"message"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
