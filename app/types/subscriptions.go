package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type CreateSubscriptionRequest struct {
	ConsumerID    uint64 `json:"consumer_id"`
	RestaurantID  uint64 `json:"restaurant_id"`
	MenuID        uint64 `json:"menu_id"`
	CategoryName  string `json:"category_name"`
	MealPlan      string `json:"meal_plan"`
	MealFrequency string `json:"meal_frequency"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

func (r *CreateSubscriptionRequest) GetConsumerID() uint64   { return r.ConsumerID }
func (r *CreateSubscriptionRequest) GetRestaurantID() uint64 { return r.RestaurantID }
func (r *CreateSubscriptionRequest) GetMenuID() uint64       { return r.MenuID }
func (r *CreateSubscriptionRequest) GetCategoryName() string { return r.CategoryName }
func (r *CreateSubscriptionRequest) GetMealPlan() string     { return r.MealPlan }
func (r *CreateSubscriptionRequest) GetMealFrequency() string {
	return r.MealFrequency
}
func (r *CreateSubscriptionRequest) GetStartDate() string { return r.StartDate }
func (r *CreateSubscriptionRequest) GetEndDate() string   { return r.EndDate }

func NewCreateSubscriptionRequestFromContext(ctx echo.Context) (*CreateSubscriptionRequest, error) {
	var body CreateSubscriptionRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.CategoryName = strings.TrimSpace(body.CategoryName)
	body.MealPlan = strings.TrimSpace(body.MealPlan)
	body.MealFrequency = strings.TrimSpace(body.MealFrequency)
	body.StartDate = strings.TrimSpace(body.StartDate)
	body.EndDate = strings.TrimSpace(body.EndDate)
	return &body, nil
}

func (r *CreateSubscriptionRequest) Validate() error {
	if r.ConsumerID == 0 {
		return errors.New("consumer_id is required")
	}
	if r.RestaurantID == 0 {
		return errors.New("restaurant_id is required")
	}
	if r.MenuID == 0 {
		return errors.New("menu_id is required")
	}
	if r.MealPlan == "" {
		return errors.New("meal_plan is required")
	}
	if r.MealFrequency == "" {
		return errors.New("meal_frequency is required")
	}
	if _, err := time.Parse(dateLayout, r.StartDate); err != nil {
		return errors.New("start_date must be YYYY-MM-DD")
	}
	if r.EndDate != "" {
		if _, err := time.Parse(dateLayout, r.EndDate); err != nil {
			return errors.New("end_date must be YYYY-MM-DD")
		}
	}
	return nil
}

type UpdateSubscriptionStatusRequest struct {
	ID              uint64 `json:"-"`
	Status          string `json:"status"`
	ForceRegenerate bool   `json:"force_regenerate"`
}

func (r *UpdateSubscriptionStatusRequest) GetID() uint64          { return r.ID }
func (r *UpdateSubscriptionStatusRequest) GetStatus() string      { return r.Status }
func (r *UpdateSubscriptionStatusRequest) GetForceRegenerate() bool { return r.ForceRegenerate }

func NewUpdateSubscriptionStatusRequestFromContext(ctx echo.Context) (*UpdateSubscriptionStatusRequest, error) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return nil, err
	}

	var body UpdateSubscriptionStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = id
	body.Status = strings.TrimSpace(strings.ToLower(body.Status))
	return &body, nil
}

func (r *UpdateSubscriptionStatusRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid subscription id")
	}
	switch r.Status {
	case "pending", "approved", "rejected", "completed", "cancelled":
	default:
		return errors.New("status must be one of pending, approved, rejected, completed, cancelled")
	}
	return nil
}

type PauseSubscriptionRequest struct {
	ID          uint64   `json:"-"`
	PausedDates []string `json:"paused_dates"`
}

func (r *PauseSubscriptionRequest) GetID() uint64            { return r.ID }
func (r *PauseSubscriptionRequest) GetPausedDates() []string { return r.PausedDates }

func NewPauseSubscriptionRequestFromContext(ctx echo.Context) (*PauseSubscriptionRequest, error) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return nil, err
	}

	var body PauseSubscriptionRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.ID = id
	for i, d := range body.PausedDates {
		body.PausedDates[i] = strings.TrimSpace(d)
	}
	return &body, nil
}

func (r *PauseSubscriptionRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid subscription id")
	}
	if len(r.PausedDates) == 0 {
		return errors.New("paused_dates must not be empty")
	}
	for _, d := range r.PausedDates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			return errors.New("paused_dates entries must be YYYY-MM-DD")
		}
	}
	return nil
}

type SubscriptionIDRequest struct {
	ID uint64
}

func (r *SubscriptionIDRequest) GetID() uint64 { return r.ID }

func NewSubscriptionIDRequestFromContext(ctx echo.Context) (*SubscriptionIDRequest, error) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return nil, err
	}
	return &SubscriptionIDRequest{ID: id}, nil
}

func (r *SubscriptionIDRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid subscription id")
	}
	return nil
}

type ListSubscriptionsRequest struct {
	ConsumerID uint64
}

func (r *ListSubscriptionsRequest) GetConsumerID() uint64 { return r.ConsumerID }

func NewListSubscriptionsRequestFromContext(ctx echo.Context) (*ListSubscriptionsRequest, error) {
	req := &ListSubscriptionsRequest{}
	raw := strings.TrimSpace(ctx.QueryParam("consumer_id"))
	if raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ConsumerID = id
	}
	return req, nil
}

func (r *ListSubscriptionsRequest) Validate() error {
	return nil
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	return strconv.ParseUint(ctx.Param("id"), 10, 64)
}
