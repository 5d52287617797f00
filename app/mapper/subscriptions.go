package mapper

import (
	"time"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/dto"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

const dateLayout = "2006-01-02"

func SubscriptionToResponse(item *entity.Subscription) *dto.SubscriptionResponse {
	if item == nil {
		return nil
	}

	return &dto.SubscriptionResponse{
		ID:            item.ID,
		ConsumerID:    item.ConsumerID,
		RestaurantID:  item.RestaurantID,
		MenuID:        item.MenuID,
		AddressID:     item.AddressID,
		CategoryName:  item.CategoryName,
		MealPlan:      item.MealPlan,
		MealFrequency: item.MealFrequency,
		StartDate:     formatDate(item.StartDate),
		EndDate:       formatDate(item.EndDate),
		Status:        item.Status,
		PaymentAmount: item.PaymentAmount.StringFixed(2),
		PaymentStatus: item.PaymentStatus,
		PausedDates:   formatDates(item.PausedDates),
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func SubscriptionsToResponse(items []*entity.Subscription) []*dto.SubscriptionResponse {
	result := make([]*dto.SubscriptionResponse, 0, len(items))
	for _, item := range items {
		result = append(result, SubscriptionToResponse(item))
	}
	return result
}

func OrderToResponse(item *entity.Order) *dto.OrderResponse {
	if item == nil {
		return nil
	}

	return &dto.OrderResponse{
		ID:             item.ID,
		SubscriptionID: item.SubscriptionID,
		ConsumerID:     item.ConsumerID,
		RestaurantID:   item.RestaurantID,
		MenuID:         item.MenuID,
		AddressID:      item.AddressID,
		OrderNumber:    item.OrderNumber,
		OrderDate:      formatDate(item.OrderDate),
		Status:         item.Status,
		CreatedAt:      item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func OrdersToResponse(items []*entity.Order) []*dto.OrderResponse {
	result := make([]*dto.OrderResponse, 0, len(items))
	for _, item := range items {
		result = append(result, OrderToResponse(item))
	}
	return result
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func formatDates(dates []time.Time) []string {
	if len(dates) == 0 {
		return nil
	}
	result := make([]string, 0, len(dates))
	for _, d := range dates {
		result = append(result, formatDate(d))
	}
	return result
}
