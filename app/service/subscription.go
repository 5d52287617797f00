package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/factory"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/notification"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/pricing"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/repository"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/schedule"
	"github.com/vibast-solutions/ms-go-meal-subscriptions/config"
)

const dateLayout = "2006-01-02"

type createSubscriptionRequest interface {
	GetConsumerID() uint64
	GetRestaurantID() uint64
	GetMenuID() uint64
	GetCategoryName() string
	GetMealPlan() string
	GetMealFrequency() string
	GetStartDate() string
	GetEndDate() string
}

type updateSubscriptionStatusRequest interface {
	GetStatus() string
	GetForceRegenerate() bool
}

type pauseSubscriptionRequest interface {
	GetPausedDates() []string
}

type subscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	FindByID(ctx context.Context, id uint64) (*entity.Subscription, error)
	List(ctx context.Context, consumerID uint64) ([]*entity.Subscription, error)
	ListApprovedEnded(ctx context.Context, now time.Time) ([]*entity.Subscription, error)
}

type orderRepository interface {
	BulkCreate(ctx context.Context, orders []*entity.Order) error
	CancelByDates(ctx context.Context, subscriptionID uint64, dates []time.Time, now time.Time) error
	CountActive(ctx context.Context, subscriptionID uint64) (int, error)
	ListBySubscription(ctx context.Context, subscriptionID uint64) ([]*entity.Order, error)
}

type menuRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Menu, error)
	FindDiscountByMenuID(ctx context.Context, menuID uint64) (*entity.Discount, error)
}

type consumerRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Consumer, error)
}

type closureRepository interface {
	ListDates(ctx context.Context, restaurantID uint64) ([]time.Time, error)
	RestaurantExists(ctx context.Context, restaurantID uint64) (bool, error)
}

type SubscriptionService struct {
	subscriptionRepo subscriptionRepository
	orderRepo        orderRepository
	menuRepo         menuRepository
	consumerRepo     consumerRepository
	closureRepo      closureRepository
	sink             notification.Sink
	cfg              config.SubscriptionConfig
	logger           logrus.FieldLogger
}

func NewSubscriptionService(
	subscriptionRepo subscriptionRepository,
	orderRepo orderRepository,
	menuRepo menuRepository,
	consumerRepo consumerRepository,
	closureRepo closureRepository,
	sink notification.Sink,
	cfg config.SubscriptionConfig,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		orderRepo:        orderRepo,
		menuRepo:         menuRepo,
		consumerRepo:     consumerRepo,
		closureRepo:      closureRepo,
		sink:             sink,
		cfg:              cfg,
		logger:           factory.NewModuleLogger("subscriptions-service"),
	}
}

// CreateSubscription computes the payment amount from the adjusted menu
// price and the number of owed deliveries, shifts the end date past any
// restaurant closures, and persists the subscription in pending state.
// Closures only move when the owed deliveries happen, never how many.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req createSubscriptionRequest) (*entity.Subscription, error) {
	allowed, err := schedule.AllowedWeekdays(req.GetMealFrequency())
	if err != nil {
		return nil, err
	}
	planDays, err := schedule.PlanDurationDays(req.GetMealPlan())
	if err != nil {
		return nil, err
	}

	start, err := parseDate(req.GetStartDate())
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_date", ErrInvalidRequest)
	}

	end := start.AddDate(0, 0, planDays-1)
	if req.GetEndDate() != "" {
		end, err = parseDate(req.GetEndDate())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_date", ErrInvalidRequest)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("%w: end_date before start_date", ErrInvalidRequest)
		}
	}

	consumer, err := s.consumerRepo.FindByID(ctx, req.GetConsumerID())
	if err != nil {
		return nil, err
	}
	if consumer == nil {
		return nil, ErrConsumerNotFound
	}

	exists, err := s.closureRepo.RestaurantExists(ctx, req.GetRestaurantID())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRestaurantNotFound
	}

	menu, err := s.menuRepo.FindByID(ctx, req.GetMenuID())
	if err != nil {
		return nil, err
	}
	if menu == nil {
		return nil, ErrMenuNotFound
	}
	if menu.RestaurantID != req.GetRestaurantID() {
		return nil, ErrMenuNotFromRestaurant
	}

	discount, err := s.menuRepo.FindDiscountByMenuID(ctx, menu.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	adjustedPrice := pricing.AdjustedPrice(menu.Price, discount, now, s.cfg.EnforceDiscountValidity)
	owedDeliveries := len(schedule.DeliveryDates(start, end, allowed))

	closures, err := s.closureRepo.ListDates(ctx, req.GetRestaurantID())
	if err != nil {
		return nil, err
	}

	categoryName := req.GetCategoryName()
	if categoryName == "" {
		categoryName = menu.CategoryName
	}

	subscription := &entity.Subscription{
		ConsumerID:    req.GetConsumerID(),
		RestaurantID:  req.GetRestaurantID(),
		MenuID:        menu.ID,
		AddressID:     consumer.AddressID,
		CategoryName:  categoryName,
		MealPlan:      req.GetMealPlan(),
		MealFrequency: req.GetMealFrequency(),
		StartDate:     schedule.Day(start),
		EndDate:       schedule.AdjustEndDate(start, end, closures, allowed),
		Status:        entity.SubscriptionStatusPending,
		PaymentAmount: pricing.PaymentAmount(owedDeliveries, adjustedPrice),
		PaymentStatus: entity.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, err
	}

	s.sink.SubscriptionCreated(ctx, subscription)
	return subscription, nil
}

// UpdateSubscriptionStatus persists the new status. Approval is the one
// transition that materializes orders: one per allowed weekday across the
// subscription's full date range, in a single batch. A subscription that
// already has non-cancelled orders is not regenerated unless the request
// forces it.
func (s *SubscriptionService) UpdateSubscriptionStatus(ctx context.Context, id uint64, req updateSubscriptionStatusRequest) (*entity.Subscription, error) {
	if !isSubscriptionStatusAllowed(req.GetStatus()) {
		return nil, ErrInvalidStatus
	}

	var subscription *entity.Subscription
	var oldStatus string
	err := s.withUpdateRetry(ctx, func() error {
		var err error
		subscription, err = s.subscriptionRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if subscription == nil {
			return ErrSubscriptionNotFound
		}

		oldStatus = subscription.Status
		subscription.Status = req.GetStatus()
		subscription.UpdatedAt = time.Now().UTC()
		return s.subscriptionRepo.Update(ctx, subscription)
	})
	if err != nil {
		return nil, err
	}

	if subscription.Status == entity.SubscriptionStatusApproved {
		if err := s.generateInitialOrders(ctx, subscription, req.GetForceRegenerate()); err != nil {
			return nil, err
		}
	}

	s.sink.SubscriptionStatusChanged(ctx, subscription, oldStatus)
	return subscription, nil
}

// PauseSubscription cancels the orders on the paused delivery days and pushes
// the end date forward by exactly as many deliverable days, skipping both
// non-delivery weekdays and restaurant closures. Replacement orders are
// generated on the same qualifying days the extension walk found, so the
// subscriber keeps the full paid delivery count.
func (s *SubscriptionService) PauseSubscription(ctx context.Context, id uint64, req pauseSubscriptionRequest) (*entity.Subscription, error) {
	pausedDates, err := parsePausedDates(req.GetPausedDates())
	if err != nil {
		return nil, err
	}

	var subscription *entity.Subscription
	var extension []time.Time
	err = s.withUpdateRetry(ctx, func() error {
		var err error
		subscription, err = s.subscriptionRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if subscription == nil {
			return ErrSubscriptionNotFound
		}
		if subscription.Status != entity.SubscriptionStatusApproved {
			return ErrSubscriptionNotPausable
		}

		allowed, err := schedule.AllowedWeekdays(subscription.MealFrequency)
		if err != nil {
			return err
		}

		// pausing a day that was never a delivery day has no effect
		pausedDeliveryDays := filterDeliveryDays(pausedDates, allowed)

		now := time.Now().UTC()
		if err := s.orderRepo.CancelByDates(ctx, subscription.ID, pausedDeliveryDays, now); err != nil {
			return err
		}

		closures, err := s.closureRepo.ListDates(ctx, subscription.RestaurantID)
		if err != nil {
			return err
		}

		extension = schedule.ExtensionDates(subscription.EndDate, len(pausedDeliveryDays), allowed, schedule.NewDateSet(closures))
		if len(extension) > 0 {
			subscription.EndDate = extension[len(extension)-1]
		}
		subscription.PausedDates = pausedDeliveryDays
		subscription.Status = entity.SubscriptionStatusPaused
		subscription.UpdatedAt = now
		return s.subscriptionRepo.Update(ctx, subscription)
	})
	if err != nil {
		return nil, err
	}

	if err := s.generateOrders(ctx, subscription, extension); err != nil {
		return nil, err
	}

	s.sink.SubscriptionStatusChanged(ctx, subscription, entity.SubscriptionStatusApproved)
	return subscription, nil
}

// ResumeSubscription clears pause bookkeeping and restores the subscription
// to approved. Only paused subscriptions can resume.
func (s *SubscriptionService) ResumeSubscription(ctx context.Context, id uint64) (*entity.Subscription, error) {
	var subscription *entity.Subscription
	err := s.withUpdateRetry(ctx, func() error {
		var err error
		subscription, err = s.subscriptionRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if subscription == nil {
			return ErrSubscriptionNotFound
		}
		if subscription.Status != entity.SubscriptionStatusPaused {
			return ErrSubscriptionNotPaused
		}

		subscription.Status = entity.SubscriptionStatusApproved
		subscription.PausedDates = nil
		subscription.UpdatedAt = time.Now().UTC()
		return s.subscriptionRepo.Update(ctx, subscription)
	})
	if err != nil {
		return nil, err
	}

	s.sink.SubscriptionStatusChanged(ctx, subscription, entity.SubscriptionStatusPaused)
	return subscription, nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, id uint64) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, ErrSubscriptionNotFound
	}
	return subscription, nil
}

func (s *SubscriptionService) ListSubscriptions(ctx context.Context, consumerID uint64) ([]*entity.Subscription, error) {
	return s.subscriptionRepo.List(ctx, consumerID)
}

func (s *SubscriptionService) ListSubscriptionOrders(ctx context.Context, id uint64) ([]*entity.Order, error) {
	subscription, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subscription == nil {
		return nil, ErrSubscriptionNotFound
	}
	return s.orderRepo.ListBySubscription(ctx, subscription.ID)
}

// RunCompletionBatch marks approved subscriptions whose end date has passed
// as completed.
func (s *SubscriptionService) RunCompletionBatch(ctx context.Context) error {
	now := time.Now().UTC()
	items, err := s.subscriptionRepo.ListApprovedEnded(ctx, now)
	if err != nil {
		return err
	}

	for _, item := range items {
		item.Status = entity.SubscriptionStatusCompleted
		item.UpdatedAt = now
		if err := s.subscriptionRepo.Update(ctx, item); err != nil {
			s.logger.WithError(err).WithField("subscription_id", item.ID).Warn("Complete subscription failed")
			continue
		}
		s.sink.SubscriptionStatusChanged(ctx, item, entity.SubscriptionStatusApproved)
	}

	return nil
}

func (s *SubscriptionService) generateInitialOrders(ctx context.Context, subscription *entity.Subscription, force bool) error {
	if !force {
		count, err := s.orderRepo.CountActive(ctx, subscription.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			s.logger.WithField("subscription_id", subscription.ID).Info("Orders already generated, skipping")
			return nil
		}
	}

	allowed, err := schedule.AllowedWeekdays(subscription.MealFrequency)
	if err != nil {
		return err
	}

	dates := schedule.DeliveryDates(subscription.StartDate, subscription.EndDate, allowed)
	return s.generateOrders(ctx, subscription, dates)
}

// generateOrders bulk-inserts one pending order per date. Random order
// numbers can collide with existing rows; the unique constraint rejects the
// whole batch and we retry with fresh numbers a bounded number of times.
func (s *SubscriptionService) generateOrders(ctx context.Context, subscription *entity.Subscription, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	attempts := s.cfg.OrderNumberMaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		now := time.Now().UTC()
		orders := make([]*entity.Order, 0, len(dates))
		for _, date := range dates {
			orders = append(orders, &entity.Order{
				SubscriptionID: subscription.ID,
				ConsumerID:     subscription.ConsumerID,
				RestaurantID:   subscription.RestaurantID,
				MenuID:         subscription.MenuID,
				AddressID:      subscription.AddressID,
				OrderNumber:    schedule.NewOrderNumber(),
				OrderDate:      schedule.Day(date),
				Status:         entity.OrderStatusPending,
				CreatedAt:      now,
				UpdatedAt:      now,
			})
		}

		err = s.orderRepo.BulkCreate(ctx, orders)
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return err
		}
	}

	return fmt.Errorf("order generation kept colliding: %w", err)
}

// withUpdateRetry re-runs a read-modify-write when a concurrent writer wins
// the optimistic version check.
func (s *SubscriptionService) withUpdateRetry(ctx context.Context, fn func() error) error {
	attempts := s.cfg.UpdateMaxRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		err := fn()
		if errors.Is(err, repository.ErrSubscriptionVersionConflict) {
			continue
		}
		return err
	}

	return ErrConcurrentUpdate
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Day(t), nil
}

// parsePausedDates is all-or-nothing: one unparseable date rejects the whole
// request.
func parsePausedDates(values []string) ([]time.Time, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: paused_dates must not be empty", ErrInvalidRequest)
	}

	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := parseDate(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid paused date %q", ErrInvalidRequest, v)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func filterDeliveryDays(dates []time.Time, allowed schedule.Weekdays) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := schedule.Day(d)
		if !allowed.Contains(day) || seen[day] {
			continue
		}
		seen[day] = true
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Before(result[j]) })
	return result
}

func isSubscriptionStatusAllowed(status string) bool {
	switch status {
	case entity.SubscriptionStatusPending,
		entity.SubscriptionStatusApproved,
		entity.SubscriptionStatusRejected,
		entity.SubscriptionStatusCompleted,
		entity.SubscriptionStatusCancelled:
		return true
	default:
		return false
	}
}
