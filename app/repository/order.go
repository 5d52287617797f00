package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

var ErrDuplicateOrderNumber = errors.New("duplicate order number")

type OrderRepository struct {
	db DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// BulkCreate persists all drafts in a single multi-row INSERT, so a batch is
// committed whole or not at all. An order-number collision surfaces as
// ErrDuplicateOrderNumber; callers regenerate the numbers and retry.
func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO orders (
			subscription_id, consumer_id, restaurant_id, menu_id, address_id,
			order_number, order_date, status, created_at, updated_at
		)
		VALUES `)

	args := make([]interface{}, 0, len(orders)*10)
	for i, order := range orders {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			order.SubscriptionID,
			order.ConsumerID,
			order.RestaurantID,
			order.MenuID,
			order.AddressID,
			order.OrderNumber,
			dateValue(order.OrderDate),
			order.Status,
			order.CreatedAt,
			order.UpdatedAt,
		)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateOrderNumber
		}
		return err
	}
	return nil
}

// CancelByDates marks the subscription's orders on the given dates as
// cancelled. Re-cancelling an already-cancelled order is a no-op.
func (r *OrderRepository) CancelByDates(ctx context.Context, subscriptionID uint64, dates []time.Time, now time.Time) error {
	if len(dates) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(dates))
	args := make([]interface{}, 0, len(dates)+3)
	args = append(args, entity.OrderStatusCancelled, now, subscriptionID)
	for _, d := range dates {
		placeholders = append(placeholders, "?")
		args = append(args, dateValue(d))
	}

	query := `
		UPDATE orders
		SET status = ?, updated_at = ?
		WHERE subscription_id = ? AND order_date IN (` + strings.Join(placeholders, ", ") + `)`

	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// CountActive counts the subscription's non-cancelled orders.
func (r *OrderRepository) CountActive(ctx context.Context, subscriptionID uint64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE subscription_id = ? AND status <> ?
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, subscriptionID, entity.OrderStatusCancelled).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepository) ListBySubscription(ctx context.Context, subscriptionID uint64) ([]*entity.Order, error) {
	query := `
		SELECT id, subscription_id, consumer_id, restaurant_id, menu_id, address_id,
		       order_number, order_date, status, created_at, updated_at
		FROM orders
		WHERE subscription_id = ?
		ORDER BY order_date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Order, 0)
	for rows.Next() {
		item := &entity.Order{}
		err := rows.Scan(
			&item.ID,
			&item.SubscriptionID,
			&item.ConsumerID,
			&item.RestaurantID,
			&item.MenuID,
			&item.AddressID,
			&item.OrderNumber,
			&item.OrderDate,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
