package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

var ErrSubscriptionVersionConflict = errors.New("subscription version conflict")

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			consumer_id, restaurant_id, menu_id, address_id,
			category_name, meal_plan, meal_frequency,
			start_date, end_date, status,
			payment_amount, payment_status, paused_dates, version,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	pausedDates, err := encodePausedDates(subscription.PausedDates)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query,
		subscription.ConsumerID,
		subscription.RestaurantID,
		subscription.MenuID,
		subscription.AddressID,
		subscription.CategoryName,
		subscription.MealPlan,
		subscription.MealFrequency,
		dateValue(subscription.StartDate),
		dateValue(subscription.EndDate),
		subscription.Status,
		subscription.PaymentAmount,
		subscription.PaymentStatus,
		pausedDates,
		subscription.Version,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	subscription.ID = uint64(id)
	return nil
}

// Update writes the mutable fields guarded by an optimistic version check.
// A concurrent writer bumping the version first makes this call fail with
// ErrSubscriptionVersionConflict; callers re-read and retry.
func (r *SubscriptionRepository) Update(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET end_date = ?, status = ?, payment_amount = ?, payment_status = ?,
		    paused_dates = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`

	pausedDates, err := encodePausedDates(subscription.PausedDates)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query,
		dateValue(subscription.EndDate),
		subscription.Status,
		subscription.PaymentAmount,
		subscription.PaymentStatus,
		pausedDates,
		subscription.UpdatedAt,
		subscription.ID,
		subscription.Version,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// either the row is gone or a concurrent writer bumped the version;
		// callers re-read to tell the two apart
		return ErrSubscriptionVersionConflict
	}

	subscription.Version++
	return nil
}

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uint64) (*entity.Subscription, error) {
	query := subscriptionColumns + ` FROM subscriptions WHERE id = ?`

	item := &entity.Subscription{}
	if err := scanSubscription(r.db.QueryRowContext(ctx, query, id), item); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *SubscriptionRepository) List(ctx context.Context, consumerID uint64) ([]*entity.Subscription, error) {
	query := subscriptionColumns + ` FROM subscriptions`
	args := make([]interface{}, 0, 1)
	if consumerID != 0 {
		query += ` WHERE consumer_id = ?`
		args = append(args, consumerID)
	}
	query += ` ORDER BY id DESC`

	return r.listByQuery(ctx, query, args...)
}

// ListApprovedEnded returns approved subscriptions whose end date has passed,
// candidates for the completion batch.
func (r *SubscriptionRepository) ListApprovedEnded(ctx context.Context, now time.Time) ([]*entity.Subscription, error) {
	query := subscriptionColumns + `
		FROM subscriptions
		WHERE status = ? AND end_date < ?
		ORDER BY id ASC
	`

	return r.listByQuery(ctx, query, entity.SubscriptionStatusApproved, dateValue(now))
}

func (r *SubscriptionRepository) listByQuery(ctx context.Context, query string, args ...interface{}) ([]*entity.Subscription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*entity.Subscription, 0)
	for rows.Next() {
		item := &entity.Subscription{}
		if err := scanSubscription(rows, item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

const subscriptionColumns = `
	SELECT id, consumer_id, restaurant_id, menu_id, address_id,
	       category_name, meal_plan, meal_frequency,
	       start_date, end_date, status,
	       payment_amount, payment_status, paused_dates, version,
	       created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscription(scanner rowScanner, item *entity.Subscription) error {
	var pausedDates sql.NullString

	err := scanner.Scan(
		&item.ID,
		&item.ConsumerID,
		&item.RestaurantID,
		&item.MenuID,
		&item.AddressID,
		&item.CategoryName,
		&item.MealPlan,
		&item.MealFrequency,
		&item.StartDate,
		&item.EndDate,
		&item.Status,
		&item.PaymentAmount,
		&item.PaymentStatus,
		&pausedDates,
		&item.Version,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if pausedDates.Valid && pausedDates.String != "" {
		item.PausedDates, err = decodePausedDates(pausedDates.String)
		if err != nil {
			return err
		}
	} else {
		item.PausedDates = nil
	}

	return nil
}

func encodePausedDates(dates []time.Time) (interface{}, error) {
	if len(dates) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(dates))
	for _, d := range dates {
		values = append(values, dateValue(d))
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

func decodePausedDates(raw string) ([]time.Time, error) {
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
