package repository

import (
	"context"
	"database/sql"
	"time"
)

// ClosureRepository reads a restaurant's closure calendar. The calendar is a
// plain set of dates; every scheduling path consumes it in that form.
type ClosureRepository struct {
	db DBTX
}

func NewClosureRepository(db DBTX) *ClosureRepository {
	return &ClosureRepository{db: db}
}

func (r *ClosureRepository) ListDates(ctx context.Context, restaurantID uint64) ([]time.Time, error) {
	query := `
		SELECT closed_on
		FROM restaurant_closures
		WHERE restaurant_id = ?
		ORDER BY closed_on ASC
	`

	rows, err := r.db.QueryContext(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dates, nil
}

// RestaurantExists reports whether the restaurant is known.
func (r *ClosureRepository) RestaurantExists(ctx context.Context, restaurantID uint64) (bool, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM restaurants WHERE id = ?`, restaurantID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
