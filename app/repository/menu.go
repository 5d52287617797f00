package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

type MenuRepository struct {
	db DBTX
}

func NewMenuRepository(db DBTX) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) FindByID(ctx context.Context, id uint64) (*entity.Menu, error) {
	query := `
		SELECT id, restaurant_id, name, category_name, price, created_at, updated_at
		FROM menus
		WHERE id = ?
	`

	item := &entity.Menu{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.RestaurantID,
		&item.Name,
		&item.CategoryName,
		&item.Price,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return item, nil
}

// FindDiscountByMenuID returns the menu's discount, or nil when none exists.
func (r *MenuRepository) FindDiscountByMenuID(ctx context.Context, menuID uint64) (*entity.Discount, error) {
	query := `
		SELECT id, menu_id, enabled, type, value, valid_from, valid_until, created_at, updated_at
		FROM menu_discounts
		WHERE menu_id = ?
	`

	item := &entity.Discount{}
	var validFrom, validUntil sql.NullTime
	err := r.db.QueryRowContext(ctx, query, menuID).Scan(
		&item.ID,
		&item.MenuID,
		&item.Enabled,
		&item.Type,
		&item.Value,
		&validFrom,
		&validUntil,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if validFrom.Valid {
		item.ValidFrom = &validFrom.Time
	}
	if validUntil.Valid {
		item.ValidUntil = &validUntil.Time
	}

	return item, nil
}
