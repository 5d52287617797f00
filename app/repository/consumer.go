package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

type ConsumerRepository struct {
	db DBTX
}

func NewConsumerRepository(db DBTX) *ConsumerRepository {
	return &ConsumerRepository{db: db}
}

func (r *ConsumerRepository) FindByID(ctx context.Context, id uint64) (*entity.Consumer, error) {
	query := `
		SELECT id, name, email, address_id, created_at, updated_at
		FROM consumers
		WHERE id = ?
	`

	item := &entity.Consumer{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Email,
		&item.AddressID,
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
