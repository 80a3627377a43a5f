// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/platform/dberr"
)

// orderColumns is the canonical column list shared by every SELECT.
//
// items and deliveryinfo are JSONB; pgx decodes them straight into the
// Go structs.
const orderColumns = `id, userid, items, deliveryinfo, subtotal, deliveryfee,
	total, paymentmethod, paymentstatus, orderstatus, createdat, updatedat`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the orders Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new order row.
func (repository *PostgresRepository) Create(context context.Context, order *Order) error {
	const query = `
		INSERT INTO sales.orders (
			id, userid, items, deliveryinfo, subtotal, deliveryfee,
			total, paymentmethod, paymentstatus, orderstatus, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	// Guest orders carry NULL instead of an empty owner string so that
	// history queries never match them.
	var userID *string
	if order.UserID != "" {
		userID = &order.UserID
	}

	_, err := repository.pool.Exec(context, query,
		order.ID,
		userID,
		order.Items,
		order.DeliveryInfo,
		order.Subtotal,
		order.DeliveryFee,
		order.Total,
		order.PaymentMethod,
		order.PaymentStatus,
		order.OrderStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "order_create")
	}

	return nil
}

// FindByID returns a single order without any ownership filtering.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales.orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Order")
		}
		return nil, fmt.Errorf("postgres_orders_repo_find_failed: %w", err)
	}

	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales.orders WHERE userid = $1 ORDER BY createdat DESC`, orderColumns)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_orders_repo_list_failed: %w", err)
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_orders_repo_scan_failed: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_orders_repo_rows_failed: %w", err)
	}

	return orders, nil
}

// MarkPaid flips payment status to paid and resets the fulfillment
// status to processing. Safe to call more than once.
func (repository *PostgresRepository) MarkPaid(context context.Context, id string) error {
	const query = `
		UPDATE sales.orders
		SET paymentstatus = $2, orderstatus = $3, updatedat = $4
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, PaymentStatusPaid, StatusProcessing, time.Now())
	if err != nil {
		return dberr.Wrap(err, "order_mark_paid")
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Order")
	}

	return nil
}

// scanOrder maps one row onto an [Order].
func scanOrder(row pgx.Row) (*Order, error) {
	order := &Order{}
	var userID *string

	err := row.Scan(
		&order.ID,
		&userID,
		&order.Items,
		&order.DeliveryInfo,
		&order.Subtotal,
		&order.DeliveryFee,
		&order.Total,
		&order.PaymentMethod,
		&order.PaymentStatus,
		&order.OrderStatus,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if userID != nil {
		order.UserID = *userID
	}

	return order, nil
}
