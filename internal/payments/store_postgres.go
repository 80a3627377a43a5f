// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package payments

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

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the payments Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new transaction row.
func (repository *PostgresRepository) Create(context context.Context, transaction *PaymentTransaction) error {
	const query = `
		INSERT INTO sales.transactions (
			id, orderid, userid, amount, currency, paymentmethod,
			paymentstatus, stripesessionid, paypalorderid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := repository.pool.Exec(context, query,
		transaction.ID,
		transaction.OrderID,
		nullable(transaction.UserID),
		transaction.Amount,
		transaction.Currency,
		transaction.PaymentMethod,
		transaction.PaymentStatus,
		nullable(transaction.StripeSessionID),
		nullable(transaction.PayPalOrderID),
		transaction.CreatedAt,
		transaction.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "transaction_create")
	}

	return nil
}

// FindByStripeSession returns the transaction for a checkout session.
func (repository *PostgresRepository) FindByStripeSession(context context.Context, sessionID string) (*PaymentTransaction, error) {
	const query = `
		SELECT id, orderid, userid, amount, currency, paymentmethod,
			paymentstatus, stripesessionid, paypalorderid, createdat, updatedat
		FROM sales.transactions
		WHERE stripesessionid = $1`

	transaction := &PaymentTransaction{}
	var userID, stripeSessionID, paypalOrderID *string

	err := repository.pool.QueryRow(context, query, sessionID).Scan(
		&transaction.ID,
		&transaction.OrderID,
		&userID,
		&transaction.Amount,
		&transaction.Currency,
		&transaction.PaymentMethod,
		&transaction.PaymentStatus,
		&stripeSessionID,
		&paypalOrderID,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Transaction")
		}
		return nil, fmt.Errorf("postgres_payments_repo_find_failed: %w", err)
	}

	if userID != nil {
		transaction.UserID = *userID
	}
	if stripeSessionID != nil {
		transaction.StripeSessionID = *stripeSessionID
	}
	if paypalOrderID != nil {
		transaction.PayPalOrderID = *paypalOrderID
	}

	return transaction, nil
}

// UpdateStatusByStripeSession sets the payment status for a session's
// transaction. A missing session is silently ignored.
func (repository *PostgresRepository) UpdateStatusByStripeSession(context context.Context, sessionID, status string) error {
	const query = `
		UPDATE sales.transactions
		SET paymentstatus = $2, updatedat = $3
		WHERE stripesessionid = $1`

	if _, err := repository.pool.Exec(context, query, sessionID, status, time.Now()); err != nil {
		return dberr.Wrap(err, "transaction_update_status")
	}

	return nil
}

// nullable maps an empty string to SQL NULL.
func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
