// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package notice

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

// NewRepository creates a new PostgreSQL implementation of the notice Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const noticeColumns = `id, title, message, startdate, enddate, isactive, createdat, updatedat`

// ListVisible returns active notices whose window contains now.
func (repository *PostgresRepository) ListVisible(context context.Context, now time.Time) ([]*Notice, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM content.holidaynotice
		WHERE isactive = TRUE AND startdate <= $1 AND enddate >= $1
		ORDER BY startdate`, noticeColumns)

	return repository.queryMany(context, query, now)
}

// ListAll returns every notice, newest first.
func (repository *PostgresRepository) ListAll(context context.Context) ([]*Notice, error) {
	query := fmt.Sprintf(`SELECT %s FROM content.holidaynotice ORDER BY createdat DESC`, noticeColumns)
	return repository.queryMany(context, query)
}

// FindByID returns the notice with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Notice, error) {
	query := fmt.Sprintf(`SELECT %s FROM content.holidaynotice WHERE id = $1`, noticeColumns)

	notice, err := scanNotice(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Notice")
		}
		return nil, fmt.Errorf("postgres_notice_repo_find_failed: %w", err)
	}

	return notice, nil
}

// Create persists a new notice.
func (repository *PostgresRepository) Create(context context.Context, notice *Notice) error {
	const query = `
		INSERT INTO content.holidaynotice (
			id, title, message, startdate, enddate, isactive, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = now
	}
	notice.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		notice.ID,
		notice.Title,
		notice.Message,
		notice.StartDate,
		notice.EndDate,
		notice.IsActive,
		notice.CreatedAt,
		notice.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "notice_create")
	}

	return nil
}

// Update persists changes to an existing notice.
func (repository *PostgresRepository) Update(context context.Context, notice *Notice) error {
	const query = `
		UPDATE content.holidaynotice
		SET title = $2, message = $3, startdate = $4, enddate = $5,
			isactive = $6, updatedat = $7
		WHERE id = $1`

	notice.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		notice.ID,
		notice.Title,
		notice.Message,
		notice.StartDate,
		notice.EndDate,
		notice.IsActive,
		notice.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "notice_update")
	}

	return nil
}

// Delete removes a notice permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM content.holidaynotice WHERE id = $1"
	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "notice_delete")
	}
	return nil
}

func (repository *PostgresRepository) queryMany(context context.Context, query string, args ...interface{}) ([]*Notice, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_notice_repo_list_failed: %w", err)
	}
	defer rows.Close()

	notices := []*Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_notice_repo_scan_failed: %w", err)
		}
		notices = append(notices, notice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_notice_repo_rows_failed: %w", err)
	}

	return notices, nil
}

// scanNotice hydrates one notice from a row.
func scanNotice(row pgx.Row) (*Notice, error) {
	notice := &Notice{}
	err := row.Scan(
		&notice.ID,
		&notice.Title,
		&notice.Message,
		&notice.StartDate,
		&notice.EndDate,
		&notice.IsActive,
		&notice.CreatedAt,
		&notice.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return notice, nil
}
