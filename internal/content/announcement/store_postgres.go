// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package announcement

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

// NewRepository creates a new PostgreSQL implementation of the announcement Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const announcementColumns = `id, title, message, type, link, isactive, priority, createdat, updatedat`

// ListActive returns active announcements, highest priority first.
func (repository *PostgresRepository) ListActive(context context.Context) ([]*Announcement, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM content.announcement
		WHERE isactive = TRUE
		ORDER BY priority DESC
		LIMIT %d`, announcementColumns, ActiveLimit)

	return repository.queryMany(context, query)
}

// ListAll returns every announcement, newest first.
func (repository *PostgresRepository) ListAll(context context.Context) ([]*Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM content.announcement ORDER BY createdat DESC`, announcementColumns)
	return repository.queryMany(context, query)
}

// FindByID returns the announcement with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Announcement, error) {
	query := fmt.Sprintf(`SELECT %s FROM content.announcement WHERE id = $1`, announcementColumns)

	announcement, err := scanAnnouncement(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Announcement")
		}
		return nil, fmt.Errorf("postgres_announcement_repo_find_failed: %w", err)
	}

	return announcement, nil
}

// Create persists a new announcement.
func (repository *PostgresRepository) Create(context context.Context, announcement *Announcement) error {
	const query = `
		INSERT INTO content.announcement (
			id, title, message, type, link, isactive, priority, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	if announcement.CreatedAt.IsZero() {
		announcement.CreatedAt = now
	}
	announcement.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		announcement.ID,
		announcement.Title,
		announcement.Message,
		announcement.Type,
		announcement.Link,
		announcement.IsActive,
		announcement.Priority,
		announcement.CreatedAt,
		announcement.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "announcement_create")
	}

	return nil
}

// Update persists changes to an existing announcement.
func (repository *PostgresRepository) Update(context context.Context, announcement *Announcement) error {
	const query = `
		UPDATE content.announcement
		SET title = $2, message = $3, type = $4, link = $5, isactive = $6,
			priority = $7, updatedat = $8
		WHERE id = $1`

	announcement.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		announcement.ID,
		announcement.Title,
		announcement.Message,
		announcement.Type,
		announcement.Link,
		announcement.IsActive,
		announcement.Priority,
		announcement.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "announcement_update")
	}

	return nil
}

// Delete removes an announcement permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM content.announcement WHERE id = $1"
	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "announcement_delete")
	}
	return nil
}

func (repository *PostgresRepository) queryMany(context context.Context, query string) ([]*Announcement, error) {
	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_announcement_repo_list_failed: %w", err)
	}
	defer rows.Close()

	announcements := []*Announcement{}
	for rows.Next() {
		announcement, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_announcement_repo_scan_failed: %w", err)
		}
		announcements = append(announcements, announcement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_announcement_repo_rows_failed: %w", err)
	}

	return announcements, nil
}

// scanAnnouncement hydrates one announcement from a row.
func scanAnnouncement(row pgx.Row) (*Announcement, error) {
	announcement := &Announcement{}
	err := row.Scan(
		&announcement.ID,
		&announcement.Title,
		&announcement.Message,
		&announcement.Type,
		&announcement.Link,
		&announcement.IsActive,
		&announcement.Priority,
		&announcement.CreatedAt,
		&announcement.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return announcement, nil
}
