// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package blog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/afrolatino/marketplace/internal/platform/apperr"
	"github.com/afrolatino/marketplace/internal/platform/dberr"
	"github.com/afrolatino/marketplace/pkg/pagination"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the blog Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const postColumns = `
	id, title, slug, content, excerpt, author, featuredimage, category,
	tags, published, views, createdat, updatedat`

// buildWhere translates a [Filter] into a WHERE clause and its arguments.
func buildWhere(filter Filter) (string, []interface{}) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 2)

	arg := func(value interface{}) string {
		args = append(args, value)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Published != nil {
		conditions = append(conditions, "published = "+arg(*filter.Published))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns a filtered page of posts plus the total match count.
func (repository *PostgresRepository) List(context context.Context, filter Filter, params pagination.Params) ([]*Post, int, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM content.blogpost" + where
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_count_failed: %w", err)
	}

	query := "SELECT " + postColumns + " FROM content.blogpost" + where +
		fmt.Sprintf(" ORDER BY createdat DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, params.Limit, params.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := make([]*Post, 0, params.Limit)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_blog_repo_rows_failed: %w", err)
	}

	return posts, total, nil
}

// FindByID returns the post with the given ID.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := "SELECT " + postColumns + " FROM content.blogpost WHERE id = $1"
	return repository.findOne(context, query, id)
}

// FindBySlug returns the post with the given slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Post, error) {
	query := "SELECT " + postColumns + " FROM content.blogpost WHERE slug = $1"
	return repository.findOne(context, query, slug)
}

func (repository *PostgresRepository) findOne(context context.Context, query, key string) (*Post, error) {
	post, err := scanPost(repository.pool.QueryRow(context, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Post")
		}
		return nil, fmt.Errorf("postgres_blog_repo_find_failed: %w", err)
	}
	return post, nil
}

// Create persists a new post.
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO content.blogpost (
			id, title, slug, content, excerpt, author, featuredimage, category,
			tags, published, views, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Author,
		post.FeaturedImage,
		post.Category,
		post.Tags,
		post.Published,
		post.Views,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "blog_post_create")
	}

	return nil
}

// Update persists changes to an existing post.
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE content.blogpost
		SET title = $2, slug = $3, content = $4, excerpt = $5, author = $6,
			featuredimage = $7, category = $8, tags = $9, published = $10,
			updatedat = $11
		WHERE id = $1`

	post.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Author,
		post.FeaturedImage,
		post.Category,
		post.Tags,
		post.Published,
		post.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "blog_post_update")
	}

	return nil
}

// Delete removes a post permanently.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM content.blogpost WHERE id = $1"
	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "blog_post_delete")
	}
	return nil
}

// IncrementViews bumps the view counter without touching updatedat.
func (repository *PostgresRepository) IncrementViews(context context.Context, id string) error {
	const query = "UPDATE content.blogpost SET views = views + 1 WHERE id = $1"
	if _, err := repository.pool.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "blog_post_increment_views")
	}
	return nil
}

// scanPost hydrates one post from a row.
func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.Excerpt,
		&post.Author,
		&post.FeaturedImage,
		&post.Category,
		&post.Tags,
		&post.Published,
		&post.Views,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}
