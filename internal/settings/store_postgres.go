// Copyright (c) 2026 AfroLatino Marketplace. All rights reserved.

package settings

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

// NewRepository creates a new PostgreSQL implementation of the settings Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Find returns the singleton row.
func (repository *PostgresRepository) Find(context context.Context) (*SiteSettings, error) {
	const query = `
		SELECT id, freedeliverythreshold, deliverybasefee, deliveryperkmfee,
			sitetitle, contactemail, stripeapikey, stripewebhooksecret,
			paypalclientid, paypalclientsecret, facebookurl, instagramurl,
			twitterurl, youtubeurl, updatedat
		FROM site.settings
		WHERE id = $1`

	settings := &SiteSettings{}
	err := repository.pool.QueryRow(context, query, ID).Scan(
		&settings.ID,
		&settings.FreeDeliveryThreshold,
		&settings.DeliveryBaseFee,
		&settings.DeliveryPerKmFee,
		&settings.SiteTitle,
		&settings.ContactEmail,
		&settings.StripeAPIKey,
		&settings.StripeWebhookSecret,
		&settings.PayPalClientID,
		&settings.PayPalClientSecret,
		&settings.FacebookURL,
		&settings.InstagramURL,
		&settings.TwitterURL,
		&settings.YouTubeURL,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Settings")
		}
		return nil, fmt.Errorf("postgres_settings_repo_find_failed: %w", err)
	}

	return settings, nil
}

// Upsert writes the full row, creating it when absent.
func (repository *PostgresRepository) Upsert(context context.Context, settings *SiteSettings) error {
	const query = `
		INSERT INTO site.settings (
			id, freedeliverythreshold, deliverybasefee, deliveryperkmfee,
			sitetitle, contactemail, stripeapikey, stripewebhooksecret,
			paypalclientid, paypalclientsecret, facebookurl, instagramurl,
			twitterurl, youtubeurl, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			freedeliverythreshold = EXCLUDED.freedeliverythreshold,
			deliverybasefee = EXCLUDED.deliverybasefee,
			deliveryperkmfee = EXCLUDED.deliveryperkmfee,
			sitetitle = EXCLUDED.sitetitle,
			contactemail = EXCLUDED.contactemail,
			stripeapikey = EXCLUDED.stripeapikey,
			stripewebhooksecret = EXCLUDED.stripewebhooksecret,
			paypalclientid = EXCLUDED.paypalclientid,
			paypalclientsecret = EXCLUDED.paypalclientsecret,
			facebookurl = EXCLUDED.facebookurl,
			instagramurl = EXCLUDED.instagramurl,
			twitterurl = EXCLUDED.twitterurl,
			youtubeurl = EXCLUDED.youtubeurl,
			updatedat = EXCLUDED.updatedat`

	settings.ID = ID
	settings.UpdatedAt = time.Now()

	_, err := repository.pool.Exec(context, query,
		settings.ID,
		settings.FreeDeliveryThreshold,
		settings.DeliveryBaseFee,
		settings.DeliveryPerKmFee,
		settings.SiteTitle,
		settings.ContactEmail,
		settings.StripeAPIKey,
		settings.StripeWebhookSecret,
		settings.PayPalClientID,
		settings.PayPalClientSecret,
		settings.FacebookURL,
		settings.InstagramURL,
		settings.TwitterURL,
		settings.YouTubeURL,
		settings.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "settings_upsert")
	}

	return nil
}
