package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
)

func (r *Repository) GetBroker(ctx context.Context, id string) (*domain.Broker, error) {
	sql, args, err := r.db.QueryBuilder.
		Select("id", "name", "webhook_url", "webhook_secret", "api_key_hash").
		From("brokers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var b domain.Broker
	err = r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.Name, &b.WebhookURL, &b.Secret, &b.APIKeyHash)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &b, nil
}

func (r *Repository) GetMerchant(ctx context.Context, id string) (*domain.Merchant, error) {
	sql, args, err := r.db.QueryBuilder.
		Select("id", "name", "webhook_url", "webhook_secret", "conversion_rate").
		From("merchants").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var m domain.Merchant
	err = r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.Name, &m.WebhookURL, &m.Secret, &m.ConversionRate)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &m, nil
}

// GetEndpoint resolves the webhook registration of a broker or merchant.
// A target without a URL has no endpoint.
func (r *Repository) GetEndpoint(ctx context.Context, target domain.NotificationTarget) (*domain.Endpoint, error) {
	var url, secret string
	switch target.Kind {
	case domain.TargetBroker:
		b, err := r.GetBroker(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		url, secret = b.WebhookURL, b.Secret
	case domain.TargetMerchant:
		m, err := r.GetMerchant(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		url, secret = m.WebhookURL, m.Secret
	default:
		return nil, domain.ErrTargetRequired
	}

	if strings.TrimSpace(url) == "" {
		return nil, domain.ErrNoEndpoint
	}
	return &domain.Endpoint{Target: target, URL: url, Secret: secret}, nil
}
