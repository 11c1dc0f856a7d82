package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, user_id, name, price, currency, frequency, category,
	payment_method, status, start_date, renewal_date, created_at, updated_at`

func (r *SubscriptionRepository) Create(ctx context.Context, s *entity.Subscription) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO subscriptions
			(user_id, name, price, currency, frequency, category, payment_method, status, start_date, renewal_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, s.UserID, s.Name, s.Price, s.Currency, s.Frequency, s.Category,
		s.PaymentMethod, s.Status, s.StartDate, s.RenewalDate)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "subscription insert failed", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	s := &entity.Subscription{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE id = $1
	`, id)
	if err := scanSubscription(row, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY renewal_date ASC
	`, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "subscription list failed", err)
	}
	defer rows.Close()

	out := []*entity.Subscription{}
	for rows.Next() {
		s := &entity.Subscription{}
		if err := scanSubscription(rows, s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "subscription list failed", err)
	}
	return out, nil
}

func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, id string, status entity.SubscriptionStatus) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE subscriptions
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "subscription update failed", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "subscription not found")
	}
	return nil
}

func scanSubscription(row pgx.Row, s *entity.Subscription) error {
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Price, &s.Currency, &s.Frequency,
		&s.Category, &s.PaymentMethod, &s.Status, &s.StartDate, &s.RenewalDate,
		&s.CreatedAt, &s.UpdatedAt)
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.New(apperr.KindNotFound, "subscription not found")
	}
	return apperr.Wrap(apperr.KindUnavailable, "subscription lookup failed", err)
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
