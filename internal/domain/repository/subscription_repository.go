package repository

import (
	"context"

	"github.com/subtrackhq/subtrack/internal/domain/entity"
)

// SubscriptionRepository defines subscription store access.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *entity.Subscription) error
	GetByID(ctx context.Context, id string) (*entity.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Subscription, error)
	UpdateStatus(ctx context.Context, id string, status entity.SubscriptionStatus) error
}
