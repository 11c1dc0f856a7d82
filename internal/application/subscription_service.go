package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
	"github.com/subtrackhq/subtrack/internal/domain/repository"
	"github.com/subtrackhq/subtrack/pkg/helpers"
	"github.com/subtrackhq/subtrack/pkg/mailer"
)

// SubscriptionService manages a user's tracked subscriptions. Redis caches
// list reads, Elasticsearch backs search, and RabbitMQ carries renewal
// reminder jobs. All three clients are optional; the service degrades to
// plain store access when they are nil.
type SubscriptionService struct {
	Repo    repository.SubscriptionRepository
	Users   repository.UserRepository
	Redis   *redis.Client
	ES      *elasticsearch.Client
	ESIndex string
	Pub     *helpers.RabbitPublisher
	Logger  *logrus.Logger
}

func NewSubscriptionService(repo repository.SubscriptionRepository, users repository.UserRepository, rdb *redis.Client, es *elasticsearch.Client, esIndex string, pub *helpers.RabbitPublisher, logger *logrus.Logger) *SubscriptionService {
	return &SubscriptionService{Repo: repo, Users: users, Redis: rdb, ES: es, ESIndex: esIndex, Pub: pub, Logger: logger}
}

const listCacheTTL = 5 * time.Minute

func listCacheKey(userID string) string {
	return "subscriptions:user:" + userID
}

// CreateInput carries the validated fields for a new subscription.
type CreateInput struct {
	Name          string
	Price         float64
	Currency      entity.Currency
	Frequency     entity.Frequency
	Category      string
	PaymentMethod string
	StartDate     time.Time
	RenewalDate   time.Time
}

func (s *SubscriptionService) Create(ctx context.Context, userID string, in CreateInput) (*entity.Subscription, error) {
	sub := &entity.Subscription{
		UserID:        userID,
		Name:          in.Name,
		Price:         in.Price,
		Currency:      in.Currency,
		Frequency:     in.Frequency,
		Category:      in.Category,
		PaymentMethod: in.PaymentMethod,
		Status:        entity.StatusActive,
		StartDate:     in.StartDate,
		RenewalDate:   in.RenewalDate,
	}
	if sub.Currency == "" {
		sub.Currency = entity.CurrencyAUD
	}
	sub.DeriveRenewal(time.Now())

	if err := s.Repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.invalidateListCache(ctx, userID)
	s.publishReminder(ctx, sub)
	s.indexSubscription(ctx, sub)

	return sub, nil
}

func (s *SubscriptionService) List(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	key := listCacheKey(userID)
	if s.Redis != nil {
		var cached []*entity.Subscription
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	subs, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, subs, listCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("subscription cache write failed")
		}
	}
	return subs, nil
}

// Get returns the subscription only when it belongs to userID. A foreign
// subscription is reported as not found, indistinguishable from absence.
func (s *SubscriptionService) Get(ctx context.Context, userID, id string) (*entity.Subscription, error) {
	sub, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperr.New(apperr.KindNotFound, "subscription not found")
	}
	return sub, nil
}

func (s *SubscriptionService) Cancel(ctx context.Context, userID, id string) (*entity.Subscription, error) {
	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateStatus(ctx, id, entity.StatusCanceled); err != nil {
		return nil, err
	}
	sub.Status = entity.StatusCanceled

	s.invalidateListCache(ctx, userID)
	s.indexSubscription(ctx, sub)
	return sub, nil
}

// Search queries Elasticsearch over name and category, filtered to the
// requesting user's documents.
func (s *SubscriptionService) Search(ctx context.Context, userID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"name^2", "category"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"user_id": userID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *SubscriptionService) invalidateListCache(ctx context.Context, userID string) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, listCacheKey(userID)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("subscription cache invalidation failed")
	}
}

func (s *SubscriptionService) publishReminder(ctx context.Context, sub *entity.Subscription) {
	if s.Pub == nil || s.Users == nil {
		return
	}
	u, err := s.Users.GetByID(ctx, sub.UserID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", sub.UserID).Warn("reminder publish skipped: owner lookup failed")
		}
		return
	}
	job := mailer.ReminderJob{
		To:           u.Email,
		UserName:     u.Name,
		Subscription: sub.Name,
		Price:        sub.Price,
		Currency:     string(sub.Currency),
		RenewalDate:  sub.RenewalDate,
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("subscription_id", sub.ID).Warn("reminder publish failed")
	}
}

func (s *SubscriptionService) indexSubscription(ctx context.Context, sub *entity.Subscription) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           sub.ID,
		"user_id":      sub.UserID,
		"name":         sub.Name,
		"category":     sub.Category,
		"price":        sub.Price,
		"currency":     sub.Currency,
		"status":       sub.Status,
		"renewal_date": sub.RenewalDate.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: sub.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("subscription_id", sub.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "subscription_id": sub.ID}).Warn("es index response error")
	}
}
