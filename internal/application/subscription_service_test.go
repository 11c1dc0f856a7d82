package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrackhq/subtrack/internal/domain/apperr"
	"github.com/subtrackhq/subtrack/internal/domain/entity"
)

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	byID map[string]*entity.Subscription
	seq  int
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{byID: map[string]*entity.Subscription{}}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	s.ID = fmt.Sprintf("sub-%d", f.seq)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.byID[s.ID] = s
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, id string) (*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "subscription not found")
	}
	return s, nil
}

func (f *fakeSubscriptionRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*entity.Subscription{}
	for _, s := range f.byID {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) UpdateStatus(ctx context.Context, id string, status entity.SubscriptionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return apperr.New(apperr.KindNotFound, "subscription not found")
	}
	s.Status = status
	return nil
}

func newSubscriptionService(repo *fakeSubscriptionRepo) *SubscriptionService {
	// side-channel clients stay nil: the core must work without them
	return NewSubscriptionService(repo, nil, nil, nil, "", nil, nil)
}

func TestSubscriptionCreate_DerivesRenewalDate(t *testing.T) {
	start := time.Now().AddDate(0, 0, -1)
	cases := []struct {
		frequency entity.Frequency
		days      int
	}{
		{entity.FrequencyDaily, 1},
		{entity.FrequencyWeekly, 7},
		{entity.FrequencyMonthly, 30},
		{entity.FrequencyYearly, 365},
	}

	for _, tc := range cases {
		t.Run(string(tc.frequency), func(t *testing.T) {
			svc := newSubscriptionService(newFakeSubscriptionRepo())
			sub, err := svc.Create(context.Background(), "user-1", CreateInput{
				Name:          "Netflix",
				Price:         15.99,
				Frequency:     tc.frequency,
				Category:      "entertainment",
				PaymentMethod: "credit card",
				StartDate:     start,
			})
			require.NoError(t, err)
			assert.Equal(t, start.AddDate(0, 0, tc.days), sub.RenewalDate)
		})
	}
}

func TestSubscriptionCreate_KeepsProvidedRenewalDate(t *testing.T) {
	svc := newSubscriptionService(newFakeSubscriptionRepo())
	start := time.Now().AddDate(0, 0, -1)
	renewal := start.AddDate(0, 2, 0)

	sub, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Gym",
		Price:         49,
		Frequency:     entity.FrequencyMonthly,
		Category:      "health",
		PaymentMethod: "debit card",
		StartDate:     start,
		RenewalDate:   renewal,
	})
	require.NoError(t, err)
	assert.Equal(t, renewal, sub.RenewalDate)
	assert.Equal(t, entity.StatusActive, sub.Status)
}

func TestSubscriptionCreate_ExpiresWhenRenewalPassed(t *testing.T) {
	svc := newSubscriptionService(newFakeSubscriptionRepo())
	start := time.Now().AddDate(-1, 0, 0)

	sub, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Old Paper",
		Price:         5,
		Frequency:     entity.FrequencyMonthly,
		Category:      "news",
		PaymentMethod: "credit card",
		StartDate:     start,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExpired, sub.Status)
}

func TestSubscriptionCreate_DefaultsCurrency(t *testing.T) {
	svc := newSubscriptionService(newFakeSubscriptionRepo())

	sub, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Duolingo",
		Price:         10,
		Frequency:     entity.FrequencyMonthly,
		Category:      "education",
		PaymentMethod: "credit card",
		StartDate:     time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CurrencyAUD, sub.Currency)
}

func TestSubscriptionGet_OwnershipHidesForeignRecords(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := newSubscriptionService(repo)

	sub, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Netflix",
		Price:         15.99,
		Frequency:     entity.FrequencyMonthly,
		Category:      "entertainment",
		PaymentMethod: "credit card",
		StartDate:     time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "user-1", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	// another user sees not-found, indistinguishable from absence
	_, err = svc.Get(context.Background(), "user-2", sub.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound), "got %v", err)
}

func TestSubscriptionCancel(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := newSubscriptionService(repo)

	sub, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Netflix",
		Price:         15.99,
		Frequency:     entity.FrequencyMonthly,
		Category:      "entertainment",
		PaymentMethod: "credit card",
		StartDate:     time.Now().AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	canceled, err := svc.Cancel(context.Background(), "user-1", sub.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, canceled.Status)

	stored, err := repo.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCanceled, stored.Status)
}

func TestSubscriptionList_WithoutCache(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := newSubscriptionService(repo)

	for _, name := range []string{"Netflix", "Spotify"} {
		_, err := svc.Create(context.Background(), "user-1", CreateInput{
			Name:          name,
			Price:         10,
			Frequency:     entity.FrequencyMonthly,
			Category:      "entertainment",
			PaymentMethod: "credit card",
			StartDate:     time.Now().AddDate(0, 0, -1),
		})
		require.NoError(t, err)
	}

	subs, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, subs, 2)

	other, err := svc.List(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSubscriptionSearch_WithoutES(t *testing.T) {
	svc := newSubscriptionService(newFakeSubscriptionRepo())

	hits, err := svc.Search(context.Background(), "user-1", "netflix", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
