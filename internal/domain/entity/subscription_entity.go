package entity

import "time"

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAUD Currency = "AUD"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

type SubscriptionStatus string

const (
	StatusActive   SubscriptionStatus = "active"
	StatusCanceled SubscriptionStatus = "canceled"
	StatusExpired  SubscriptionStatus = "expired"
)

// Subscription is a recurring payment tracked on behalf of one user.
// RenewalDate is derived from StartDate and Frequency when the client
// does not provide one.
type Subscription struct {
	ID            string
	UserID        string
	Name          string
	Price         float64
	Currency      Currency
	Frequency     Frequency
	Category      string
	PaymentMethod string
	Status        SubscriptionStatus
	StartDate     time.Time
	RenewalDate   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// renewalPeriods mirrors the billing cycle in days per frequency.
var renewalPeriods = map[Frequency]int{
	FrequencyDaily:   1,
	FrequencyWeekly:  7,
	FrequencyMonthly: 30,
	FrequencyYearly:  365,
}

// DeriveRenewal fills RenewalDate from StartDate and Frequency when unset,
// and flips Status to expired when the renewal date has already passed.
func (s *Subscription) DeriveRenewal(now time.Time) {
	if s.RenewalDate.IsZero() {
		if days, ok := renewalPeriods[s.Frequency]; ok {
			s.RenewalDate = s.StartDate.AddDate(0, 0, days)
		}
	}
	if !s.RenewalDate.IsZero() && s.RenewalDate.Before(now) {
		s.Status = StatusExpired
	}
}
