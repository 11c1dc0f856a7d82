package mailer

import "time"

// ReminderJob is the JSON payload put on the RabbitMQ queue when a
// subscription is created. The reminder worker turns it into an email.
type ReminderJob struct {
	To           string    `json:"to"`
	UserName     string    `json:"user_name"`
	Subscription string    `json:"subscription"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	RenewalDate  time.Time `json:"renewal_date"`
}
