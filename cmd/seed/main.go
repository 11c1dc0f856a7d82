package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/subtrackhq/subtrack/config"
	"github.com/subtrackhq/subtrack/pkg/helpers"
)

// Seeds a demo account with a couple of subscriptions for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@subtrack.dev"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name, avatar_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, hash, name, "").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	start := time.Now().AddDate(0, -1, 0)
	subs := []struct {
		name      string
		price     float64
		currency  string
		frequency string
		category  string
		renewal   time.Time
	}{
		{"Netflix", 15.99, "AUD", "monthly", "entertainment", start.AddDate(0, 0, 30)},
		{"The Economist", 249.00, "USD", "yearly", "news", start.AddDate(0, 0, 365)},
	}
	for _, s := range subs {
		if _, err := db.Exec(`
			INSERT INTO subscriptions
				(user_id, name, price, currency, frequency, category, payment_method, status, start_date, renewal_date)
			VALUES ($1, $2, $3, $4, $5, $6, 'credit card', 'active', $7, $8)
			ON CONFLICT DO NOTHING
		`, id, s.name, s.price, s.currency, s.frequency, s.category, start, s.renewal); err != nil {
			log.Fatalf("failed to seed subscription %s: %v", s.name, err)
		}
		fmt.Printf("seeded subscription: %s\n", s.name)
	}
}
