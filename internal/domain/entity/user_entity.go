package entity

import (
	"time"
)

// User is the identity record for an account. Email is unique as stored
// (the database constraint is authoritative). Password holds the bcrypt
// secret, never the plaintext; handlers strip it from every response body.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}
