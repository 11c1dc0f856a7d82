package helpers

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt with the given
// cost. The salt is generated per call and embedded in the returned string,
// so the secret is self-describing for later verification.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword re-derives the digest from plain using the salt and cost
// embedded in hash and compares in constant time. A mismatch is (false, nil);
// a non-nil error means the stored hash itself is not a valid bcrypt secret.
func VerifyPassword(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
