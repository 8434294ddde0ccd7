// Package crypto implements server-side password hashing and policy checks.
package crypto

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the rest of the platform was seeded with.
const bcryptCost = 10

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(h), err
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordPolicy validates the account password policy: quote characters
// are rejected outright, and the password must contain at least two of the
// three groups {letters, digits, symbols}.
func CheckPasswordPolicy(password string) bool {
	if strings.ContainsAny(password, `"'`) {
		return false
	}
	var letters, digits, symbols bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letters = true
		case r >= '0' && r <= '9':
			digits = true
		default:
			symbols = true
		}
	}
	groups := 0
	for _, ok := range []bool{letters, digits, symbols} {
		if ok {
			groups++
		}
	}
	return groups >= 2
}
