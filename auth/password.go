// Package auth contains the credential-verification building blocks: bcrypt
// password hashing and the HTTP Basic authentication middleware that gates
// the post endpoints. There are no sessions and no tokens; every request
// re-authenticates against the stored hash.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. Fixed at 10 (bcrypt's default); the
// salt is generated per call and embedded in the output, so verification is
// self-contained.
const hashCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when a caller asks to hash an empty password.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword computes a salted one-way hash of plaintext. It fails only on
// invalid input: an empty password, or one exceeding bcrypt's 72-byte limit.
func HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext resolves to hashedValue. A
// mismatch returns false, never an error; bcrypt's comparison is constant
// time with respect to the content.
func VerifyPassword(plaintext, hashedValue string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedValue), []byte(plaintext)) == nil
}
