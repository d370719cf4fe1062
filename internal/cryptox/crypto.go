// Package cryptox implements password hashing for user accounts.
//
// Passwords are never stored. On registration the server draws a random
// salt, derives a key with argon2id, and keeps the SHA-256 of that key
// (the verifier). Login re-derives and compares in constant time.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const SaltSize = 32

// DeriveKey stretches a password with argon2id using fixed cost parameters.
func DeriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// MakeVerifier returns the value stored in place of the password.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// VerifyPassword reports whether password+salt reproduce the stored verifier.
// The comparison is constant-time.
func VerifyPassword(password, salt, verifier []byte) bool {
	candidate := MakeVerifier(DeriveKey(password, salt))
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
