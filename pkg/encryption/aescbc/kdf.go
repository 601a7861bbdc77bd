package aescbc

import (
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	Iterations = 390000
	KeyLen     = 32
	SaltLen    = 16
	IVLen      = 16
)

// DeriveKey derives the AES key from a password with PBKDF2-HMAC-SHA256.
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeyLen, sha256.New)
}

// DeriveKeyLegacy derives with HMAC-SHA1, the digest archives written by
// older releases were sealed with.
func DeriveKeyLegacy(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeyLen, sha1.New)
}
