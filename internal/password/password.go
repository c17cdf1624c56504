// Package password derives and verifies scrypt credentials stored as
// "salt:derivedKeyHex".
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

var (
	ErrInvalidHash = errors.New("invalid password hash format")
	ErrMismatch    = errors.New("password does not match")
)

const (
	saltLength = 16
	keyLength  = 64

	costN = 16384
	costR = 8
	costP = 1
)

func Hash(password string) (string, error) {
	raw := make([]byte, saltLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key, err := derive(password, salt)
	if err != nil {
		return "", err
	}

	return salt + ":" + hex.EncodeToString(key), nil
}

// Verify returns nil when password matches the stored hash.
func Verify(password, encoded string) error {
	salt, keyHex, ok := strings.Cut(encoded, ":")
	if !ok || salt == "" || keyHex == "" {
		return ErrInvalidHash
	}

	want, err := hex.DecodeString(keyHex)
	if err != nil {
		return ErrInvalidHash
	}

	got, err := derive(password, salt)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

// The hex salt string itself is the KDF salt, matching existing stored credentials.
func derive(password, salt string) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), []byte(salt), costN, costR, costP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("scrypt: %w", err)
	}
	return key, nil
}
