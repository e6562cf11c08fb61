package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	externalIDMin = 100000
	externalIDMax = 999999
)

// GenerateSecureRandomString generates a cryptographically secure random string
// of the specified byte length, hex encoded. lengthInBytes=32 yields a
// 64-character string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateExternalID draws a random candidate transfer number. Uniqueness is
// not checked here: the account repository retries on a unique violation.
func GenerateExternalID() (int64, error) {
	span := big.NewInt(externalIDMax - externalIDMin + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("failed to draw random external id: %w", err)
	}
	return n.Int64() + externalIDMin, nil
}
