package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateUserID generates an opaque user identifier in the format user_XXXX...
func GenerateUserID() (string, error) {
	bytes := make([]byte, 12)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return "user_" + hex.EncodeToString(bytes), nil
}
