package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/contractdesk/contract-management-api/internal/constants"
)

// GenerateInviteToken generates the bearer token embedded in invite links.
// 32 random bytes hex-encoded; the token is the sole credential for acceptance.
func GenerateInviteToken() (string, error) {
	bytes := make([]byte, constants.InviteTokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
