package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteToken(t *testing.T) {
	token, err := GenerateInviteToken()
	require.NoError(t, err)
	require.Len(t, token, 64)

	_, err = hex.DecodeString(token)
	require.NoError(t, err)

	other, err := GenerateInviteToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}
