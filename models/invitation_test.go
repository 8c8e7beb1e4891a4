package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvitationCode(t *testing.T) {
	a, err := GenerateInvitationCode()
	require.NoError(t, err)
	b, err := GenerateInvitationCode()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestInvitationIsValid(t *testing.T) {
	fresh := Invitation{ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, fresh.IsValid())

	used := Invitation{Used: true, ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, used.IsValid())

	expired := Invitation{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.False(t, expired.IsValid())
}
