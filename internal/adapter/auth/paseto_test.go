package auth

import (
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/adapter/config"
	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoToken_RoundTrip(t *testing.T) {
	svc, err := New(&config.Auth{TokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := svc.CreateToken("ops")
	require.NoError(t, err)

	payload, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", payload.Subject)
}

func TestPasetoToken_Invalid(t *testing.T) {
	svc, err := New(&config.Auth{})
	require.NoError(t, err)
	other, err := New(&config.Auth{})
	require.NoError(t, err)

	token, err := other.CreateToken("ops")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.VerifyToken("garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestPasetoToken_ConfiguredKey(t *testing.T) {
	key := "707172737475767778797a7b7c7d7e7f808182838485868788898a8b8c8d8e8f"
	first, err := New(&config.Auth{AdminKey: key, TokenTTL: time.Hour})
	require.NoError(t, err)
	second, err := New(&config.Auth{AdminKey: key, TokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := first.CreateToken("ops")
	require.NoError(t, err)
	payload, err := second.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", payload.Subject)

	_, err = New(&config.Auth{AdminKey: "zz"})
	assert.Error(t, err)
}
