// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shanhai/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that an issued token verifies back to its session.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("secret", "test")
	require.NoError(t, err)

	token, err := service.Issue("session-1", time.Hour)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
	assert.Equal(t, "session-1", claims.Subject)
}

/*
TestTokenService_Rejects covers the failure modes of verification.
*/
func TestTokenService_Rejects(t *testing.T) {
	service, err := sec.NewTokenService("secret", "test")
	require.NoError(t, err)

	other, err := sec.NewTokenService("other-secret", "test")
	require.NoError(t, err)

	foreignIssuer, err := sec.NewTokenService("secret", "elsewhere")
	require.NoError(t, err)

	expired, err := service.Issue("session-1", -time.Minute)
	require.NoError(t, err)

	wrongKey, err := other.Issue("session-1", time.Hour)
	require.NoError(t, err)

	wrongIssuer, err := foreignIssuer.Issue("session-1", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expired},
		{"wrong_key", wrongKey},
		{"wrong_issuer", wrongIssuer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestNewTokenService_EmptySecret ensures an unsigned configuration is refused.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "test")
	assert.Error(t, err)
}
