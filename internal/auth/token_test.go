package auth

import (
	"testing"
	"time"
	"traveldesk/travel-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	return &model.User{
		ID:     7,
		Name:   "Ana Torres",
		Email:  "ana@example.com",
		Role:   model.RoleRequester,
		Active: true,
	}
}

func testTokenService(now time.Time) *TokenService {
	return &TokenService{
		secret:   []byte("test-secret-key-0123456789abcdef"),
		issuer:   "travel-api",
		audience: "travel-api-clients",
		now:      func() time.Time { return now },
	}
}

func TestIssueAndValidate(t *testing.T) {
	now := time.Now()
	s := testTokenService(now)

	token, expiresAt, err := s.Issue(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour*24), expiresAt, time.Second)

	claims, err := s.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana Torres", claims.Name)
	assert.Equal(t, model.RoleRequester, claims.Role)
	assert.False(t, claims.IsApprover())
}

func TestValidateRejectsTampering(t *testing.T) {
	s := testTokenService(time.Now())

	token, _, err := s.Issue(testUser())
	require.NoError(t, err)

	// Flipping any single byte anywhere in the token must kill it
	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		tampered[i] ^= 0x01

		_, err := s.Validate(string(tampered))
		assert.ErrorIs(t, err, ErrInvalidToken, "byte %d", i)
	}
}

func TestValidateTimeWindow(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s := testTokenService(issuedAt)
	token, _, err := s.Issue(testUser())
	require.NoError(t, err)

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"at issuance", issuedAt, true},
		{"mid window", issuedAt.Add(time.Hour * 12), true},
		{"just before expiry", issuedAt.Add(time.Hour*24 - time.Second), true},
		{"exactly at expiry", issuedAt.Add(time.Hour * 24), false},
		{"after expiry", issuedAt.Add(time.Hour * 25), false},
		{"before issuance", issuedAt.Add(-time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testTokenService(tt.at)

			claims, err := v.Validate(token)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, 7, claims.UserID)
			} else {
				assert.ErrorIs(t, err, ErrInvalidToken)
			}
		})
	}
}

func TestValidateRejectsWrongIssuerAndAudience(t *testing.T) {
	now := time.Now()

	issuers := &TokenService{
		secret:   []byte("test-secret-key-0123456789abcdef"),
		issuer:   "someone-else",
		audience: "travel-api-clients",
		now:      func() time.Time { return now },
	}

	token, _, err := issuers.Issue(testUser())
	require.NoError(t, err)

	_, err = testTokenService(now).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	audiences := &TokenService{
		secret:   []byte("test-secret-key-0123456789abcdef"),
		issuer:   "travel-api",
		audience: "other-clients",
		now:      func() time.Time { return now },
	}

	token, _, err = audiences.Issue(testUser())
	require.NoError(t, err)

	_, err = testTokenService(now).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	now := time.Now()

	other := &TokenService{
		secret:   []byte("a-completely-different-secret"),
		issuer:   "travel-api",
		audience: "travel-api-clients",
		now:      func() time.Time { return now },
	}

	token, _, err := other.Issue(testUser())
	require.NoError(t, err)

	_, err = testTokenService(now).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := testTokenService(time.Now())

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := s.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
