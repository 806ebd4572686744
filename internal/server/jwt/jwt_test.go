package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(Config{
		AccessSecret:    []byte("access-test-secret"),
		RefreshSecret:   []byte("refresh-test-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccess("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)

	// Срок действия access токена — 15 минут
	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiry, 5*time.Second)
}

func TestIssueRefresh_RoundTrip(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueRefresh("user-42")
	require.NoError(t, err)

	claims, err := svc.ParseRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)

	// Срок действия refresh токена — 7 дней
	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, 5*time.Second)
}

func TestSecretsAreIsolated(t *testing.T) {
	svc := newTestService()

	access, err := svc.IssueAccess("user-42")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("user-42")
	require.NoError(t, err)

	// Токен, подписанный одним секретом, не валидируется другим
	_, err = svc.ParseRefresh(access)
	assert.Error(t, err)
	_, err = svc.ParseAccess(refresh)
	assert.Error(t, err)
}

func TestParseAccess_Expired(t *testing.T) {
	svc := NewService(Config{
		AccessSecret:    []byte("access-test-secret"),
		RefreshSecret:   []byte("refresh-test-secret"),
		AccessTokenTTL:  -1 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})

	token, err := svc.IssueAccess("user-42")
	require.NoError(t, err)

	_, err = svc.ParseAccess(token)
	assert.Error(t, err)
}

func TestParseAccess_Garbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ParseAccess("not.a.token")
	assert.Error(t, err)
	_, err = svc.ParseAccess("")
	assert.Error(t, err)
}

func TestParseAccess_RejectsNoneAlgorithm(t *testing.T) {
	svc := newTestService()

	token := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{UserID: "user-42"})
	signed, err := token.SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ParseAccess(signed)
	assert.Error(t, err)
}

func TestClaims_IDClaimName(t *testing.T) {
	svc := newTestService()

	token, err := svc.IssueAccess("user-42")
	require.NoError(t, err)

	// Идентификатор пользователя лежит в claim "id"
	parsed, _, err := gojwt.NewParser().ParseUnverified(token, gojwt.MapClaims{})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-42", claims["id"])
}
