package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeys(t *testing.T) *JwtKeys {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return &JwtKeys{Private: key, Public: &key.PublicKey}
}

func TestCreateJwt_RoundTrip(t *testing.T) {
	keys := newTestKeys(t)

	token, err := CreateJwt(JwtConfig{Member: 42, Email: "admin@example.com", Subject: SubjectAccess, ExpireIn: time.Hour, Keys: keys})
	require.NoError(t, err)

	claims, err := ParseJwt(token, SubjectAccess, keys.Public)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.Id)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, SubjectAccess, claims.Subject)
	assert.Empty(t, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJwt_Rejects(t *testing.T) {
	keys := newTestKeys(t)
	other := newTestKeys(t)

	expired, err := CreateJwt(JwtConfig{Member: 1, Subject: SubjectAccess, ExpireIn: -time.Minute, Keys: keys})
	require.NoError(t, err)

	reset, err := CreateJwt(JwtConfig{Member: 1, Subject: SubjectReset, ExpireIn: time.Hour, Keys: keys})
	require.NoError(t, err)

	foreign, err := CreateJwt(JwtConfig{Member: 1, Subject: SubjectAccess, ExpireIn: time.Hour, Keys: other})
	require.NoError(t, err)

	tests := map[string]string{
		"expired":       expired,
		"wrong subject": reset,
		"wrong key":     foreign,
		"malformed":     "not.a.token",
		"empty":         "",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJwt(token, SubjectAccess, keys.Public)
			assert.Error(t, err)
		})
	}
}

func TestCreateJwt_RequiresPrivateKey(t *testing.T) {
	keys := newTestKeys(t)

	_, err := CreateJwt(JwtConfig{Member: 1, Subject: SubjectAccess, ExpireIn: time.Hour, Keys: &JwtKeys{Public: keys.Public}})
	assert.ErrorIs(t, err, ErrMissingPrivateKey)
}

func TestParseJwtKeys(t *testing.T) {
	keys := newTestKeys(t)

	private := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(keys.Private)})
	publicDer, err := x509.MarshalPKIXPublicKey(keys.Public)
	require.NoError(t, err)
	public := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDer})

	t.Run("public only", func(t *testing.T) {
		parsed, err := ParseJwtKeys(base64.StdEncoding.EncodeToString(public), "")
		require.NoError(t, err)
		assert.Nil(t, parsed.Private)
		assert.True(t, keys.Public.Equal(parsed.Public))
	})

	t.Run("private derives public", func(t *testing.T) {
		parsed, err := ParseJwtKeys("", base64.StdEncoding.EncodeToString(private))
		require.NoError(t, err)
		assert.NotNil(t, parsed.Private)
		assert.True(t, keys.Public.Equal(parsed.Public))
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := ParseJwtKeys("", "")
		assert.Error(t, err)
	})
}
