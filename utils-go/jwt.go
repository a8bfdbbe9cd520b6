package utils

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SubjectAccess = "access"
	SubjectReset  = "reset"
)

var ErrMissingPrivateKey = errors.New("jwt private key is not configured")

type JwtKeys struct {
	Public  *rsa.PublicKey
	Private *rsa.PrivateKey
}

// Claims carried by every token this system issues.
type Claims struct {
	Id    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type JwtConfig struct {
	Member   int64
	Email    string
	Subject  string
	ExpireIn time.Duration
	Keys     *JwtKeys
}

func CreateJwt(config JwtConfig) (string, error) {
	if config.Keys == nil || config.Keys.Private == nil {
		return "", ErrMissingPrivateKey
	}

	now := time.Now()
	claims := Claims{
		Id:    config.Member,
		Email: config.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   config.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.ExpireIn)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(config.Keys.Private)
}

// ParseJwt verifies signature, expiry and subject of a raw token.
func ParseJwt(rawToken string, subject string, key *rsa.PublicKey) (*Claims, error) {
	claims := new(Claims)
	tok, err := jwt.ParseWithClaims(rawToken, claims, func(jwtToken *jwt.Token) (interface{}, error) {
		if _, ok := jwtToken.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected method: %s", jwtToken.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithSubject(subject), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func ParsePublicKey(key string) (*rsa.PublicKey, error) {
	raw, err := DecodeBase64(key)
	if err != nil {
		return nil, fmt.Errorf("decode jwt public key: %w", err)
	}
	return jwt.ParseRSAPublicKeyFromPEM(raw)
}

func ParsePrivateKey(key string) (*rsa.PrivateKey, error) {
	raw, err := DecodeBase64(key)
	if err != nil {
		return nil, fmt.Errorf("decode jwt private key: %w", err)
	}
	return jwt.ParseRSAPrivateKeyFromPEM(raw)
}

// ParseJwtKeys builds the key pair from base64 encoded PEM blocks. The private
// key is optional for services that only verify tokens.
func ParseJwtKeys(publicKey, privateKey string) (*JwtKeys, error) {
	keys := new(JwtKeys)

	if privateKey != "" {
		private, err := ParsePrivateKey(privateKey)
		if err != nil {
			return nil, err
		}
		keys.Private = private
		keys.Public = &private.PublicKey
	}

	if publicKey != "" {
		public, err := ParsePublicKey(publicKey)
		if err != nil {
			return nil, err
		}
		keys.Public = public
	}

	if keys.Public == nil {
		return nil, errors.New("jwt public key is not configured")
	}

	return keys, nil
}
