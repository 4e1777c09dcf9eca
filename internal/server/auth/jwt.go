// Package auth issues and verifies the short-lived access tokens handed out
// at login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iulianbarbu/solana-social-dapp/internal/common"
	"github.com/iulianbarbu/solana-social-dapp/internal/pubkey"
)

// Claims carries the identity the token was issued to in the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for p valid for validity.
func GenerateToken(p pubkey.Pubkey, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})
	return token.SignedString(secretKey)
}

// PubkeyFromToken returns the subject of a valid token. Expired tokens map
// to common.ErrTokenExpired, everything else to common.ErrInvalidToken.
func PubkeyFromToken(tokenString string, secretKey []byte) (pubkey.Pubkey, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return pubkey.Pubkey{}, common.ErrTokenExpired
		}
		return pubkey.Pubkey{}, common.ErrInvalidToken
	}
	if !token.Valid {
		return pubkey.Pubkey{}, common.ErrInvalidToken
	}

	p, err := pubkey.Parse(claims.Subject)
	if err != nil {
		return pubkey.Pubkey{}, common.ErrInvalidToken
	}
	return p, nil
}
