package stubserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "gridboard-stub"

var errEmptySubject = errors.New("empty subject")

// issueToken creates a signed HMAC-SHA256 bearer token for userID valid for
// ttl from now.
func issueToken(userID string, ttl time.Duration, signKey []byte) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// parseToken verifies signature, issuer and expiry and returns the user ID
// from the subject claim. Expired tokens surface jwt.ErrTokenExpired so the
// handler can emit the explicit expiry detail.
func parseToken(tokenString string, signKey []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return signKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("get subject: %w", err)
	}
	if subject == "" {
		return "", errEmptySubject
	}
	return subject, nil
}
