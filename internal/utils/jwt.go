package utils // package utils provides token creation and password hashing helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AccessToken is a signed HS256 JWT together with its expiry. The Token
// field is the serialized string handed to the client and persisted in
// the tokens table; Exp is the UTC expiration time written alongside it.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrNoSubject is returned by ParseAccessToken when a structurally valid
// token carries no subject claim.
var ErrNoSubject = errors.New("token has no subject claim")

// NewAccessToken builds and signs an HS256 JWT bound to a username.
// The subject claim holds the username (a stable, non-secret identifier),
// exp is now + ttlMin minutes and iat is the issue time, both in UTC.
func NewAccessToken(secret, username string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub": username,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and structure of a bearer token
// and returns the subject claim. The signing method must be HMAC; tokens
// signed with anything else are rejected. A verifiable token without a
// subject yields ErrNoSubject. Claim validation is skipped here: expiry
// is enforced against the tokens table row, not the exp claim, so that
// an expired session is reported as expired rather than unverifiable.
func ParseAccessToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !tok.Valid {
		if err == nil {
			err = jwt.ErrTokenUnverifiable
		}
		return "", err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrNoSubject
	}
	return sub, nil
}
