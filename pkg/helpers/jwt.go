package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cars-api/internal/apperr"
)

// Issuer embedded in every token and required back on validation.
const TokenIssuer = "cars-api"

// The original deployment computed expiry on a Brasília wall clock; the
// resulting instant is the same, but the offset is kept for parity.
var issuanceZone = time.FixedZone("-03:00", -3*60*60)

// JWTManager issues and validates the service's bearer tokens. Tokens are
// HS256-signed, carry the user's login as subject, and live for TTL from
// issuance. There is no refresh and no revocation: a signed token stays
// valid for its full window even if the account changes afterwards.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl}
}

// Generate signs a token for the user identified by login.
func (m *JWTManager) Generate(login string) (string, time.Time, error) {
	exp := time.Now().In(issuanceZone).Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    TokenIssuer,
		Subject:   login,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, apperr.ErrTokenCreation
	}
	return s, exp, nil
}

// Validate checks signature, issuer, and expiry, and returns the subject
// login. Any verification failure returns the empty string: callers must
// treat an invalid token exactly like an absent one.
func (m *JWTManager) Validate(tokenStr string) string {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil || !tkn.Valid {
		return ""
	}
	return claims.Subject
}
