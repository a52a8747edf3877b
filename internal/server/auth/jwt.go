// Package auth implements the credential primitives of the service:
// signed bearer tokens and password hashing.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/userservice/internal/common"
)

// DefaultTokenTTL is applied by Issue when the caller passes no lifetime.
const DefaultTokenTTL = 15 * time.Minute

// Claims carries the registered JWT claims; the user id travels in the
// standard "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256-signed bearer tokens. The secret
// and default lifetime are set once at construction and never mutated, so a
// single instance is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secretKey string, validityDuration time.Duration) *TokenService {
	if validityDuration <= 0 {
		validityDuration = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secretKey), ttl: validityDuration}
}

// Issue signs a token whose subject is the given user id. A non-positive ttl
// falls back to the service-configured lifetime.
func (s *TokenService) Issue(userID int64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate parses and verifies a token string and returns the user id from
// its subject claim. Failures map onto the sentinel errors in common:
// ErrTokenExpired, ErrInvalidToken (bad signature), and ErrMalformedToken
// (undecodable token or missing/garbled subject).
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, common.ErrMalformedToken
		default:
			return 0, common.ErrInvalidToken
		}
	}

	if !token.Valid {
		return 0, common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return 0, common.ErrMalformedToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, common.ErrMalformedToken
	}

	return userID, nil
}
