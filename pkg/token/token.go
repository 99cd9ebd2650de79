// Package token issues and validates the signed bearer tokens used by the API.
//
// Tokens are HS512 JWTs carrying the username as subject, the numeric user id and
// the user's role. They are stateless: a token stays valid until it expires.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinKeyBytes is the shortest accepted HS512 signing key (512 bits).
const MinKeyBytes = 64

// ErrInvalidToken is returned for every token that fails validation, whatever the cause.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in every issued token.
type Claims struct {
	UserID int64    `json:"userId"`
	Role   string   `json:"role"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Username returns the token subject.
func (c *Claims) Username() string {
	return c.Subject
}

type Service struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService builds a token service from a base64 encoded secret.
// A secret that does not decode or is shorter than MinKeyBytes is rejected.
func NewService(secret string, ttl time.Duration, opts ...Option) (*Service, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return nil, err
	}
	if len(key) < MinKeyBytes {
		return nil, fmt.Errorf("token: signing key is %d bytes, HS512 requires at least %d", len(key), MinKeyBytes)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: lifetime must be positive, got %s", ttl)
	}

	s := &Service{key: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("token: JWT_SECRET is not configured")
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		// tolerate unpadded secrets
		key, err = base64.RawStdEncoding.DecodeString(secret)
		if err != nil {
			return nil, fmt.Errorf("token: JWT_SECRET is not valid base64: %w", err)
		}
	}
	return key, nil
}

// Lifetime returns how long issued tokens stay valid.
func (s *Service) Lifetime() time.Duration {
	return s.ttl
}

// Issue signs a token for the given identity.
func (s *Service) Issue(username string, userID int64, role string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Roles:  []string{"ROLE_" + role},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(s.key)
}

// Validate checks signature and expiry. Malformed, expired, unsigned and
// unsupported tokens all yield ErrInvalidToken.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserID == 0 || claims.Role == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
