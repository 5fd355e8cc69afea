// Package session holds the stateless session store: the cookie carries an
// HS256-signed token naming the user id, so nothing is kept server-side.
package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/organmatch/matching-service/internal/core/domain"
)

const issuer = "organmatch"

// JWTStore implements ports.SessionStore with signed tokens. Tokens carry no
// expiry; a session ends when the cookie is cleared.
type JWTStore struct {
	secret []byte
	now    func() time.Time
}

func NewJWTStore(secret []byte) *JWTStore {
	return &JWTStore{secret: secret, now: time.Now}
}

func (s *JWTStore) Issue(_ context.Context, userID int64) (string, error) {
	claims := jwt.RegisteredClaims{
		Issuer:   issuer,
		Subject:  strconv.FormatInt(userID, 10),
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTStore) Resolve(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrUnauthenticated
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil || !parsed.Valid {
		return 0, domain.ErrUnauthenticated
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}

// Revoke is a no-op: there is no server-side state to drop.
func (s *JWTStore) Revoke(_ context.Context, _ string) error {
	return nil
}

// RandomSecret returns a fresh 32-byte signing key. Sessions signed with it
// do not survive a restart.
func RandomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("session secret: %w", err)
	}
	return b, nil
}
