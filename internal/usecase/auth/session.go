package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/Debyte404/Obscura/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 60 * time.Minute

// Claims carries the authenticated user id.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionUseCase verifies the bearer tokens issued by the identity provider.
// Tokens are HS256 signed with a shared secret.
type SessionUseCase struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionUseCase(secret string, ttl time.Duration) *SessionUseCase {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &SessionUseCase{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a token for userID. Used by seeding and tests.
func (uc *SessionUseCase) IssueToken(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, domain.ErrUnauthenticated
	}
	now := uc.now()
	expiresAt := now.Add(uc.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	tokenString, err := token.SignedString(uc.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// VerifyToken verifies JWT token and returns user ID
func (uc *SessionUseCase) VerifyToken(_ context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", domain.ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return uc.secret, nil
	}, jwt.WithTimeFunc(uc.now), jwt.WithExpirationRequired())

	if err != nil || !token.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}
