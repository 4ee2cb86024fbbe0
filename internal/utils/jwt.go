package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens. The secret and
// expiry come from config; there is no package-level state.
type TokenService struct {
	secret []byte
	expire time.Duration
}

func NewTokenService(secret string, expire time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expire: expire}
}

// IssueToken creates a signed token carrying the user id as subject.
func (t *TokenService) IssueToken(userID string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("JWT secret is not configured")
	}
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expire)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// VerifyToken validates a token string and returns the subject user id.
// Expired and otherwise-invalid tokens fail with distinct errors.
func (t *TokenService) VerifyToken(tokenStr string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrTokenInvalid
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
