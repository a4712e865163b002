package serverutils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenClaims struct {
	UserID    uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// TokenManager signs and parses HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

func (m *TokenManager) Issue(userID uuid.UUID) (string, *TokenClaims, error) {
	claims := &TokenClaims{
		UserID:    userID,
		TokenID:   uuid.NewString(),
		ExpiresAt: time.Now().Add(m.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": claims.UserID.String(),
		"jti":     claims.TokenID,
		"exp":     claims.ExpiresAt.Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func (m *TokenManager) Parse(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	rawID, _ := mc["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.New("invalid claims")
	}
	jti, _ := mc["jti"].(string)

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, errors.New("invalid claims")
	}

	return &TokenClaims{UserID: userID, TokenID: jti, ExpiresAt: exp.Time}, nil
}
