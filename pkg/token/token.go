// Package token issues and verifies the JWTs that stand in for
// sessions. Tokens are held client-side; the store never sees them.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/models"
)

const expiration = 24 * time.Hour

type Claims struct {
	UserID   string          `json:"user_id"`
	UserType models.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Generate signs a token for the given user.
func (m *Manager) Generate(userID string, userType models.UserType) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses the token and returns its claims, or NOT_AUTHENTICATED
// if the token is missing, malformed or expired.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, apperrors.NotAuthenticated("you are not signed in")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.NotAuthenticated("invalid or expired session, please sign in again")
	}
	if claims.UserID == "" {
		return nil, apperrors.NotAuthenticated("invalid token payload")
	}
	return claims, nil
}
