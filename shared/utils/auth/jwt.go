package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gente-backend/shared/database/models"
)

// ErrInvalidToken is returned for any token that fails signature, structure
// or expiry checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carried by every access token.
type Claims struct {
	UserID uint        `json:"user_id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies access tokens with an injected HS256 secret.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager builds a manager from the configured signing secret and
// token lifetime.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	if expiry <= 0 {
		expiry = 168 * time.Hour
	}
	return &JWTManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Generate issues a signed token for the given account.
func (m *JWTManager) Generate(userID uint, email string, role models.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses the token and returns its claims. Signature, signing
// method and expiry are all enforced.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// Expiry returns the configured token lifetime.
func (m *JWTManager) Expiry() time.Duration {
	return m.expiry
}
