package authUtils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/lavanyasahu/CitiFix/models"
)

// Tokens expire after 72 hours.
const tokenTTL = 72 * time.Hour

// TokenClaims is what we embed in and read back from a bearer token.
type TokenClaims struct {
	UserID string
	Role   models.Role
}

// GenerateToken signs a JWT carrying the user id and role.
func GenerateToken(secret string, userID string, role models.Role) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates a bearer token and extracts its claims.
func ParseToken(secret string, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid authorization token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, errors.New("invalid token claims")
	}
	role, _ := claims["role"].(string)

	return &TokenClaims{UserID: userID, Role: models.Role(role)}, nil
}
