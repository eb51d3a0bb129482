package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenDurata is the lifetime of an access token. There is no server-side
// session store or revocation list; logout is client-side token deletion.
const TokenDurata = 30 * 24 * time.Hour

// GenerateJWT signs a stateless bearer token carrying the user id.
func GenerateJWT(userID uint, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(TokenDurata).Unix(),
	})
	return token.SignedString(secret)
}

// ParseJWT validates an HS256 token and extracts the user id claim.
func ParseJWT(tokenString string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("token non valido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("token non valido")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return 0, errors.New("token non valido")
	}
	return uint(id), nil
}
