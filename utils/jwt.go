package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"frontdesk/config"
)

func secretKey() []byte {
	secret := config.AppConfig.AdapterJWTSecret
	if secret == "" {
		secret = "frontdesk-dev-secret"
	}
	return []byte(secret)
}

// GenerateAdapterToken creates a signed JWT for a channel adapter, scoped to
// one tenant. The token expires after the specified duration.
func GenerateAdapterToken(tenantID, channel string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":     tenantID,
		"channel": channel,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// TenantIDFromToken extracts the tenant id (subject) from a valid adapter
// token.
func TenantIDFromToken(tokenString string) (string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
