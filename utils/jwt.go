package utils

import (
	"errors"
	"time"

	"coolrentals/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const devSecret = "coolrentals-dev-secret"

// TokenClaims are the facts carried by an admin bearer token.
type TokenClaims struct {
	Subject   string
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	// Tests and tools that skip LoadConfig sign with a fixed development key.
	return []byte(devSecret)
}

// GenerateToken creates a signed HS256 token for subject that expires after duration.
func GenerateToken(subject, email string, duration time.Duration) (string, *TokenClaims, error) {
	now := time.Now()
	claims := &TokenClaims{
		Subject:   subject,
		Email:     email,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(duration),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.Subject,
		"email": claims.Email,
		"jti":   claims.TokenID,
		"iat":   now.Unix(),
		"exp":   claims.ExpiresAt.Unix(),
	})
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken verifies the signature and expiry of tokenString and returns its claims.
func ValidateToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	claims := &TokenClaims{Subject: sub}
	claims.Email, _ = mc["email"].(string)
	claims.TokenID, _ = mc["jti"].(string)
	if exp, ok := mc["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	return claims, nil
}
