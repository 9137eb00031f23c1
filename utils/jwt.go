package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload carried by the session cookie.
type SessionClaims struct {
	StaffID uuid.UUID `json:"staff_id"`
	Email   string    `json:"email"`
	Job     string    `json:"job"`
	jwt.RegisteredClaims
}

// SessionDuration is how long a login session stays valid.
const SessionDuration = 12 * time.Hour

func getJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("FATAL: JWT_SECRET environment variable is not set. Refusing to start with an insecure configuration.")
	}
	return secret
}

// GenerateSessionToken signs a session token for a staff account.
func GenerateSessionToken(staffID uuid.UUID, email, job string) (string, error) {
	secret := getJWTSecret()

	claims := SessionClaims{
		StaffID: staffID,
		Email:   email,
		Job:     job,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fruitdist-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken parses and verifies a session token.
func ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	secret := getJWTSecret()

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
