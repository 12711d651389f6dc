// Package auth issues and verifies staff tokens and checks the staff PIN.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shashiranjanraj/pubqr/config"
	"golang.org/x/crypto/bcrypt"
)

// RoleStaff is the only role a token can carry.
const RoleStaff = "staff"

var ErrInvalidPIN = errors.New("invalid pin")

// Claims holds the typed JWT payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken signs an HS256 token for role, valid for TOKEN_TTL.
func GenerateToken(role string) (string, error) {
	return GenerateTokenAt(role, time.Now(), config.TokenTTL())
}

// GenerateTokenAt signs a token issued at now and expiring after ttl.
func GenerateTokenAt(role string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   role,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// CheckPIN compares pin with ADMIN_PIN_HASH when set, otherwise with
// ADMIN_PIN in constant time.
func CheckPIN(pin string) error {
	if hash := config.AdminPINHash(); hash != "" {
		if !CheckPassword(hash, pin) {
			return ErrInvalidPIN
		}
		return nil
	}
	want := config.AdminPIN()
	if pin == "" || subtle.ConstantTimeCompare([]byte(pin), []byte(want)) != 1 {
		return ErrInvalidPIN
	}
	return nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
