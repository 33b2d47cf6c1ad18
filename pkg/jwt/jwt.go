package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token emitido por el API remoto tras /auth/verify-code.
// El API usa "roles" (string, ej. "ROLE_ADMIN"); "role" se acepta como alias.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Roles string `json:"roles,omitempty"`
	Role  string `json:"role,omitempty"`
}

// EffectiveRole devuelve el rol presente en los claims.
func (c *Claims) EffectiveRole() string {
	if c.Roles != "" {
		return c.Roles
	}
	return c.Role
}

// Generate firma un token HS256 con email y rol. El panel no emite tokens en producción;
// se usa en tests y para levantar un API simulado en desarrollo.
func Generate(secret, email, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
		Roles: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve email y rol del token.
func Parse(secret, tokenString string) (email, role string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vacío")
	}
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", "", fmt.Errorf("jwt: token vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	email = claims.Email
	if email == "" {
		email = claims.Subject
	}
	return email, claims.EffectiveRole(), nil
}
