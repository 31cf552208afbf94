// Package jwt valida los tokens emitidos por el servicio de autenticación externo.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos por el servicio de documentos.
const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleViewer     = "viewer"
)

// Claims claims estándar más la identidad del usuario. El negocio viaja en company_id
// (nombre heredado del servicio de autenticación).
type Claims struct {
	jwt.RegisteredClaims
	UserID     string `json:"user_id"`
	BusinessID string `json:"company_id"`
	Role       string `json:"role"`
}

// Identity quién hace la petición y sobre qué negocio.
type Identity struct {
	UserID     string
	BusinessID string
	Role       string
}

// Generate firma un token HS256. Lo usan los tests y las herramientas locales;
// en producción los tokens llegan ya emitidos.
func Generate(secret, issuer string, id Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:     id.UserID,
		BusinessID: id.BusinessID,
		Role:       id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma, expiración y (si se indica) emisor.
// Un token sin negocio no sirve para este servicio y se rechaza.
func Parse(secret, issuer, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("claims inválidos")
	}
	if claims.BusinessID == "" {
		return Identity{}, errors.New("token sin company_id")
	}
	return Identity{UserID: claims.UserID, BusinessID: claims.BusinessID, Role: claims.Role}, nil
}
