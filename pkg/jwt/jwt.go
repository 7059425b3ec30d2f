package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos por la API.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// ErrWrongTokenType se devuelve cuando se presenta un refresh token donde se espera un access token o viceversa.
var ErrWrongTokenType = errors.New("jwt: tipo de token incorrecto")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que RequireRole decida sin consultar la DB; los
// permisos finos sí se consultan en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id,omitempty"`
	Role      string `json:"role,omitempty"` // "entrepreneur" | "employee" | ""
	TokenType string `json:"token_type"`
}

// Identity datos del usuario autenticado extraídos de un token válido.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string
}

// Issuer firma tokens de acceso y de refresco con la misma clave.
type Issuer struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Pair par access/refresh emitido en el login.
type Pair struct {
	Access  string
	Refresh string
}

// IssuePair genera access y refresh token para la identidad dada.
func (i Issuer) IssuePair(id Identity) (Pair, error) {
	access, err := generate(i.Secret, i.Issuer, TypeAccess, id, i.AccessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := generate(i.Secret, i.Issuer, TypeRefresh, id, i.RefreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// IssueAccess genera solo un access token.
func (i Issuer) IssueAccess(id Identity) (string, error) {
	return generate(i.Secret, i.Issuer, TypeAccess, id, i.AccessTTL)
}

// Generate genera un access token firmado que incluye userID, companyID y role.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	id := Identity{UserID: userID, CompanyID: companyID, Role: role}
	return generate(secret, issuer, TypeAccess, id, time.Duration(expMinutes)*time.Minute)
}

func generate(secret, issuer, tokenType string, id Identity, ttl time.Duration) (string, error) {
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
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Role:      id.Role,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un access token y devuelve userID, companyID y role.
// Retorna error si el token es inválido, expirado, de otro tipo o tiene firma incorrecta.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	id, err := ParseType(secret, tokenString, TypeAccess)
	if err != nil {
		return "", "", "", err
	}
	return id.UserID, id.CompanyID, id.Role, nil
}

// ParseType valida el token y exige el tipo indicado.
func ParseType(secret, tokenString, tokenType string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	if claims.TokenType != tokenType {
		return Identity{}, ErrWrongTokenType
	}
	return Identity{UserID: claims.UserID, CompanyID: claims.CompanyID, Role: claims.Role}, nil
}
