package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
)

const (
	tokenTypeAccess = "access"
	tokenTypeSSE    = "sse"
	sseTokenTTL     = 5 * time.Minute
)

type Service interface {
	GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error)
	GenerateSSEToken(claims auth.Claims) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (auth.Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
	revokedTokens             map[string]int64
	mu                        sync.RWMutex
	now                       func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:             make(map[string]int64),
		now:                       time.Now,
	}
}

func (j *JWTService) GenerateAccessToken(claims auth.Claims) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()
	_, token, err = j.tokenAuth.Encode(encodeClaims(claims, tokenTypeAccess, expiresAt))
	return token, expiresAt, err
}

// GenerateSSEToken issues a short-lived token for the event stream, which cannot carry headers.
func (j *JWTService) GenerateSSEToken(claims auth.Claims) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenTTL).Unix()
	_, token, err = j.tokenAuth.Encode(encodeClaims(claims, tokenTypeSSE, expiresAt))
	if err != nil {
		return "", 0, err
	}
	return token, int(sseTokenTTL.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (auth.Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return auth.Claims{}, err
	}
	tokenType, ok := token.Get("type")
	if !ok || tokenType != tokenTypeSSE {
		return auth.Claims{}, jwt.ErrInvalidJWT()
	}
	return ClaimsFromMap(token.PrivateClaims(), token.Subject())
}

// RevokeToken remembers token until its own expiry. Entries whose expiry has passed are dropped,
// since verification already rejects those tokens.
func (j *JWTService) RevokeToken(token string) {
	expiresAt := j.now().Add(j.accessTokenExpirationTime).Unix()
	if parsed, err := jwt.ParseInsecure([]byte(token)); err == nil && !parsed.Expiration().IsZero() {
		expiresAt = parsed.Expiration().Unix()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

func encodeClaims(c auth.Claims, tokenType string, expiresAt int64) map[string]interface{} {
	claims := map[string]interface{}{
		"sub":  c.Subject,
		"role": string(c.Role),
		"type": tokenType,
		"exp":  expiresAt,
	}
	if c.EmployeeID != "" {
		claims["employee_id"] = c.EmployeeID
	}
	return claims
}

// ClaimsFromMap reads the identity claims of a decoded token.
func ClaimsFromMap(m map[string]interface{}, subject string) (auth.Claims, error) {
	role, _ := m["role"].(string)
	if role != string(auth.RoleAdmin) && role != string(auth.RoleEmployee) {
		return auth.Claims{}, jwt.ErrInvalidJWT()
	}
	employeeID, _ := m["employee_id"].(string)
	if subject == "" {
		subject, _ = m["sub"].(string)
	}
	return auth.Claims{Subject: subject, Role: auth.Role(role), EmployeeID: employeeID}, nil
}
