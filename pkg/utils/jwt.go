package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// 令牌角色
const (
	RoleUser    = "user"
	RolePartner = "partner"
)

const issuer = "yumzy"

// Claims 自定义JWT Claims
type Claims struct {
	SubjectID string `json:"sub_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager 签发与校验 JWT
type TokenManager struct {
	secret []byte
	expire time.Duration
}

func NewTokenManager(secret string, expire time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), expire: expire}
}

// GenerateToken 生成JWT Token
func (m *TokenManager) GenerateToken(subjectID, role string) (string, *time.Time, error) {
	now := time.Now()
	expireTime := now.Add(m.expire)

	claims := Claims{
		SubjectID: subjectID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tokenClaims.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return token, &expireTime, nil
}

// ParseToken 验证JWT Token
func (m *TokenManager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenInvalidClaims
}

// ErrWrongRole 令牌角色不匹配
var ErrWrongRole = errors.New("token role mismatch")

// ParseTokenForRole 验证JWT Token 并检查角色
func (m *TokenManager) ParseTokenForRole(tokenString, role string) (*Claims, error) {
	claims, err := m.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Role != role {
		return nil, ErrWrongRole
	}
	return claims, nil
}
