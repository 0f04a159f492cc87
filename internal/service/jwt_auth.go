package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims Supabase 签发的访问令牌声明
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTSessionProvider 使用项目 JWT 密钥在本地校验访问令牌，不访问网络
type JWTSessionProvider struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTSessionProvider 创建本地 JWT 会话提供方
func NewJWTSessionProvider(secret string) *JWTSessionProvider {
	return &JWTSessionProvider{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// GetUser 解析令牌并返回其中的用户
func (p *JWTSessionProvider) GetUser(_ context.Context, token string) (*SessionUser, error) {
	claims := &accessClaims{}
	parsed, err := p.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: 令牌缺少用户标识", ErrUnauthorized)
	}

	return &SessionUser{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}
