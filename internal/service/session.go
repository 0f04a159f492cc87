package service

import (
	"context"
	"errors"
	"strings"

	"github.com/user/blog/internal/utils"
)

// ErrUnauthorized 令牌缺失、无效或已过期
var ErrUnauthorized = errors.New("未授权")

// SessionUser 会话提供方返回的用户
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SessionProvider 根据访问令牌查询当前用户。
// 令牌无效时返回包装了 ErrUnauthorized 的错误，其他错误表示提供方不可用。
type SessionProvider interface {
	GetUser(ctx context.Context, token string) (*SessionUser, error)
}

// Decision 授权结果
type Decision struct {
	Authorized bool
	Reason     string
	User       *SessionUser
}

// Gate 管理接口的授权门
type Gate struct {
	provider SessionProvider
}

// NewGate 创建授权门
func NewGate(provider SessionProvider) *Gate {
	return &Gate{provider: provider}
}

// Authorize 校验请求头中的令牌，接受裸令牌或 "Bearer <token>"
func (g *Gate) Authorize(ctx context.Context, header string) Decision {
	token := bearerToken(header)
	if token == "" {
		return Decision{Reason: "缺少访问令牌"}
	}

	user, err := g.provider.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Decision{Reason: err.Error()}
		}
		utils.LogError(err, "会话校验失败")
		return Decision{Reason: "无法校验访问令牌"}
	}

	return Decision{Authorized: true, User: user}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}
