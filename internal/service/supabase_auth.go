package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SupabaseSessionProvider 通过 Supabase Auth 的 /auth/v1/user 接口校验令牌
type SupabaseSessionProvider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// NewSupabaseSessionProvider 创建 Supabase 会话提供方
func NewSupabaseSessionProvider(baseURL, anonKey string, timeout time.Duration) *SupabaseSessionProvider {
	return &SupabaseSessionProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type supabaseError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e supabaseError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDescription != "":
		return e.ErrorDescription
	}
	return "访问令牌无效"
}

// GetUser 查询令牌对应的用户
func (p *SupabaseSessionProvider) GetUser(ctx context.Context, token string) (*SessionUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Supabase Auth 失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		var apiErr supabaseError
		_ = json.Unmarshal(body, &apiErr)
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.text())
	default:
		return nil, fmt.Errorf("Supabase Auth 返回异常状态码: %d", resp.StatusCode)
	}

	var user supabaseUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("解析用户信息失败: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: 用户不存在", ErrUnauthorized)
	}

	return &SessionUser{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}
