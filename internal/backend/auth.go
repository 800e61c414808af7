package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// LoginInput 登录请求
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 账号密码登录，返回 bearer token
// 兼容 {"token": "..."}、JSON 字符串与纯文本三种响应
func (c *Client) Login(ctx context.Context, input LoginInput) (string, error) {
	raw, err := c.send(ctx, http.MethodPost, c.url("/auth/login"), "", input)
	if err != nil {
		return "", err
	}
	token := parseLoginToken(raw)
	if token == "" {
		return "", fmt.Errorf("%w: token missing", ErrResponseInvalid)
	}
	return token, nil
}

func parseLoginToken(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{':
		var payload struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return ""
		}
		return strings.TrimSpace(payload.Token)
	case '"':
		var token string
		if err := json.Unmarshal(trimmed, &token); err != nil {
			return ""
		}
		return strings.TrimSpace(token)
	case '[':
		return ""
	default:
		return string(trimmed)
	}
}
