package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrRequestFailed   = errors.New("backend request failed")
	ErrResponseInvalid = errors.New("backend response invalid")
)

// StatusError 后端返回非 2xx 状态
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend http status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend http status %d: %s", e.StatusCode, e.Message)
}

// AsStatusError 提取 StatusError
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// TokenSource 返回当前持有的 bearer token，可能为空
type TokenSource func() string

// Options 客户端配置
type Options struct {
	BaseURL          string
	ChatbotURL       string
	ImagePlaceholder string
	Timeout          time.Duration
	Transport        http.RoundTripper
}

// Client 后端 REST 客户端
type Client struct {
	baseURL     string
	chatbotURL  string
	placeholder string
	httpClient  *http.Client
	token       TokenSource
}

// New 创建后端客户端
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	placeholder := strings.TrimSpace(opts.ImagePlaceholder)
	if placeholder == "" {
		placeholder = "/placeholder.jpg"
	}
	return &Client{
		baseURL:     strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		chatbotURL:  strings.TrimRight(strings.TrimSpace(opts.ChatbotURL), "/"),
		placeholder: placeholder,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}
}

// SetTokenSource 设置默认 bearer token 来源
func (c *Client) SetTokenSource(source TokenSource) {
	c.token = source
}

// BaseURL 后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) currentToken() string {
	if c.token == nil {
		return ""
	}
	return strings.TrimSpace(c.token())
}

// doJSON 发送 JSON 请求，dest 为 nil 时忽略响应体
func (c *Client) doJSON(ctx context.Context, method, endpoint, token string, body, dest interface{}) error {
	raw, err := c.send(ctx, method, endpoint, token, body)
	if err != nil {
		return err
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint, token string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrRequestFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: extractMessage(raw)}
	}
	return raw, nil
}

// extractMessage 读取错误响应中的 message 字段
func extractMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(payload.Error)
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}
