package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
)

// CreateOrder 提交订单，必须携带会话 token
func (c *Client) CreateOrder(ctx context.Context, token string, payload models.OrderPayload) (*models.OrderConfirmation, error) {
	raw, err := c.send(ctx, http.MethodPost, c.url("/pedidos"), token, payload)
	if err != nil {
		return nil, err
	}
	return decodeOrderConfirmation(raw), nil
}

// decodeOrderConfirmation 状态码已是 2xx，订单已创建
// 响应体为空或无法解析时只记录日志，不能让调用方重复下单
func decodeOrderConfirmation(raw []byte) *models.OrderConfirmation {
	if len(bytes.TrimSpace(raw)) == 0 {
		logger.Warnw("backend_order_response_empty")
		return &models.OrderConfirmation{}
	}
	var confirmation models.OrderConfirmation
	if err := json.Unmarshal(raw, &confirmation); err != nil {
		logger.Warnw("backend_order_response_decode_failed", "error", err, "body_size", len(raw))
		return &models.OrderConfirmation{Raw: json.RawMessage(raw)}
	}
	confirmation.Raw = json.RawMessage(raw)
	return &confirmation
}
