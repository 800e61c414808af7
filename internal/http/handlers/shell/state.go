package shell

import (
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ShellState 页头与侧栏需要的全部状态
type ShellState struct {
	Authenticated bool               `json:"authenticated"`
	Session       *models.Session    `json:"session"`
	CartItemCount int                `json:"cart_item_count"`
	CartSubtotal  models.Money       `json:"cart_subtotal"`
	Panels        service.PanelState `json:"panels"`
	Order         service.OrderState `json:"order"`
}

// PanelRequest 面板开关请求
type PanelRequest struct {
	Open bool `json:"open"`
}

func (h *Handler) shellState() ShellState {
	session := h.SessionService.Current()
	return ShellState{
		Authenticated: session != nil,
		Session:       session,
		CartItemCount: h.CartService.ItemCount(),
		CartSubtotal:  h.CartService.Subtotal(),
		Panels:        h.Signals.State(),
		Order:         h.OrderService.State(),
	}
}

// GetState 获取界面状态
func (h *Handler) GetState(c *gin.Context) {
	response.Success(c, h.shellState())
}

// SetCartPanel 开关购物车面板
func (h *Handler) SetCartPanel(c *gin.Context) {
	var req PanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	h.Signals.SetCartOpen(req.Open)
	response.Success(c, h.Signals.State())
}

// SetLoginPanel 开关登录框
func (h *Handler) SetLoginPanel(c *gin.Context) {
	var req PanelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	h.Signals.SetLoginOpen(req.Open)
	response.Success(c, h.Signals.State())
}

// AckNavigation 前端完成跳转
func (h *Handler) AckNavigation(c *gin.Context) {
	h.Signals.AckNavigation()
	response.Success(c, h.Signals.State())
}
