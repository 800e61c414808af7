package shell

import (
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/i18n"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitOrderRequest 提交订单
type SubmitOrderRequest struct {
	CustomerID int64  `json:"customer_id"`
	Payment    string `json:"payment"`
	Note       string `json:"note"`
}

// GetOrderState 当前订单流程状态
func (h *Handler) GetOrderState(c *gin.Context) {
	response.Success(c, h.OrderService.State())
}

// SubmitOrder 提交购物车为订单
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	confirmation, err := h.OrderService.Submit(c.Request.Context(), service.SubmitOrderInput{
		CustomerID: req.CustomerID,
		Payment:    models.PaymentMethod(req.Payment),
		Note:       req.Note,
	})
	if err != nil {
		respondWithMappedError(c, err, orderSubmitErrorRules, response.CodeInternal, "error.order_submit_failed")
		return
	}
	locale := i18n.ResolveLocale(c)
	msg := i18n.T(locale, "message.order_received")
	if id := confirmation.ID.String(); id != "" {
		msg = i18n.Sprintf(locale, "message.order_confirmed", id)
	}
	state := h.OrderService.State()
	if state.ErrorKey != "" {
		msg = i18n.T(locale, state.ErrorKey)
	}
	response.SuccessWithMsg(c, msg, state)
}

// ResetOrder 确认或失败后回到初始状态
func (h *Handler) ResetOrder(c *gin.Context) {
	response.Success(c, h.OrderService.Reset(c.Request.Context()))
}
